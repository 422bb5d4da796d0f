// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/domain/recipe"
	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/ports/inbound"
	"github.com/mealforge/v1/pkg/errors"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	workflowService inbound.RecipeWorkflowService
	version         string
	logger          *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	workflowService inbound.RecipeWorkflowService,
	version string,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		workflowService: workflowService,
		version:         version,
		logger:          logger.Named("api"),
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
}

// GenerateRecipeResponse is the payload returned by a completed run.
type GenerateRecipeResponse struct {
	RunID             string                `json:"run_id"`
	Recipe            *recipe.Recipe        `json:"recipe"`
	Nutrition         *recipe.NutritionInfo `json:"nutrition"`
	ShoppingList      []string              `json:"shopping_list"`
	CookingTips       []string              `json:"cooking_tips"`
	SearchEnhanced    bool                  `json:"search_enhanced"`
	EnhancementStatus string                `json:"enhancement_status"`
}

// GenerateRecipe handles POST /api/v1/recipes/generate
func (h *APIHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req workflow.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	state, err := h.workflowService.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: GenerateRecipeResponse{
			RunID:             state.RunID.String(),
			Recipe:            state.FinalRecipe,
			Nutrition:         state.Nutrition,
			ShoppingList:      state.ShoppingList,
			CookingTips:       state.CookingTips,
			SearchEnhanced:    state.SearchEnhanced,
			EnhancementStatus: string(state.Enhancement),
		},
		Message: "Recipe generated successfully",
	})
}

// GetCatalog handles GET /api/v1/catalog
func (h *APIHandlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"appliances":           recipe.SupportedAppliances,
			"skill_levels":         recipe.SupportedSkillLevels,
			"dietary_restrictions": recipe.SupportedDietaryRestrictions,
			"cuisines":             recipe.SupportedCuisines,
			"common_ingredients":   recipe.CommonIngredients,
			"max_ingredients":      recipe.MaxIngredients,
		},
	})
}

// HealthCheck handles GET /health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   h.version,
		},
	})
}

func (h *APIHandlers) writeError(w http.ResponseWriter, err error) {
	var verrs errors.ValidationErrors
	if stderrors.As(err, &verrs) {
		h.writeJSON(w, http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Validation failed",
			Errors:  verrs.Messages(),
		})
		return
	}

	if appErr, ok := err.(*errors.AppError); ok {
		h.logger.Error("Request failed",
			zap.String("code", string(appErr.Code)),
			zap.Error(err))
		h.writeJSON(w, appErr.StatusCode(), APIResponse{
			Success: false,
			Error:   appErr.Message,
		})
		return
	}

	h.logger.Error("Request failed", zap.Error(err))
	h.writeJSON(w, http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   "An unexpected error occurred",
	})
}

func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
