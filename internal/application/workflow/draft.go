// Package workflow implements the recipe generation pipeline: draft
// generation, optional research augmentation, tip generation and final
// compilation, and the instruction completeness audit, sequenced by the
// Orchestrator over a single owned state object.
package workflow

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/domain/recipe"
	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/internal/ports/outbound"
)

// DraftGenerator produces the draft recipe, nutrition breakdown, and
// shopping list from one combined structured generation call. On any failure
// it substitutes a deterministic local fallback; it never fails the run.
type DraftGenerator struct {
	gateway outbound.ModelGateway
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger
}

// NewDraftGenerator creates the draft generation stage.
func NewDraftGenerator(gateway outbound.ModelGateway, metrics *monitoring.MetricsCollector, logger *zap.Logger) *DraftGenerator {
	return &DraftGenerator{
		gateway: gateway,
		metrics: metrics,
		logger:  logger.Named("draft-generator"),
	}
}

// combinedResponse is the target shape of the combined generation call. All
// three top-level keys must be present or the response is treated as failed.
type combinedResponse struct {
	Recipe       *recipe.Recipe        `json:"recipe"`
	Nutrition    *recipe.NutritionInfo `json:"nutrition"`
	ShoppingList []string              `json:"shopping_list"`
}

func (r combinedResponse) complete() bool {
	return r.Recipe != nil && r.Nutrition != nil && r.ShoppingList != nil
}

var errMissingKeys = errors.New("combined response missing one of recipe, nutrition, shopping_list")

// Execute populates the draft recipe, nutrition, and shopping list on state.
func (g *DraftGenerator) Execute(ctx context.Context, state *workflow.State) {
	state.ParsedIngredients = parseIngredients(state.Request.Ingredients)

	var resp combinedResponse
	err := g.gateway.CompleteStructured(ctx,
		draftSystemPrompt,
		draftUserPrompt(state.Request, state.ParsedIngredients),
		outbound.ProfileCreative,
		&resp,
	)

	if err == nil && !resp.complete() {
		g.logger.Warn("Combined response missing required keys",
			zap.Bool("has_recipe", resp.Recipe != nil),
			zap.Bool("has_nutrition", resp.Nutrition != nil),
			zap.Bool("has_shopping_list", resp.ShoppingList != nil))
		err = errMissingKeys
	}

	if err != nil {
		g.logger.Warn("Combined generation failed, using fallback recipe",
			zap.Error(err))
		g.metrics.RecordFallback(string(workflow.StageDraftGeneration))

		rec, nutrition, shoppingList := fallbackDraft(state.ParsedIngredients, state.Request.Appliance)
		resp = combinedResponse{
			Recipe:       rec,
			Nutrition:    nutrition,
			ShoppingList: shoppingList,
		}
	}

	state.DraftRecipe = resp.Recipe
	state.Nutrition = resp.Nutrition
	state.ShoppingList = resp.ShoppingList

	// Seed the final recipe with the draft so every later stage has a
	// complete recipe to refine.
	draftCopy := *resp.Recipe
	state.FinalRecipe = &draftCopy

	g.logger.Info("Draft generated",
		zap.String("run_id", state.RunID.String()),
		zap.String("recipe", resp.Recipe.Name),
		zap.Int("shopping_items", len(resp.ShoppingList)))
}

// parseIngredients trims entries and drops empties.
func parseIngredients(ingredients []string) []string {
	parsed := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			parsed = append(parsed, trimmed)
		}
	}
	return parsed
}
