// Package workflow contains the state object threaded through the recipe
// generation pipeline and the stage sequencing rules that govern it.
package workflow

import (
	"github.com/google/uuid"

	"github.com/mealforge/v1/internal/domain/recipe"
)

// EnhancementStatus is the one-shot latch for search-based tip enhancement.
// Once Applied, re-entering the enhancement step is a guaranteed no-op.
type EnhancementStatus string

const (
	// EnhancementNotApplicable means the enhancement step never ran, either
	// because search is disabled or because the run has not reached it.
	EnhancementNotApplicable EnhancementStatus = "not_applicable"
	// EnhancementSkipped means the step ran but did not change the tips
	// (no search results, or the enhancement call failed).
	EnhancementSkipped EnhancementStatus = "skipped"
	// EnhancementApplied means enhanced tips were merged. Never reset within
	// a run.
	EnhancementApplied EnhancementStatus = "applied"
)

// SearchResult is one web-search hit collected by the research stage.
type SearchResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
	Query   string `json:"query"`
}

// State is the single mutable record threaded through every pipeline stage.
// It is the only cross-stage communication channel: stages hold no private
// long-lived state. Each run owns its State exclusively; stages execute
// sequentially and never share it across goroutines.
type State struct {
	RunID uuid.UUID `json:"run_id"`

	// Request is set once by the orchestrator and immutable thereafter.
	Request Request `json:"request"`

	// Working fields populated by stages.
	ParsedIngredients []string              `json:"parsed_ingredients"`
	DraftRecipe       *recipe.Recipe        `json:"draft_recipe"`
	Nutrition         *recipe.NutritionInfo `json:"nutrition_info"`
	ShoppingList      []string              `json:"shopping_list"`
	CookingTips       []string              `json:"cooking_tips"`
	SearchResults     []SearchResult        `json:"search_results"`
	SearchEnhanced    bool                  `json:"search_enhanced"`
	Enhancement       EnhancementStatus     `json:"enhancement_status"`
	FinalRecipe       *recipe.Recipe        `json:"final_recipe"`

	// VerificationResult is reserved for a future verification stage. No
	// current stage writes a final value.
	VerificationResult map[string]interface{} `json:"verification_result,omitempty"`

	// CurrentStage is a diagnostic breadcrumb maintained by Advance.
	CurrentStage Stage `json:"current_stage"`

	// ErrorMessage, when non-empty, signals run failure to the caller. No
	// other field is guaranteed populated once it is set.
	ErrorMessage string `json:"error_message"`
}

// NewState creates the state for a single run. The request should already be
// normalized and validated.
func NewState(req Request) *State {
	return &State{
		RunID:        uuid.New(),
		Request:      req,
		CookingTips:  []string{},
		ShoppingList: []string{},
		Enhancement:  EnhancementNotApplicable,
		CurrentStage: StageStart,
	}
}

// Fail records an unrecoverable stage failure.
func (s *State) Fail(msg string) {
	s.ErrorMessage = msg
}

// Failed reports whether the run has failed.
func (s *State) Failed() bool {
	return s.ErrorMessage != ""
}
