package workflow

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/domain/recipe"
	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/internal/ports/outbound"
)

// TipCompiler generates appliance- and skill-aware cooking tips, then
// compiles the draft, nutrition, tips, and ingredients into the final recipe.
// Both steps degrade to deterministic local content on failure.
type TipCompiler struct {
	gateway outbound.ModelGateway
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger

	maxTips int
}

// NewTipCompiler creates the tips-and-compilation stage.
func NewTipCompiler(gateway outbound.ModelGateway, maxTips int, metrics *monitoring.MetricsCollector, logger *zap.Logger) *TipCompiler {
	return &TipCompiler{
		gateway: gateway,
		metrics: metrics,
		logger:  logger.Named("tip-compiler"),
		maxTips: maxTips,
	}
}

// compiledRecipe is the target shape of the compilation call: the full final
// recipe with its nutrition sub-object.
type compiledRecipe struct {
	recipe.Recipe
	Nutrition *recipe.NutritionInfo `json:"nutrition"`
}

// Execute runs tip generation then final compilation.
func (c *TipCompiler) Execute(ctx context.Context, state *workflow.State) {
	c.generateTips(ctx, state)
	c.compile(ctx, state)
}

// generateTips asks for 5-8 numbered tips and merges them with any tips the
// research stage already produced. Failure substitutes a fixed generic list.
func (c *TipCompiler) generateTips(ctx context.Context, state *workflow.State) {
	response, err := c.gateway.Complete(ctx,
		tipsSystemPrompt,
		tipsUserPrompt(state),
		outbound.ProfilePrecise,
	)
	if err != nil {
		c.logger.Warn("Tip generation failed, using generic tips",
			zap.Error(err))
		c.metrics.RecordFallback(string(workflow.StageTipsAndCompilation))
		state.CookingTips = mergeTips(state.CookingTips, genericTips(), c.maxTips)
		return
	}

	state.CookingTips = mergeTips(state.CookingTips, splitTips(response), c.maxTips)
}

// compile issues the final structured compilation call. Failure synthesizes
// the final recipe from prior state.
func (c *TipCompiler) compile(ctx context.Context, state *workflow.State) {
	var compiled compiledRecipe
	err := c.gateway.CompleteStructured(ctx,
		compileSystemPrompt,
		compileUserPrompt(state),
		outbound.ProfileCreative,
		&compiled,
	)
	if err != nil || compiled.Name == "" || len(compiled.Instructions) == 0 {
		c.logger.Warn("Final compilation failed, synthesizing locally",
			zap.Error(err))
		c.metrics.RecordFallback(string(workflow.StageTipsAndCompilation))
		state.FinalRecipe = synthesizeFinalRecipe(state)
		return
	}

	final := compiled.Recipe
	if final.ApplianceUsed == "" {
		final.ApplianceUsed = recipe.ApplianceField(state.Request.Appliance)
	}
	if len(final.Tips) == 0 {
		final.Tips = state.CookingTips
	}
	state.FinalRecipe = &final

	if compiled.Nutrition != nil {
		state.Nutrition = compiled.Nutrition
	}

	c.logger.Info("Final recipe compiled",
		zap.String("run_id", state.RunID.String()),
		zap.String("recipe", final.Name),
		zap.Int("steps", len(final.Instructions)))
}

// splitTips turns a numbered-list response into one tip per line.
func splitTips(response string) []string {
	var tips []string
	for _, line := range strings.Split(response, "\n") {
		if tip := strings.TrimSpace(line); tip != "" {
			tips = append(tips, tip)
		}
	}
	return tips
}
