package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/internal/ports/outbound"
)

// CompletenessAuditor inspects the compiled instructions for signs of
// truncation and issues one corrective generation call when triggered.
// Instructions are replaced only when the correction is strictly longer than
// the current list; any failure leaves them unchanged.
type CompletenessAuditor struct {
	gateway outbound.ModelGateway
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger

	// Truncation heuristics; proxies for an incomplete response.
	minSteps      int
	minAvgStepLen int
}

// NewCompletenessAuditor creates the audit stage.
func NewCompletenessAuditor(gateway outbound.ModelGateway, minSteps, minAvgStepLen int, metrics *monitoring.MetricsCollector, logger *zap.Logger) *CompletenessAuditor {
	return &CompletenessAuditor{
		gateway:       gateway,
		metrics:       metrics,
		logger:        logger.Named("completeness-auditor"),
		minSteps:      minSteps,
		minAvgStepLen: minAvgStepLen,
	}
}

type completionResponse struct {
	CompleteInstructions []string `json:"complete_instructions"`
}

// Execute audits and, when needed, repairs the final recipe's instructions.
func (a *CompletenessAuditor) Execute(ctx context.Context, state *workflow.State) {
	rec := state.FinalRecipe
	if rec == nil {
		a.logger.Warn("No final recipe to audit",
			zap.String("run_id", state.RunID.String()))
		return
	}

	if !a.needsCompletion(rec.Instructions) {
		return
	}

	a.logger.Info("Instructions look incomplete, requesting correction",
		zap.String("run_id", state.RunID.String()),
		zap.Int("steps", len(rec.Instructions)))

	var resp completionResponse
	err := a.gateway.CompleteStructured(ctx,
		completionSystemPrompt,
		completionUserPrompt(rec),
		outbound.ProfileCreative,
		&resp,
	)
	if err != nil {
		a.logger.Warn("Instruction correction failed, keeping current instructions",
			zap.Error(err))
		return
	}

	// A correction that is not strictly longer is non-improving; discard it.
	if len(resp.CompleteInstructions) <= len(rec.Instructions) {
		a.logger.Info("Correction did not add steps, discarding",
			zap.Int("current", len(rec.Instructions)),
			zap.Int("corrected", len(resp.CompleteInstructions)))
		return
	}

	rec.Instructions = resp.CompleteInstructions
	if state.DraftRecipe != nil {
		state.DraftRecipe.Instructions = resp.CompleteInstructions
	}

	a.logger.Info("Instructions completed",
		zap.String("run_id", state.RunID.String()),
		zap.Int("steps", len(resp.CompleteInstructions)))
}

// needsCompletion judges instructions incomplete when there are too few
// steps or the mean step length is abnormally short.
func (a *CompletenessAuditor) needsCompletion(instructions []string) bool {
	if len(instructions) < a.minSteps {
		return true
	}

	total := 0
	for _, step := range instructions {
		total += len(step)
	}
	avg := total / len(instructions)

	return avg < a.minAvgStepLen
}
