package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mealforge/v1/internal/domain/workflow"
	"github.com/mealforge/v1/internal/infrastructure/monitoring"
	"github.com/mealforge/v1/pkg/errors"
)

// Orchestrator drives a recipe generation run through its stages. Stage
// failures are absorbed inside the stages themselves via fallbacks, so a run
// fails only on validation, an expired deadline, or a stage panic.
type Orchestrator struct {
	draft    *DraftGenerator
	research *ResearchAugmenter // nil when no search capability is configured
	compiler *TipCompiler
	auditor  *CompletenessAuditor

	runTimeout time.Duration
	metrics    *monitoring.MetricsCollector
	logger     *zap.Logger
}

// NewOrchestrator wires the pipeline. Pass a nil ResearchAugmenter to run
// without the research stage.
func NewOrchestrator(
	draft *DraftGenerator,
	research *ResearchAugmenter,
	compiler *TipCompiler,
	auditor *CompletenessAuditor,
	runTimeout time.Duration,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		draft:      draft,
		research:   research,
		compiler:   compiler,
		auditor:    auditor,
		runTimeout: runTimeout,
		metrics:    metrics,
		logger:     logger.Named("orchestrator"),
	}
}

// Generate runs the full pipeline for one request and returns the terminal
// workflow state. The returned state always carries a final recipe unless the
// request itself was invalid or the run was cut short.
func (o *Orchestrator) Generate(ctx context.Context, req workflow.Request) (*workflow.State, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		o.metrics.RecordRun("validation_failed")
		return nil, err
	}

	if o.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.runTimeout)
		defer cancel()
	}

	state := workflow.NewState(req)
	start := time.Now()

	o.logger.Info("Starting recipe generation run",
		zap.String("run_id", state.RunID.String()),
		zap.Int("ingredients", len(req.Ingredients)),
		zap.Bool("research_enabled", o.research != nil))

	stages := o.plan()
	for _, s := range stages {
		if !o.runStage(ctx, state, s.stage, s.fn) {
			o.metrics.RecordRun("failed")
			return state, errors.NewRunFailure(string(s.stage), fmt.Errorf("%s", state.ErrorMessage))
		}
		if err := ctx.Err(); err != nil {
			state.Fail(fmt.Sprintf("run aborted after stage %s: %v", s.stage, err))
			o.metrics.RecordRun("failed")
			return state, errors.NewRunFailure(string(s.stage), err)
		}
	}

	if err := state.Advance(workflow.StageDone); err != nil {
		state.Fail(err.Error())
		o.metrics.RecordRun("failed")
		return state, errors.NewRunFailure(string(workflow.StageDone), err)
	}

	o.metrics.RecordRun("completed")
	o.logger.Info("Recipe generation run completed",
		zap.String("run_id", state.RunID.String()),
		zap.String("recipe", state.FinalRecipe.Name),
		zap.String("enhancement", string(state.Enhancement)),
		zap.Duration("duration", time.Since(start)))

	return state, nil
}

type plannedStage struct {
	stage workflow.Stage
	fn    func(context.Context, *workflow.State)
}

// plan lays out the stage sequence for this run. The research stage is
// skipped entirely, not stubbed, when search is not configured.
func (o *Orchestrator) plan() []plannedStage {
	stages := []plannedStage{
		{workflow.StageDraftGeneration, o.draft.Execute},
	}
	if o.research != nil {
		stages = append(stages, plannedStage{workflow.StageResearch, o.research.Execute})
	}
	stages = append(stages,
		plannedStage{workflow.StageTipsAndCompilation, o.compiler.Execute},
		plannedStage{workflow.StageCompletenessAudit, o.auditor.Execute},
	)
	return stages
}

// runStage advances the state machine, executes one stage, and records its
// duration. A panicking stage marks the run failed instead of taking down
// the process.
func (o *Orchestrator) runStage(ctx context.Context, state *workflow.State, stage workflow.Stage, fn func(context.Context, *workflow.State)) (ok bool) {
	if err := state.Advance(stage); err != nil {
		state.Fail(err.Error())
		return false
	}

	start := time.Now()
	defer func() {
		o.metrics.RecordStageDuration(string(stage), time.Since(start))
		if r := recover(); r != nil {
			msg := fmt.Sprintf("stage %s panicked: %v", stage, r)
			o.logger.Error("Stage panicked",
				zap.String("run_id", state.RunID.String()),
				zap.String("stage", string(stage)),
				zap.Any("panic", r))
			state.Fail(msg)
			ok = false
		}
	}()

	fn(ctx, state)
	return true
}
