package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jstetich/CBEP-OA-1/internal/config"
	"github.com/jstetich/CBEP-OA-1/internal/infrastructure"
)

// Runner executes registered pipeline steps sequentially. The pipeline
// is an offline batch: the first failing step aborts the whole run, and
// there are no retries or partial results.
type Runner struct {
	registry *Registry
	logger   *slog.Logger
}

// NewRunner creates a new pipeline runner
func NewRunner(registry *Registry, logger *slog.Logger) *Runner {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{registry: registry, logger: logger}
}

// RegisterStep registers a Step with the pipeline
func (r *Runner) RegisterStep(step Step) error {
	return r.registry.Register(step)
}

// Run executes every registered step in registration order against a
// fresh run state and returns the final state. The returned state is
// valid even on error, for inspection of which step failed.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, policy *config.CleaningPolicy) (*RunState, error) {
	runID := infrastructure.GenerateRunID()
	ctx = infrastructure.WithRunID(ctx, runID)

	state := NewRunState(runID, cfg, policy)
	state.Start()

	r.logger.InfoContext(ctx, "pipeline run started",
		slog.String("run_id", runID),
		slog.Int("steps", r.registry.Count()))

	for _, step := range r.registry.List() {
		if err := ctx.Err(); err != nil {
			state.Fail(err)
			return state, fmt.Errorf("run cancelled before step %s: %w", step.ID(), err)
		}

		stepState := state.StepState(step.ID(), step.Name())

		if err := step.Validate(state); err != nil {
			stepState.Fail(err)
			state.Fail(err)
			r.logger.ErrorContext(ctx, "step validation failed",
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			return state, fmt.Errorf("validating step %s: %w", step.ID(), err)
		}

		stepState.Start()
		r.logger.InfoContext(ctx, "step started",
			slog.String("step", step.ID()),
			slog.String("name", step.Name()))

		if err := step.Execute(ctx, state); err != nil {
			stepState.Fail(err)
			state.Fail(err)
			r.logger.ErrorContext(ctx, "step failed",
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			return state, fmt.Errorf("executing step %s: %w", step.ID(), err)
		}

		stepState.Complete()
		r.logger.InfoContext(ctx, "step completed",
			slog.String("step", step.ID()),
			slog.Duration("duration", stepState.Duration()))
	}

	state.Complete()
	r.logger.InfoContext(ctx, "pipeline run completed",
		slog.String("run_id", runID),
		slog.Int("observations", len(state.Observations)))

	return state, nil
}
