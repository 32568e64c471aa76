package operations

import (
	"context"
	"fmt"

	"github.com/jstetich/CBEP-OA-1/internal/dataprocessing"
	"github.com/jstetich/CBEP-OA-1/internal/exporter"
	"github.com/jstetich/CBEP-OA-1/internal/infrastructure"
)

// Step IDs for the standard pipeline, in execution order.
const (
	StepIDLoad    = "load"
	StepIDClean   = "clean"
	StepIDConvert = "convert"
	StepIDCorrect = "correct"
	StepIDExport  = "export"
)

// RegisterStandardSteps registers the full load-clean-convert-correct-export
// pipeline on the runner, in order.
func RegisterStandardSteps(r *Runner) error {
	steps := []Step{
		&LoadStep{},
		&CleanStep{},
		&ConvertStep{},
		&CorrectStep{},
		&ExportStep{},
	}
	for _, s := range steps {
		if err := r.RegisterStep(s); err != nil {
			return fmt.Errorf("registering step %s: %w", s.ID(), err)
		}
	}
	return nil
}

// LoadStep reads every per-year deployment file and concatenates the
// observations onto the run state.
type LoadStep struct{}

func (s *LoadStep) ID() string   { return StepIDLoad }
func (s *LoadStep) Name() string { return "Load deployment files" }

func (s *LoadStep) Validate(state *RunState) error {
	if state.Config == nil {
		return fmt.Errorf("load step requires configuration")
	}
	return nil
}

func (s *LoadStep) Execute(ctx context.Context, state *RunState) error {
	dir := state.Config.Paths.DataDir

	years, err := dataprocessing.DiscoverYears(dir)
	if err != nil {
		return err
	}

	obs, err := dataprocessing.LoadYears(dir, years)
	if err != nil {
		return err
	}

	state.Observations = obs
	return nil
}

// CleanStep applies the curated cleaning policy to the loaded series.
type CleanStep struct{}

func (s *CleanStep) ID() string   { return StepIDClean }
func (s *CleanStep) Name() string { return "Clean observation series" }

func (s *CleanStep) Validate(state *RunState) error {
	if state.Policy == nil {
		return fmt.Errorf("clean step requires a cleaning policy")
	}
	if len(state.Observations) == 0 {
		return fmt.Errorf("clean step requires loaded observations")
	}
	return nil
}

func (s *CleanStep) Execute(ctx context.Context, state *RunState) error {
	cleaner := dataprocessing.NewCleaner(state.Policy, infrastructure.LoggerWithContext(ctx))
	cleaned, err := cleaner.Clean(ctx, state.Observations)
	if err != nil {
		return err
	}
	state.Observations = cleaned
	return nil
}

// ConvertStep fills the dissolved-oxygen mg/L column.
type ConvertStep struct{}

func (s *ConvertStep) ID() string   { return StepIDConvert }
func (s *ConvertStep) Name() string { return "Convert dissolved-oxygen units" }

func (s *ConvertStep) Validate(state *RunState) error {
	if len(state.Observations) == 0 {
		return fmt.Errorf("convert step requires cleaned observations")
	}
	return nil
}

func (s *ConvertStep) Execute(ctx context.Context, state *RunState) error {
	dataprocessing.ApplyDOConversion(state.Observations)
	return nil
}

// CorrectStep runs the two-pass thermal correction. The series means
// are computed here, after cleaning, and recorded on the run state so
// reports can cite them.
type CorrectStep struct{}

func (s *CorrectStep) ID() string   { return StepIDCorrect }
func (s *CorrectStep) Name() string { return "Thermal pCO2 correction" }

func (s *CorrectStep) Validate(state *RunState) error {
	if len(state.Observations) == 0 {
		return fmt.Errorf("correct step requires cleaned observations")
	}
	return nil
}

func (s *CorrectStep) Execute(ctx context.Context, state *RunState) error {
	means := dataprocessing.SeriesMeans(state.Observations)
	dataprocessing.ApplyThermalCorrection(ctx, state.Observations, means,
		infrastructure.LoggerWithContext(ctx))
	state.ThermalMeans = means
	return nil
}

// ExportStep writes the combined cleaned observation CSV.
type ExportStep struct{}

func (s *ExportStep) ID() string   { return StepIDExport }
func (s *ExportStep) Name() string { return "Export combined observations" }

func (s *ExportStep) Validate(state *RunState) error {
	if state.Config == nil {
		return fmt.Errorf("export step requires configuration")
	}
	if len(state.Observations) == 0 {
		return fmt.Errorf("export step requires corrected observations")
	}
	return nil
}

func (s *ExportStep) Execute(ctx context.Context, state *RunState) error {
	path := state.Config.CombinedDataPath()
	return exporter.NewObservationExporter().ExportCombined(path, state.Observations)
}
