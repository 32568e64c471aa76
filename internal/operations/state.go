package operations

import (
	"sync"
	"time"

	"github.com/jstetich/CBEP-OA-1/internal/config"
	"github.com/jstetich/CBEP-OA-1/internal/dataprocessing"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// RunStatusValue represents the overall run status enum
type RunStatusValue string

const (
	RunStatusPending   RunStatusValue = "pending"
	RunStatusRunning   RunStatusValue = "running"
	RunStatusCompleted RunStatusValue = "completed"
	RunStatusFailed    RunStatusValue = "failed"
)

// RunState represents the complete state of one pipeline run. The
// observation series is the handoff between steps: each step consumes
// the series the previous step produced.
type RunState struct {
	mu sync.RWMutex

	// Basic run information
	ID        string         `json:"id"`
	Status    RunStatusValue `json:"status"`
	StartTime time.Time      `json:"start_time"`
	EndTime   *time.Time     `json:"end_time,omitempty"`

	// Step states
	Steps map[string]*StepState `json:"steps"`

	// Pipeline data handed between steps
	Config       *config.Config              `json:"-"`
	Policy       *config.CleaningPolicy      `json:"-"`
	Observations []domain.Observation        `json:"-"`
	ThermalMeans dataprocessing.ThermalMeans `json:"-"`

	// Error if the run failed
	Error error `json:"error,omitempty"`
}

// NewRunState creates a new run state
func NewRunState(id string, cfg *config.Config, policy *config.CleaningPolicy) *RunState {
	return &RunState{
		ID:        id,
		Status:    RunStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
		Config:    cfg,
		Policy:    policy,
	}
}

// Start marks the run as running
func (s *RunState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = RunStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the run as completed
func (s *RunState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusCompleted
}

// Fail marks the run as failed
func (s *RunState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusFailed
	s.Error = err
}

// GetStatus returns the current run status
func (s *RunState) GetStatus() RunStatusValue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// StepState returns the state of the named step, creating it if needed
func (s *RunState) StepState(id, name string) *StepState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.Steps[id]; ok {
		return st
	}
	st := NewStepState(id, name)
	s.Steps[id] = st
	return st
}
