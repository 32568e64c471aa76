package operations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStep is a configurable Step for runner tests
type fakeStep struct {
	id          string
	validateErr error
	executeErr  error
	executed    *[]string
}

func (s *fakeStep) ID() string   { return s.id }
func (s *fakeStep) Name() string { return "fake " + s.id }

func (s *fakeStep) Validate(state *RunState) error {
	return s.validateErr
}

func (s *fakeStep) Execute(ctx context.Context, state *RunState) error {
	if s.executed != nil {
		*s.executed = append(*s.executed, s.id)
	}
	return s.executeErr
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(&fakeStep{id: "a"}))
	require.NoError(t, r.Register(&fakeStep{id: "b"}))
	assert.Equal(t, 2, r.Count())

	// duplicate registration fails
	err := r.Register(&fakeStep{id: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&fakeStep{id: ""}))
}

func TestRegistry_ListPreservesOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"load", "clean", "export"} {
		require.NoError(t, r.Register(&fakeStep{id: id}))
	}

	var ids []string
	for _, s := range r.List() {
		ids = append(ids, s.ID())
	}
	assert.Equal(t, []string{"load", "clean", "export"}, ids)
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeStep{id: "load"}))

	step, err := r.Get("load")
	require.NoError(t, err)
	assert.Equal(t, "load", step.ID())

	_, err = r.Get("missing")
	assert.Error(t, err)
}
