package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineStateAdvance(t *testing.T) {
	state := newPipelineState()
	assert.Equal(t, StageClassifying, state.Stage)

	for _, next := range []Stage{StageAnalyzing, StageCompliance, StageQualifying, StageScoring, StageComplete} {
		require.NoError(t, state.advance(next))
		assert.Equal(t, next, state.Stage)
	}
}

func TestPipelineStateRejectsSkip(t *testing.T) {
	state := newPipelineState()

	err := state.advance(StageQualifying)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StageClassifying, state.Stage)
}

func TestPipelineStateRejectsBackward(t *testing.T) {
	state := newPipelineState()
	require.NoError(t, state.advance(StageAnalyzing))
	require.NoError(t, state.advance(StageCompliance))

	err := state.advance(StageAnalyzing)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StageCompliance, state.Stage)
}

func TestPipelineStateErrorAlwaysReachable(t *testing.T) {
	state := newPipelineState()
	require.NoError(t, state.advance(StageAnalyzing))

	require.NoError(t, state.advance(StageError))
	assert.Equal(t, StageError, state.Stage)

	// Error is terminal.
	err := state.advance(StageCompliance)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPipelineStateRejectsUnknownStage(t *testing.T) {
	state := newPipelineState()
	assert.ErrorIs(t, state.advance(Stage("reticulating")), ErrInvalidTransition)
}
