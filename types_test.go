package staking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateString(t *testing.T) {
	require.Equal(t, "Idle", StateIdle.String())
	require.Equal(t, "Pending", StatePending.String())
	require.Equal(t, "Succeeded", StateSucceeded.String())
	require.Equal(t, "Rejected", StateRejected.String())
	require.Equal(t, "Failed", StateFailed.String())
	require.Equal(t, "State(9)", State(9).String())
}

func TestStateTerminal(t *testing.T) {
	require.False(t, StateIdle.Terminal())
	require.False(t, StatePending.Terminal())
	require.True(t, StateSucceeded.Terminal())
	require.True(t, StateRejected.Terminal())
	require.True(t, StateFailed.Terminal())
}
