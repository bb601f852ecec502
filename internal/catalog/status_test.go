package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to StatusKind
		ok       bool
	}{
		{StatusIdle, StatusPending, true},
		{StatusPending, StatusSucceeded, true},
		{StatusPending, StatusFailed, true},
		{StatusSucceeded, StatusPending, true},
		{StatusFailed, StatusPending, true},
		{StatusIdle, StatusSucceeded, false},
		{StatusIdle, StatusFailed, false},
		{StatusPending, StatusPending, false},
		{StatusPending, StatusIdle, false},
		{StatusSucceeded, StatusFailed, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "IDLE", Idle().String())
	require.Equal(t, "FAILED: Invalid credentials", Failed("Invalid credentials").String())
	require.True(t, Pending().IsPending())
	require.False(t, Succeeded("ok").IsPending())
}
