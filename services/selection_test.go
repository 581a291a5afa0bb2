package services

import (
	"testing"

	"github.com/sahilchouksey/uniadvisor-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatusGuardTable(t *testing.T) {
	tests := []struct {
		name    string
		current model.SelectionStatus
		op      SelectionOp
		want    model.SelectionStatus
		wantErr bool
	}{
		{"shortlist from unselected", StatusUnselected, OpShortlist, model.StatusShortlisted, false},
		{"shortlist from shortlisted", model.StatusShortlisted, OpShortlist, model.StatusShortlisted, true},
		{"shortlist from locked", model.StatusLocked, OpShortlist, model.StatusLocked, true},

		{"lock from shortlisted", model.StatusShortlisted, OpLock, model.StatusLocked, false},
		{"lock from unselected", StatusUnselected, OpLock, StatusUnselected, true},
		{"lock from locked", model.StatusLocked, OpLock, model.StatusLocked, true},

		{"unlock from locked", model.StatusLocked, OpUnlock, model.StatusShortlisted, false},
		{"unlock from shortlisted", model.StatusShortlisted, OpUnlock, model.StatusShortlisted, true},
		{"unlock from unselected", StatusUnselected, OpUnlock, StatusUnselected, true},

		{"remove from shortlisted", model.StatusShortlisted, OpRemove, StatusUnselected, false},
		{"remove from locked", model.StatusLocked, OpRemove, model.StatusLocked, true},
		{"remove from unselected", StatusUnselected, OpRemove, StatusUnselected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := NextStatus(tt.current, tt.op)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				// no state change on rejection
				assert.Equal(t, tt.current, next)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, next)
			}
		})
	}
}

func TestNoDirectLockedToUnselected(t *testing.T) {
	// A locked university is only removable via unlock then remove.
	_, err := NextStatus(model.StatusLocked, OpRemove)
	require.ErrorIs(t, err, ErrInvalidTransition)

	unlocked, err := NextStatus(model.StatusLocked, OpUnlock)
	require.NoError(t, err)
	removed, err := NextStatus(unlocked, OpRemove)
	require.NoError(t, err)
	assert.Equal(t, StatusUnselected, removed)
}

func TestLockUnlockSequenceScenarioD(t *testing.T) {
	// add("uk-1") -> lock("uk-1") -> unlock("uk-1") ends Shortlisted, and
	// the single-status state means the id is never in both sets.
	state := StatusUnselected

	state, err := NextStatus(state, OpShortlist)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShortlisted, state)

	state, err = NextStatus(state, OpLock)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLocked, state)

	state, err = NextStatus(state, OpUnlock)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShortlisted, state)
}

func TestSelectionOpIsValid(t *testing.T) {
	assert.True(t, OpShortlist.IsValid())
	assert.True(t, OpLock.IsValid())
	assert.True(t, OpUnlock.IsValid())
	assert.True(t, OpRemove.IsValid())
	assert.False(t, SelectionOp("archive").IsValid())
}
