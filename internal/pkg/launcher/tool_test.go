package launcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionID_Validate(t *testing.T) {
	t.Run("generated ids are valid", func(t *testing.T) {
		id := NewSessionID()
		assert.NoError(t, id.Validate())
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		assert.NotEqual(t, NewSessionID(), NewSessionID())
	})

	tests := []struct {
		name string
		id   SessionID
	}{
		{name: "empty", id: ""},
		{name: "not a uuid", id: "session-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			assert.True(t, errors.Is(err, ErrSessionIDInvalid))
		})
	}
}

func TestProcessState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    ProcessState
		terminal bool
	}{
		{StateIdle, false},
		{StateStarting, false},
		{StateRunning, false},
		{StateStopping, false},
		{StateStopped, true},
		{StateCrashed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}
}
