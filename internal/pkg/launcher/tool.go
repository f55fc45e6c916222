package launcher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ToolKind identifies one of the managed external tools.
type ToolKind string

const (
	// ToolMirror is the screen-mirroring tool (scrcpy).
	ToolMirror ToolKind = "mirror"

	// ToolWebcam is the webcam-bridging tool (droidcam).
	ToolWebcam ToolKind = "webcam"
)

// SessionID identifies a single supervised process session.
type SessionID string

// NewSessionID generates a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Validate reports whether the identifier is a well-formed session id.
func (id SessionID) Validate() error {
	if id == "" {
		return ErrSessionIDInvalid
	}

	_, err := uuid.Parse(string(id))
	if err != nil {
		return ErrSessionIDInvalid
	}

	return nil
}

// ErrSessionIDInvalid indicates the session identifier is missing or malformed.
var ErrSessionIDInvalid = errors.New("session id invalid")

// ProcessState describes the lifecycle state of a supervised process.
type ProcessState string

const (
	// StateIdle indicates no process is owned by the supervisor.
	StateIdle ProcessState = "idle"

	// StateStarting indicates the process is being spawned.
	StateStarting ProcessState = "starting"

	// StateRunning indicates the process is alive and its output is streamed.
	StateRunning ProcessState = "running"

	// StateStopping indicates a graceful termination request is in flight.
	StateStopping ProcessState = "stopping"

	// StateStopped indicates the process exited cleanly or was stopped.
	StateStopped ProcessState = "stopped"

	// StateCrashed indicates the process exited non-zero or on a signal.
	StateCrashed ProcessState = "crashed"
)

// IsTerminal reports whether the state ends a session and awaits acknowledgement.
func (state ProcessState) IsTerminal() bool {
	return state == StateStopped || state == StateCrashed
}

// ProcessHandle is a point-in-time view of the process owned by a supervisor.
type ProcessHandle struct {
	// Tool is the tool the process belongs to.
	Tool ToolKind `json:"tool"`

	// Session identifies the supervised session.
	Session SessionID `json:"session"`

	// Executable is the resolved path of the spawned binary.
	Executable string `json:"executable"`

	// PID is the operating system process identifier.
	PID int `json:"pid"`

	// StartedAt is the timestamp when the process was spawned.
	StartedAt time.Time `json:"startedAt"`

	// State is the lifecycle state at snapshot time.
	State ProcessState `json:"state"`

	// LastLine is the most recent output line seen from the process.
	LastLine string `json:"lastLine,omitempty"`

	// ExitCode reports the process exit code once the session has ended.
	ExitCode *int `json:"exitCode,omitempty"`
}
