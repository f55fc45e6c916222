package launcher

import (
	"errors"
	"fmt"
)

var (
	// ErrBridgeToolNotFound indicates the device bridge tool (adb) is not installed.
	ErrBridgeToolNotFound = errors.New("bridge tool not found")

	// ErrNoDevice indicates no usable device is connected over USB.
	ErrNoDevice = errors.New("no device connected")

	// ErrAddressNotFound indicates no wireless address could be parsed from the device.
	ErrAddressNotFound = errors.New("wireless address not found")

	// ErrUnknownOption indicates an option key that is not declared in the schema.
	ErrUnknownOption = errors.New("unknown option")
)

// ValidationError reports an option value that violates its declared schema.
type ValidationError struct {
	// Key is the option key the value was set for.
	Key string

	// Value is the rejected value.
	Value any

	// Reason is the user-facing description of the violation.
	Reason string
}

// Error returns the error message for the validation error.
func (err *ValidationError) Error() string {
	if err == nil {
		return ""
	}

	return fmt.Sprintf("option %q: %s", err.Key, err.Reason)
}

// MissingTargetError reports a build that requires a device address without one set.
type MissingTargetError struct {
	// Tool is the tool whose command was being built.
	Tool ToolKind
}

// Error returns the error message for the missing target error.
func (err *MissingTargetError) Error() string {
	if err == nil {
		return ""
	}

	return fmt.Sprintf("%s: device address required but not set", err.Tool)
}

// AlreadyRunningError reports a start request against a non-idle supervisor.
type AlreadyRunningError struct {
	Tool  ToolKind
	State ProcessState
}

// Error returns the error message for the already running error.
func (err *AlreadyRunningError) Error() string {
	if err == nil {
		return ""
	}

	return fmt.Sprintf("%s: supervisor is %s, not idle", err.Tool, err.State)
}

// NotRunningError reports a stop request against an idle supervisor.
type NotRunningError struct {
	Tool ToolKind
}

// Error returns the error message for the not running error.
func (err *NotRunningError) Error() string {
	if err == nil {
		return ""
	}

	return fmt.Sprintf("%s: no process to stop", err.Tool)
}
