package scrcpy

import (
	_ "embed"
	"fmt"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/flagtable"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/options"
)

// ExecutableName is the binary name the command spec is built for.
const ExecutableName = "scrcpy"

//go:embed flags.yaml
var flagsYAML []byte

// Flags is the conformance table mapping option keys to scrcpy flag
// spellings, versioned against the scrcpy release noted in the table.
var Flags = flagtable.MustParse(flagsYAML, Schema)

// BuildCommand derives a command spec from an option snapshot. The build is
// pure and deterministic: identical snapshots yield identical argument
// vectors, in conformance-table order.
func BuildCommand(snapshot options.Snapshot) (launcher.CommandSpec, error) {
	if snapshot.Tool() != launcher.ToolMirror {
		return launcher.CommandSpec{}, fmt.Errorf("snapshot is for tool %q, not %q", snapshot.Tool(), launcher.ToolMirror)
	}

	if snapshot.Bool(KeyTCPIP) {
		address := snapshot.String(KeyAddress)
		if address == "" {
			return launcher.CommandSpec{}, &launcher.MissingTargetError{Tool: launcher.ToolMirror}
		}

		if _, err := launcher.ParseDeviceAddress(address); err != nil {
			return launcher.CommandSpec{}, &launcher.ValidationError{Key: KeyAddress, Value: address, Reason: err.Error()}
		}
	}

	args, err := Flags.Render(Schema, snapshot)
	if err != nil {
		return launcher.CommandSpec{}, fmt.Errorf("render %s arguments: %w", ExecutableName, err)
	}

	return launcher.CommandSpec{
		Tool:       launcher.ToolMirror,
		Executable: ExecutableName,
		Args:       args,
	}, nil
}
