package droidcam

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/flagtable"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/options"
)

// ExecutableName is the binary name the command spec is built for.
const ExecutableName = "droidcam-cli"

//go:embed flags.yaml
var flagsYAML []byte

// Flags is the conformance table for droidcam-cli option flags. The device
// address and port are positional arguments and are appended by BuildCommand.
var Flags = flagtable.MustParse(flagsYAML, Schema)

var videoSizePattern = regexp.MustCompile(`^\d+x\d+$`)

// BuildCommand derives a droidcam-cli command spec from an option snapshot.
// The phone address is mandatory: the tool connects to the DroidCam app over
// the network, so there is no addressless invocation.
func BuildCommand(snapshot options.Snapshot) (launcher.CommandSpec, error) {
	if snapshot.Tool() != launcher.ToolWebcam {
		return launcher.CommandSpec{}, fmt.Errorf("snapshot is for tool %q, not %q", snapshot.Tool(), launcher.ToolWebcam)
	}

	rawAddress := snapshot.String(KeyAddress)
	if rawAddress == "" {
		return launcher.CommandSpec{}, &launcher.MissingTargetError{Tool: launcher.ToolWebcam}
	}

	address, err := launcher.ParseDeviceAddress(rawAddress)
	if err != nil {
		return launcher.CommandSpec{}, &launcher.ValidationError{Key: KeyAddress, Value: rawAddress, Reason: err.Error()}
	}

	if size := snapshot.String(KeyVideoSize); size != "" && !videoSizePattern.MatchString(size) {
		return launcher.CommandSpec{}, &launcher.ValidationError{Key: KeyVideoSize, Value: size, Reason: "expected WIDTHxHEIGHT"}
	}

	args, err := Flags.Render(Schema, snapshot)
	if err != nil {
		return launcher.CommandSpec{}, fmt.Errorf("render %s arguments: %w", ExecutableName, err)
	}

	// A port embedded in the address wins over the port option.
	port := snapshot.Int(KeyPort)
	if address.Port > 0 {
		port = address.Port
	}

	args = append(args, address.IP, strconv.Itoa(port))

	return launcher.CommandSpec{
		Tool:       launcher.ToolWebcam,
		Executable: ExecutableName,
		Args:       args,
	}, nil
}
