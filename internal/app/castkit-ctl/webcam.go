package castkitctl

import (
	"context"
	"fmt"
	"time"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/bridge"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/tool/droidcam"
)

// WebcamCmd configures and launches the webcam-bridging tool.
type WebcamCmd struct {
	Address  string `help:"Phone address (ip or ip:port) shown in the DroidCam app."`
	DetectIP bool   `name:"detect-ip" help:"Resolve the phone address over USB."`

	Port      int    `help:"DroidCam port." default:"4747"`
	Audio     bool   `help:"Enable audio."`
	VideoSize string `help:"Video size as WIDTHxHEIGHT."`

	Grace  time.Duration `help:"Stop-escalation grace period." default:"3s"`
	DryRun bool          `help:"Print the command without launching."`
}

func (command *WebcamCmd) buildModel(ctx context.Context, journal *launcher.Journal) (launcher.CommandSpec, error) {
	model := droidcam.NewModel()

	address := command.Address

	if command.DetectIP {
		resolved, err := bridge.NewResolver(journal).ResolveViaUSB(ctx)
		if err != nil {
			return launcher.CommandSpec{}, fmt.Errorf("detect phone address: %w", err)
		}
		address = resolved.String()
	}

	sets := []struct {
		key   string
		value any
	}{
		{droidcam.KeyAddress, address},
		{droidcam.KeyPort, command.Port},
		{droidcam.KeyAudio, command.Audio},
		{droidcam.KeyVideoSize, command.VideoSize},
	}

	for _, set := range sets {
		if err := model.Set(set.key, set.value); err != nil {
			return launcher.CommandSpec{}, err
		}
	}

	snapshot, err := model.Snapshot()
	if err != nil {
		return launcher.CommandSpec{}, err
	}

	return droidcam.BuildCommand(snapshot)
}

// Run builds the droidcam command from the flags and either prints it or
// launches it under a supervisor.
func (command *WebcamCmd) Run(ctx context.Context, journal *launcher.Journal) error {
	spec, err := command.buildModel(ctx, journal)
	if err != nil {
		return err
	}

	if command.DryRun {
		fmt.Println(spec.Preview())
		return nil
	}

	sup, err := newSupervisor(launcher.ToolWebcam, journal, command.Grace,
		func(ctx context.Context, _ string) (string, error) {
			return droidcam.LocateExecutable(ctx)
		})
	if err != nil {
		return err
	}

	return runSession(ctx, journal, sup, spec)
}
