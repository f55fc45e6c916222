package castkitctl

import (
	"context"
	"fmt"
	"time"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/bridge"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/tool/scrcpy"
)

// MirrorCmd configures and launches the screen-mirroring tool.
type MirrorCmd struct {
	TCPIP    bool   `name:"tcpip" help:"Connect over TCP/IP instead of USB."`
	Address  string `help:"Device address (ip or ip:port) for TCP/IP mode."`
	DetectIP bool   `name:"detect-ip" help:"Resolve the device address over USB and connect over TCP/IP."`

	VideoCodec  string `help:"Video codec." enum:"default,h264,h265,av1" default:"default"`
	VideoSource string `help:"Video source." enum:"display,camera" default:"display"`

	MouseControl    bool   `help:"Forward mouse input." default:"true" negatable:""`
	KeyboardControl bool   `help:"Forward keyboard input." default:"true" negatable:""`
	KeyboardMode    string `help:"Keyboard injection mode." enum:"default,uhid,aoa" default:"default"`
	NoControl       bool   `help:"Display only, no input forwarding."`

	MaxSize       int    `help:"Limit the larger video dimension (480-4000 px)."`
	MaxFPS        int    `help:"Limit the capture frame rate (1-120)."`
	BitRate       int    `help:"Video bitrate in Mbps (1-50)."`
	RecordFile    string `help:"Record the session to this file." type:"path"`
	ScreenTimeout int    `help:"Device screen-off timeout in seconds (1-3600)."`
	Orientation   string `help:"Lock capture orientation." enum:"auto,0,90,180,270" default:"auto"`

	Fullscreen         bool `help:"Start in fullscreen."`
	StayAwake          bool `help:"Keep the device awake."`
	ShowTouches        bool `help:"Show finger touches."`
	DisableScreensaver bool `help:"Disable the host screensaver."`
	Borderless         bool `help:"Borderless window."`
	AlwaysOnTop        bool `help:"Keep the window on top."`
	TurnScreenOff      bool `help:"Turn the device screen off while mirroring."`
	NoAudio            bool `help:"Disable audio forwarding."`

	ExtraArgs string `help:"Extra raw arguments appended to the command."`

	Grace  time.Duration `help:"Stop-escalation grace period." default:"3s"`
	DryRun bool          `help:"Print the command without launching."`
}

func (command *MirrorCmd) buildModel(ctx context.Context, journal *launcher.Journal) (launcher.CommandSpec, error) {
	model := scrcpy.NewModel()

	address := command.Address

	if command.DetectIP {
		resolved, err := bridge.NewResolver(journal).ResolveViaUSB(ctx)
		if err != nil {
			return launcher.CommandSpec{}, fmt.Errorf("detect device address: %w", err)
		}
		address = resolved.String()
		command.TCPIP = true
	}

	sets := []struct {
		key   string
		value any
	}{
		{scrcpy.KeyTCPIP, command.TCPIP},
		{scrcpy.KeyAddress, address},
		{scrcpy.KeyVideoCodec, command.VideoCodec},
		{scrcpy.KeyVideoSource, command.VideoSource},
		{scrcpy.KeyMouseControl, command.MouseControl},
		{scrcpy.KeyKeyboardControl, command.KeyboardControl},
		{scrcpy.KeyKeyboardMode, command.KeyboardMode},
		{scrcpy.KeyNoControl, command.NoControl},
		{scrcpy.KeyMaxSize, command.MaxSize},
		{scrcpy.KeyMaxFPS, command.MaxFPS},
		{scrcpy.KeyBitRate, command.BitRate},
		{scrcpy.KeyRecordFile, command.RecordFile},
		{scrcpy.KeyScreenTimeout, command.ScreenTimeout},
		{scrcpy.KeyOrientation, command.Orientation},
		{scrcpy.KeyFullscreen, command.Fullscreen},
		{scrcpy.KeyStayAwake, command.StayAwake},
		{scrcpy.KeyShowTouches, command.ShowTouches},
		{scrcpy.KeyDisableScreensaver, command.DisableScreensaver},
		{scrcpy.KeyBorderless, command.Borderless},
		{scrcpy.KeyAlwaysOnTop, command.AlwaysOnTop},
		{scrcpy.KeyTurnScreenOff, command.TurnScreenOff},
		{scrcpy.KeyNoAudio, command.NoAudio},
		{scrcpy.KeyExtraArgs, command.ExtraArgs},
	}

	for _, set := range sets {
		if err := model.Set(set.key, set.value); err != nil {
			return launcher.CommandSpec{}, err
		}
	}

	// Display-only mode wins over the input-forwarding defaults.
	if command.NoControl {
		if err := model.Set(scrcpy.KeyMouseControl, false); err != nil {
			return launcher.CommandSpec{}, err
		}
		if err := model.Set(scrcpy.KeyKeyboardControl, false); err != nil {
			return launcher.CommandSpec{}, err
		}
	}

	snapshot, err := model.Snapshot()
	if err != nil {
		return launcher.CommandSpec{}, err
	}

	return scrcpy.BuildCommand(snapshot)
}

// Run builds the scrcpy command from the flags and either prints it or
// launches it under a supervisor.
func (command *MirrorCmd) Run(ctx context.Context, journal *launcher.Journal) error {
	spec, err := command.buildModel(ctx, journal)
	if err != nil {
		return err
	}

	if command.DryRun {
		fmt.Println(spec.Preview())
		return nil
	}

	sup, err := newSupervisor(launcher.ToolMirror, journal, command.Grace,
		func(ctx context.Context, _ string) (string, error) {
			return scrcpy.LocateExecutable(ctx)
		})
	if err != nil {
		return err
	}

	return runSession(ctx, journal, sup, spec)
}
