package castkitctl

import (
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/cli"
)

// Command is the castkit-ctl command tree.
type Command struct {
	Log cli.LogConfig `embed:"" prefix:"log-"`

	Mirror MirrorCmd `cmd:"" help:"Launch the screen-mirroring tool (scrcpy)"`
	Webcam WebcamCmd `cmd:"" help:"Launch the webcam-bridging tool (droidcam)"`
	Detect DetectCmd `cmd:"" name:"detect-ip" help:"Detect the phone's WiFi address over USB"`
	Doctor DoctorCmd `cmd:"" help:"Check availability of the managed tools"`
}
