package droidcam

import (
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/options"
)

// Option keys for the webcam tool.
const (
	KeyAddress   = "address"
	KeyPort      = "port"
	KeyAudio     = "audio"
	KeyVideoSize = "video-size"
)

// DefaultPort is the port the DroidCam phone app listens on.
const DefaultPort = 4747

// Schema declares the webcam tool options.
var Schema = options.MustSchema(launcher.ToolWebcam, []options.Spec{
	{Key: KeyAddress, Kind: options.KindString},
	{Key: KeyPort, Kind: options.KindInt, Default: DefaultPort, Min: 1, Max: 65535},
	{Key: KeyAudio, Kind: options.KindBool},
	{Key: KeyVideoSize, Kind: options.KindString},
})

// NewModel creates a webcam option model seeded with defaults.
func NewModel() *options.Model {
	return options.NewModel(Schema)
}
