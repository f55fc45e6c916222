package scrcpy

import (
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/options"
)

// Option keys for the mirroring tool.
const (
	KeyTCPIP              = "tcpip"
	KeyAddress            = "address"
	KeyVideoCodec         = "video-codec"
	KeyVideoSource        = "video-source"
	KeyMouseControl       = "mouse-control"
	KeyKeyboardControl    = "keyboard-control"
	KeyKeyboardMode       = "keyboard-mode"
	KeyNoControl          = "no-control"
	KeyMaxSize            = "max-size"
	KeyMaxFPS             = "max-fps"
	KeyBitRate            = "bit-rate"
	KeyRecordFile         = "record-file"
	KeyScreenTimeout      = "screen-timeout"
	KeyOrientation        = "orientation"
	KeyFullscreen         = "fullscreen"
	KeyStayAwake          = "stay-awake"
	KeyShowTouches        = "show-touches"
	KeyDisableScreensaver = "disable-screensaver"
	KeyBorderless         = "borderless"
	KeyAlwaysOnTop        = "always-on-top"
	KeyTurnScreenOff      = "turn-screen-off"
	KeyNoAudio            = "no-audio"
	KeyExtraArgs          = "extra-args"
)

// Schema declares every supported option of the mirroring tool: type,
// default, bounds and mutual exclusions, checked at every mutation.
var Schema = options.MustSchema(launcher.ToolMirror, []options.Spec{
	{Key: KeyTCPIP, Kind: options.KindBool},
	{Key: KeyAddress, Kind: options.KindString},
	{Key: KeyVideoCodec, Kind: options.KindEnum, Default: "default", Enum: []string{"default", "h264", "h265", "av1"}},
	{Key: KeyVideoSource, Kind: options.KindEnum, Default: "display", Enum: []string{"display", "camera"}},
	{Key: KeyMouseControl, Kind: options.KindBool, Default: true},
	{Key: KeyKeyboardControl, Kind: options.KindBool, Default: true},
	{Key: KeyKeyboardMode, Kind: options.KindEnum, Default: "default", Enum: []string{"default", "uhid", "aoa"}},
	{Key: KeyNoControl, Kind: options.KindBool, Excludes: []string{KeyMouseControl, KeyKeyboardControl}},
	{Key: KeyMaxSize, Kind: options.KindInt, Min: 480, Max: 4000, Optional: true},
	{Key: KeyMaxFPS, Kind: options.KindInt, Min: 1, Max: 120, Optional: true},
	{Key: KeyBitRate, Kind: options.KindInt, Min: 1, Max: 50, Optional: true},
	{Key: KeyRecordFile, Kind: options.KindString},
	{Key: KeyScreenTimeout, Kind: options.KindInt, Min: 1, Max: 3600, Optional: true},
	{Key: KeyOrientation, Kind: options.KindEnum, Default: "auto", Enum: []string{"auto", "0", "90", "180", "270"}},
	{Key: KeyFullscreen, Kind: options.KindBool},
	{Key: KeyStayAwake, Kind: options.KindBool},
	{Key: KeyShowTouches, Kind: options.KindBool},
	{Key: KeyDisableScreensaver, Kind: options.KindBool},
	{Key: KeyBorderless, Kind: options.KindBool},
	{Key: KeyAlwaysOnTop, Kind: options.KindBool},
	{Key: KeyTurnScreenOff, Kind: options.KindBool},
	{Key: KeyNoAudio, Kind: options.KindBool},
	{Key: KeyExtraArgs, Kind: options.KindString},
})

// NewModel creates a mirroring option model seeded with defaults.
func NewModel() *options.Model {
	return options.NewModel(Schema)
}
