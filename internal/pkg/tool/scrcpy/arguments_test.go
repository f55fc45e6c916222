package scrcpy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/options"
)

func buildSnapshot(t *testing.T, values map[string]any) options.Snapshot {
	t.Helper()

	model := NewModel()
	for key, value := range values {
		require.NoError(t, model.Set(key, value))
	}

	snapshot, err := model.Snapshot()
	require.NoError(t, err)
	return snapshot
}

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]any
		expected []string
	}{
		{
			name:     "defaults emit input forwarding only",
			values:   nil,
			expected: []string{"-M", "-K"},
		},
		{
			name: "bit rate and fps caps",
			values: map[string]any{
				KeyBitRate: 8,
				KeyMaxFPS:  60,
			},
			expected: []string{"-M", "-K", "--max-fps", "60", "-b", "8M"},
		},
		{
			name: "wireless session with address",
			values: map[string]any{
				KeyTCPIP:   true,
				KeyAddress: "192.168.1.40:5555",
			},
			expected: []string{"--tcpip=192.168.1.40:5555", "-M", "-K"},
		},
		{
			name: "display only mode",
			values: map[string]any{
				KeyNoControl:       true,
				KeyMouseControl:    false,
				KeyKeyboardControl: false,
			},
			expected: []string{"-n"},
		},
		{
			name: "orientation and recording",
			values: map[string]any{
				KeyOrientation: "90",
				KeyRecordFile:  "session.mp4",
			},
			expected: []string{"-M", "-K", "--record", "session.mp4", "--capture-orientation=@90"},
		},
		{
			name: "window and screen toggles",
			values: map[string]any{
				KeyFullscreen:         true,
				KeyStayAwake:          true,
				KeyTurnScreenOff:      true,
				KeyDisableScreensaver: true,
				KeyBorderless:         true,
				KeyAlwaysOnTop:        true,
			},
			expected: []string{
				"-M", "-K", "-f", "-w", "--disable-screensaver",
				"--window-borderless", "--always-on-top", "-S",
			},
		},
		{
			name: "extra args split into tokens",
			values: map[string]any{
				KeyExtraArgs: "--power-off-on-close --legacy-paste",
			},
			expected: []string{"-M", "-K", "--power-off-on-close", "--legacy-paste"},
		},
		{
			name: "non-default codec and source",
			values: map[string]any{
				KeyVideoCodec:  "h265",
				KeyVideoSource: "camera",
			},
			expected: []string{"--video-codec", "h265", "--video-source=camera", "-M", "-K"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := BuildCommand(buildSnapshot(t, tt.values))
			require.NoError(t, err)
			assert.Equal(t, launcher.ToolMirror, spec.Tool)
			assert.Equal(t, ExecutableName, spec.Executable)
			assert.Equal(t, tt.expected, spec.Args)
		})
	}
}

func TestBuildCommand_WirelessWithoutAddress(t *testing.T) {
	snapshot := buildSnapshot(t, map[string]any{KeyTCPIP: true})

	_, err := BuildCommand(snapshot)

	var missingErr *launcher.MissingTargetError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, launcher.ToolMirror, missingErr.Tool)
}

func TestBuildCommand_MalformedAddress(t *testing.T) {
	snapshot := buildSnapshot(t, map[string]any{
		KeyTCPIP:   true,
		KeyAddress: "not-an-ip",
	})

	_, err := BuildCommand(snapshot)

	var validationErr *launcher.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, KeyAddress, validationErr.Key)
}

func TestBuildCommand_WrongTool(t *testing.T) {
	model := options.NewModel(options.MustSchema(launcher.ToolWebcam, []options.Spec{
		{Key: "address", Kind: options.KindString},
	}))
	snapshot, err := model.Snapshot()
	require.NoError(t, err)

	_, err = BuildCommand(snapshot)
	assert.Error(t, err)
}

func TestBuildCommand_Deterministic(t *testing.T) {
	values := map[string]any{
		KeyTCPIP:   true,
		KeyAddress: "192.168.1.40",
		KeyBitRate: 12,
		KeyMaxSize: 1920,
	}

	first, err := BuildCommand(buildSnapshot(t, values))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := BuildCommand(buildSnapshot(t, values))
		require.NoError(t, err)
		assert.Equal(t, first.Args, again.Args)
	}
}

func TestBuildCommand_InactiveDefaultsStaySilent(t *testing.T) {
	// Enum options at their default value must not emit flags.
	spec, err := BuildCommand(buildSnapshot(t, map[string]any{
		KeyVideoCodec:   "default",
		KeyVideoSource:  "display",
		KeyKeyboardMode: "default",
		KeyOrientation:  "auto",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"-M", "-K"}, spec.Args)
}
