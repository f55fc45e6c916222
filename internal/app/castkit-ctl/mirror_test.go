package castkitctl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
)

// defaultMirrorCmd mirrors the kong defaults, which are not applied when the
// struct is built directly.
func defaultMirrorCmd() *MirrorCmd {
	return &MirrorCmd{
		VideoCodec:      "default",
		VideoSource:     "display",
		MouseControl:    true,
		KeyboardControl: true,
		KeyboardMode:    "default",
		Orientation:     "auto",
	}
}

func TestMirrorCmd_BuildModel(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*MirrorCmd)
		expected []string
	}{
		{
			name:     "defaults",
			mutate:   func(command *MirrorCmd) {},
			expected: []string{"-M", "-K"},
		},
		{
			name: "wireless session",
			mutate: func(command *MirrorCmd) {
				command.TCPIP = true
				command.Address = "192.168.1.40:5555"
			},
			expected: []string{"--tcpip=192.168.1.40:5555", "-M", "-K"},
		},
		{
			name: "no-control overrides input forwarding defaults",
			mutate: func(command *MirrorCmd) {
				command.NoControl = true
			},
			expected: []string{"-n"},
		},
		{
			name: "quality settings",
			mutate: func(command *MirrorCmd) {
				command.BitRate = 16
				command.MaxFPS = 30
				command.MaxSize = 1024
			},
			expected: []string{"-M", "-K", "-m", "1024", "--max-fps", "30", "-b", "16M"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command := defaultMirrorCmd()
			tt.mutate(command)

			spec, err := command.buildModel(context.Background(), launcher.NewJournal())
			require.NoError(t, err)
			assert.Equal(t, launcher.ToolMirror, spec.Tool)
			assert.Equal(t, tt.expected, spec.Args)
		})
	}
}

func TestMirrorCmd_BuildModelErrors(t *testing.T) {
	t.Run("tcpip without address", func(t *testing.T) {
		command := defaultMirrorCmd()
		command.TCPIP = true

		_, err := command.buildModel(context.Background(), launcher.NewJournal())

		var missingErr *launcher.MissingTargetError
		assert.ErrorAs(t, err, &missingErr)
	})

	t.Run("bit rate out of range", func(t *testing.T) {
		command := defaultMirrorCmd()
		command.BitRate = 500

		_, err := command.buildModel(context.Background(), launcher.NewJournal())

		var validationErr *launcher.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestWebcamCmd_BuildModel(t *testing.T) {
	t.Run("builds positional arguments", func(t *testing.T) {
		command := &WebcamCmd{Address: "192.168.1.20", Port: 4747, Audio: true}

		spec, err := command.buildModel(context.Background(), launcher.NewJournal())
		require.NoError(t, err)
		assert.Equal(t, launcher.ToolWebcam, spec.Tool)
		assert.Equal(t, []string{"-a", "192.168.1.20", "4747"}, spec.Args)
	})

	t.Run("missing address", func(t *testing.T) {
		command := &WebcamCmd{Port: 4747}

		_, err := command.buildModel(context.Background(), launcher.NewJournal())

		var missingErr *launcher.MissingTargetError
		assert.ErrorAs(t, err, &missingErr)
	})
}
