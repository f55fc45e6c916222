package droidcam

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
			name:     "address with default port",
			values:   map[string]any{KeyAddress: "192.168.1.20"},
			expected: []string{"192.168.1.20", "4747"},
		},
		{
			name: "port option",
			values: map[string]any{
				KeyAddress: "192.168.1.20",
				KeyPort:    4748,
			},
			expected: []string{"192.168.1.20", "4748"},
		},
		{
			name: "port embedded in address wins over option",
			values: map[string]any{
				KeyAddress: "192.168.1.20:5000",
				KeyPort:    4748,
			},
			expected: []string{"192.168.1.20", "5000"},
		},
		{
			name: "audio and video size flags precede positionals",
			values: map[string]any{
				KeyAddress:   "10.0.0.7",
				KeyAudio:     true,
				KeyVideoSize: "1280x720",
			},
			expected: []string{"-a", "-size=1280x720", "10.0.0.7", "4747"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := BuildCommand(buildSnapshot(t, tt.values))
			require.NoError(t, err)
			assert.Equal(t, launcher.ToolWebcam, spec.Tool)
			assert.Equal(t, ExecutableName, spec.Executable)
			assert.Equal(t, tt.expected, spec.Args)
		})
	}
}

func TestBuildCommand_MissingAddress(t *testing.T) {
	_, err := BuildCommand(buildSnapshot(t, nil))

	var missingErr *launcher.MissingTargetError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, launcher.ToolWebcam, missingErr.Tool)
}

func TestBuildCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		key    string
	}{
		{
			name:   "malformed address",
			values: map[string]any{KeyAddress: "phone.local"},
			key:    KeyAddress,
		},
		{
			name: "malformed video size",
			values: map[string]any{
				KeyAddress:   "192.168.1.20",
				KeyVideoSize: "wide",
			},
			key: KeyVideoSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCommand(buildSnapshot(t, tt.values))

			var validationErr *launcher.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.key, validationErr.Key)
		})
	}
}
