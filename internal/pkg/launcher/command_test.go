package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandSpec_Argv(t *testing.T) {
	spec := CommandSpec{
		Tool:       ToolMirror,
		Executable: "scrcpy",
		Args:       []string{"-M", "-K"},
	}

	argv := spec.Argv()
	assert.Equal(t, []string{"scrcpy", "-M", "-K"}, argv)

	// The returned slice is a copy.
	argv[1] = "mutated"
	assert.Equal(t, []string{"-M", "-K"}, spec.Args)
}

func TestCommandSpec_Preview(t *testing.T) {
	tests := []struct {
		name     string
		spec     CommandSpec
		expected string
	}{
		{
			name:     "plain tokens",
			spec:     CommandSpec{Executable: "scrcpy", Args: []string{"-b", "8M"}},
			expected: "scrcpy -b 8M",
		},
		{
			name:     "token with spaces is quoted",
			spec:     CommandSpec{Executable: "scrcpy", Args: []string{"--record", "my session.mp4"}},
			expected: `scrcpy --record "my session.mp4"`,
		},
		{
			name:     "no arguments",
			spec:     CommandSpec{Executable: "droidcam-cli"},
			expected: "droidcam-cli",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.spec.Preview())
		})
	}
}
