package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
)

func testSpecs() []Spec {
	return []Spec{
		{Key: "enabled", Kind: KindBool, Default: true},
		{Key: "rate", Kind: KindInt, Min: 1, Max: 50, Default: 8},
		{Key: "cap", Kind: KindInt, Min: 1, Max: 120, Optional: true},
		{Key: "mode", Kind: KindEnum, Enum: []string{"fast", "slow"}, Default: "fast"},
		{Key: "label", Kind: KindString},
		{Key: "solo", Kind: KindBool, Excludes: []string{"label"}},
	}
}

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		specs   []Spec
		wantErr string
	}{
		{
			name:  "valid specs",
			specs: testSpecs(),
		},
		{
			name: "duplicate key",
			specs: []Spec{
				{Key: "rate", Kind: KindInt, Min: 1, Max: 10, Default: 5},
				{Key: "rate", Kind: KindInt, Min: 1, Max: 10, Default: 5},
			},
			wantErr: `duplicate option key "rate"`,
		},
		{
			name: "default outside bounds",
			specs: []Spec{
				{Key: "rate", Kind: KindInt, Min: 1, Max: 10, Default: 99},
			},
			wantErr: `default for "rate"`,
		},
		{
			name: "default of wrong type",
			specs: []Spec{
				{Key: "enabled", Kind: KindBool, Default: "yes"},
			},
			wantErr: `default for "enabled"`,
		},
		{
			name: "dangling exclusion",
			specs: []Spec{
				{Key: "solo", Kind: KindBool, Excludes: []string{"missing"}},
			},
			wantErr: `option "solo" excludes undeclared key "missing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := NewSchema(launcher.ToolMirror, tt.specs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, launcher.ToolMirror, schema.Tool())
		})
	}
}

func TestSchema_Keys(t *testing.T) {
	schema := MustSchema(launcher.ToolMirror, testSpecs())

	assert.Equal(t, []string{"enabled", "rate", "cap", "mode", "label", "solo"}, schema.Keys())
}

func TestSchema_Lookup(t *testing.T) {
	schema := MustSchema(launcher.ToolMirror, testSpecs())

	spec, ok := schema.Lookup("rate")
	require.True(t, ok)
	assert.Equal(t, KindInt, spec.Kind)
	assert.Equal(t, 8, spec.Default)

	_, ok = schema.Lookup("unknown")
	assert.False(t, ok)
}

func TestSpec_Active(t *testing.T) {
	tests := []struct {
		name   string
		spec   Spec
		value  any
		active bool
	}{
		{name: "bool true", spec: Spec{Kind: KindBool}, value: true, active: true},
		{name: "bool false", spec: Spec{Kind: KindBool}, value: false, active: false},
		{name: "int set", spec: Spec{Kind: KindInt, Min: 1, Max: 10}, value: 5, active: true},
		{name: "int zero", spec: Spec{Kind: KindInt, Min: 1, Max: 10, Optional: true}, value: 0, active: false},
		{name: "enum at default", spec: Spec{Kind: KindEnum, Enum: []string{"a", "b"}, Default: "a"}, value: "a", active: false},
		{name: "enum changed", spec: Spec{Kind: KindEnum, Enum: []string{"a", "b"}, Default: "a"}, value: "b", active: true},
		{name: "string set", spec: Spec{Kind: KindString}, value: "x", active: true},
		{name: "string empty", spec: Spec{Kind: KindString}, value: "", active: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.spec.Active(tt.value))
		})
	}
}
