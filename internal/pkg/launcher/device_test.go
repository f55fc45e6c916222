package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeviceAddress(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected DeviceAddress
		wantErr  bool
	}{
		{
			name:     "plain ip",
			text:     "192.168.1.40",
			expected: DeviceAddress{IP: "192.168.1.40", Method: MethodManual},
		},
		{
			name:     "ip with port",
			text:     "192.168.1.40:5555",
			expected: DeviceAddress{IP: "192.168.1.40", Port: 5555, Method: MethodManual},
		},
		{
			name:     "surrounding whitespace trimmed",
			text:     "  10.0.0.2  ",
			expected: DeviceAddress{IP: "10.0.0.2", Method: MethodManual},
		},
		{name: "empty", text: "", wantErr: true},
		{name: "hostname rejected", text: "phone.local", wantErr: true},
		{name: "garbage", text: "not an address", wantErr: true},
		{name: "port out of range", text: "192.168.1.40:70000", wantErr: true},
		{name: "port zero", text: "192.168.1.40:0", wantErr: true},
		{name: "missing port after colon", text: "192.168.1.40:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			address, err := ParseDeviceAddress(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, address)
		})
	}
}

func TestDeviceAddress_String(t *testing.T) {
	assert.Equal(t, "192.168.1.40", DeviceAddress{IP: "192.168.1.40"}.String())
	assert.Equal(t, "192.168.1.40:5555", DeviceAddress{IP: "192.168.1.40", Port: 5555}.String())
}
