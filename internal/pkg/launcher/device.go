package launcher

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DetectionMethod tags how a device address was obtained.
type DetectionMethod string

const (
	// MethodUSB means the address was enumerated from a USB-attached device.
	MethodUSB DetectionMethod = "usb"

	// MethodManual means the address was typed in by the user.
	MethodManual DetectionMethod = "manual"
)

// DeviceAddress is a resolved device network address. It is produced by the
// IP resolver and consumed immediately by the option model.
type DeviceAddress struct {
	// IP is the dotted-quad wireless address of the device.
	IP string `json:"ip"`

	// Port is the target port, zero when the tool default applies.
	Port int `json:"port,omitempty"`

	// Serial is the bridge serial of the device the address came from.
	Serial string `json:"serial,omitempty"`

	// Method records how the address was detected.
	Method DetectionMethod `json:"method"`
}

// String renders the address as "ip" or "ip:port".
func (address DeviceAddress) String() string {
	if address.Port > 0 {
		return fmt.Sprintf("%s:%d", address.IP, address.Port)
	}

	return address.IP
}

// ParseDeviceAddress parses a manually entered "ip" or "ip:port" string.
func ParseDeviceAddress(text string) (DeviceAddress, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return DeviceAddress{}, fmt.Errorf("address is empty")
	}

	host := text
	port := 0

	if strings.Contains(text, ":") {
		splitHost, splitPort, err := net.SplitHostPort(text)
		if err != nil {
			return DeviceAddress{}, fmt.Errorf("malformed address %q: %w", text, err)
		}

		number, err := strconv.Atoi(splitPort)
		if err != nil || number < 1 || number > 65535 {
			return DeviceAddress{}, fmt.Errorf("malformed port in address %q", text)
		}

		host = splitHost
		port = number
	}

	if net.ParseIP(host) == nil {
		return DeviceAddress{}, fmt.Errorf("malformed ip in address %q", text)
	}

	return DeviceAddress{IP: host, Port: port, Method: MethodManual}, nil
}
