package bridge

import (
	"regexp"
	"sort"
	"strings"
)

// Device is one row of the bridge tool's device enumeration.
type Device struct {
	// Serial is the bridge serial number.
	Serial string

	// State is the bridge-reported state ("device", "unauthorized", "offline").
	State string
}

var (
	inetPattern     = regexp.MustCompile(`inet\s+(\d+\.\d+\.\d+\.\d+)`)
	inetAddrPattern = regexp.MustCompile(`inet addr:(\d+\.\d+\.\d+\.\d+)`)
	dottedQuad      = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
)

// parseDeviceList parses `adb devices` output. The header line and empty
// lines are skipped; only devices in the "device" state are usable.
func parseDeviceList(output string) []Device {
	var devices []Device

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		devices = append(devices, Device{Serial: fields[0], State: fields[1]})
	}

	return devices
}

// usableDevices filters to attached devices and sorts them by serial so the
// first-device selection is deterministic across invocations.
func usableDevices(devices []Device) []Device {
	var usable []Device

	for _, device := range devices {
		if device.State == "device" {
			usable = append(usable, device)
		}
	}

	sort.Slice(usable, func(i, j int) bool {
		return usable[i].Serial < usable[j].Serial
	})

	return usable
}

// parseInterfaceAddress extracts the first IPv4 address from `ip addr show`
// output.
func parseInterfaceAddress(output string) (string, bool) {
	match := inetPattern.FindStringSubmatch(output)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// parseIfconfigAddress extracts the first IPv4 address from legacy `ifconfig`
// output.
func parseIfconfigAddress(output string) (string, bool) {
	match := inetAddrPattern.FindStringSubmatch(output)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// parsePropAddress validates a `getprop dhcp.wlan0.ipaddress` value.
func parsePropAddress(output string) (string, bool) {
	value := strings.TrimSpace(output)
	if !dottedQuad.MatchString(value) {
		return "", false
	}

	return value, true
}
