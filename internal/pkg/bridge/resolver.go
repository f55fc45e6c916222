// Package bridge resolves a phone's wireless address by shelling out to the
// Android debug bridge. The calls are synchronous and bounded; callers invoke
// them off the coordinating goroutine.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/launcher"
	"github.com/orbiqd/orbiqd-castkit/internal/pkg/process"
)

// ExecutableName is the device bridge binary.
const ExecutableName = "adb"

// DefaultCommandTimeout bounds each individual bridge invocation.
const DefaultCommandTimeout = 5 * time.Second

// wirelessInterface is the interface queried for the phone's WiFi address.
const wirelessInterface = "wlan0"

// runFunc executes one bridge command and returns its combined output.
// Swapped out in tests.
type runFunc func(ctx context.Context, path string, args ...string) (string, error)

// Option configures a resolver.
type Option func(*Resolver)

// WithCommandTimeout overrides the per-invocation timeout.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(resolver *Resolver) {
		if timeout > 0 {
			resolver.timeout = timeout
		}
	}
}

func withRunFunc(run runFunc) Option {
	return func(resolver *Resolver) {
		resolver.run = run
	}
}

// Resolver enumerates bridge-attached devices and extracts their wireless
// address.
type Resolver struct {
	journal *launcher.Journal
	timeout time.Duration
	run     runFunc
	locate  func(ctx context.Context) (string, error)
}

// NewResolver creates a resolver that reports to the shared journal.
func NewResolver(journal *launcher.Journal, opts ...Option) *Resolver {
	resolver := &Resolver{
		journal: journal,
		timeout: DefaultCommandTimeout,
		locate: func(ctx context.Context) (string, error) {
			return process.LookupExecutable(ctx, []string{ExecutableName})
		},
	}
	resolver.run = resolver.runCommand

	for _, opt := range opts {
		opt(resolver)
	}

	return resolver
}

// ResolveViaUSB enumerates USB-attached devices and extracts the selected
// device's wireless address.
//
// Fails with launcher.ErrBridgeToolNotFound when adb is missing,
// launcher.ErrNoDevice when no usable device is attached, and
// launcher.ErrAddressNotFound when no wireless address can be parsed. When
// several devices are attached the one with the lexicographically smallest
// serial is chosen and a warning event is recorded.
func (resolver *Resolver) ResolveViaUSB(ctx context.Context) (launcher.DeviceAddress, error) {
	path, err := resolver.locate(ctx)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return launcher.DeviceAddress{}, fmt.Errorf("%w: install the Android platform tools", launcher.ErrBridgeToolNotFound)
		}
		return launcher.DeviceAddress{}, fmt.Errorf("locate bridge tool: %w", err)
	}

	resolver.emit(slog.LevelInfo, "checking for connected devices")

	output, err := resolver.run(ctx, path, "devices")
	if err != nil {
		return launcher.DeviceAddress{}, fmt.Errorf("enumerate devices: %w", err)
	}

	devices := usableDevices(parseDeviceList(output))
	if len(devices) == 0 {
		return launcher.DeviceAddress{}, launcher.ErrNoDevice
	}

	selected := devices[0]
	if len(devices) > 1 {
		resolver.emit(slog.LevelWarn, fmt.Sprintf("%d devices attached, using %s (lowest serial)", len(devices), selected.Serial))
	}

	resolver.emit(slog.LevelInfo, fmt.Sprintf("querying wireless address of %s", selected.Serial))

	ip, err := resolver.queryAddress(ctx, path, selected.Serial)
	if err != nil {
		return launcher.DeviceAddress{}, err
	}

	address := launcher.DeviceAddress{
		IP:     ip,
		Serial: selected.Serial,
		Method: launcher.MethodUSB,
	}

	resolver.emit(slog.LevelInfo, fmt.Sprintf("detected address %s", address))

	return address, nil
}

// Discovery checks whether the bridge tool is available on the system.
func (resolver *Resolver) Discovery(ctx context.Context) (bool, error) {
	_, err := resolver.locate(ctx)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return false, nil
	}

	return false, err
}

// queryAddress tries the modern `ip addr show`, then legacy `ifconfig`, then
// the DHCP property, in that order. Devices differ in which of the three
// works.
func (resolver *Resolver) queryAddress(ctx context.Context, path, serial string) (string, error) {
	if output, err := resolver.run(ctx, path, "-s", serial, "shell", "ip", "addr", "show", wirelessInterface); err == nil {
		if ip, ok := parseInterfaceAddress(output); ok {
			return ip, nil
		}
	}

	if output, err := resolver.run(ctx, path, "-s", serial, "shell", "ifconfig", wirelessInterface); err == nil {
		if ip, ok := parseIfconfigAddress(output); ok {
			return ip, nil
		}
	}

	if output, err := resolver.run(ctx, path, "-s", serial, "shell", "getprop", "dhcp."+wirelessInterface+".ipaddress"); err == nil {
		if ip, ok := parsePropAddress(output); ok {
			return ip, nil
		}
	}

	return "", fmt.Errorf("%w: is WiFi enabled on the device?", launcher.ErrAddressNotFound)
}

func (resolver *Resolver) runCommand(ctx context.Context, path string, args ...string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, resolver.timeout)
	defer cancel()

	output, err := exec.CommandContext(runCtx, path, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %v: %w", ExecutableName, args, err)
	}

	return string(output), nil
}

func (resolver *Resolver) emit(level slog.Level, message string) {
	resolver.journal.Append(launcher.LogEvent{
		Source:  "bridge",
		Level:   level,
		Message: message,
	})
}
