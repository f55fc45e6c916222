package scrcpy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/process"
)

const envExecutablePath = "SCRCPY_EXECUTABLE"

var semverPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// LocateExecutable resolves the scrcpy binary, preferring an explicit
// SCRCPY_EXECUTABLE override before the PATH lookup.
func LocateExecutable(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if envPath := os.Getenv(envExecutablePath); envPath != "" {
		absPath, err := filepath.Abs(envPath)
		if err != nil {
			return "", fmt.Errorf("resolve %s path: %w", envExecutablePath, err)
		}

		if _, err := os.Stat(absPath); err != nil {
			return "", fmt.Errorf("executable from %s not found: %w", envExecutablePath, err)
		}

		return absPath, nil
	}

	path, err := process.LookupExecutable(ctx, []string{ExecutableName})
	if err != nil {
		return "", fmt.Errorf("lookup %s executable: %w", ExecutableName, err)
	}

	return path, nil
}

// Discovery checks whether scrcpy is available on the system.
func Discovery(ctx context.Context) (bool, error) {
	_, err := LocateExecutable(ctx)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return false, nil
	}

	return false, err
}

// Version reads the installed scrcpy version.
func Version(ctx context.Context) (string, error) {
	path, err := LocateExecutable(ctx)
	if err != nil {
		return "", err
	}

	output, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("read %s version: %w", ExecutableName, err)
	}

	version := semverPattern.FindString(string(output))
	if version == "" {
		return "", fmt.Errorf("parse %s version from output: %s", ExecutableName, strings.TrimSpace(string(output)))
	}

	return version, nil
}
