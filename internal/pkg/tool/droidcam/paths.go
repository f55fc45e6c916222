package droidcam

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/orbiqd/orbiqd-castkit/internal/pkg/process"
)

const envExecutablePath = "DROIDCAM_EXECUTABLE"

var defaultExecutableCandidates = []string{ExecutableName, "droidcam"}

// LocateExecutable resolves the droidcam binary, preferring an explicit
// DROIDCAM_EXECUTABLE override before the PATH lookup.
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

	path, err := process.LookupExecutable(ctx, defaultExecutableCandidates)
	if err != nil {
		return "", fmt.Errorf("lookup droidcam executable: %w", err)
	}

	return path, nil
}

// Discovery checks whether droidcam is available on the system.
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
