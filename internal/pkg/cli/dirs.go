package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Castkit executable names.
const (
	ExecutableCtl = "castkit-ctl"
	ExecutableMCP = "castkit-mcp"
)

const defaultRuntimeLogDir = "~/.orbiqd/castkit/logs/runtime/"

// ResolveRuntimeLogDir returns the directory session output logs are written
// under, honoring the CASTKIT_RUNTIME_LOG_DIR override.
func ResolveRuntimeLogDir() (string, error) {
	dir := os.Getenv("CASTKIT_RUNTIME_LOG_DIR")
	if dir == "" {
		dir = defaultRuntimeLogDir
	}

	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("expand runtime log dir: %w", err)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve absolute runtime log dir: %w", err)
	}

	return abs, nil
}
