package process

import (
	"context"
	"os/exec"

	"github.com/cli/safeexec"
)

// LookupExecutable resolves the first candidate name found on PATH to an
// absolute path. Returns an error wrapping exec.ErrNotFound when none of the
// candidates resolve.
func LookupExecutable(ctx context.Context, candidates []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lastErr := error(exec.ErrNotFound)

	for _, candidate := range candidates {
		path, err := safeexec.LookPath(candidate)
		if err == nil {
			return path, nil
		}
		lastErr = err
	}

	return "", lastErr
}
