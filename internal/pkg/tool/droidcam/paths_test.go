package droidcam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateExecutable_EnvOverride(t *testing.T) {
	t.Run("uses the override when it exists", func(t *testing.T) {
		dir := t.TempDir()
		fake := filepath.Join(dir, "droidcam-cli")
		require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755))

		t.Setenv("DROIDCAM_EXECUTABLE", fake)

		path, err := LocateExecutable(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fake, path)
	})

	t.Run("fails when the override is missing", func(t *testing.T) {
		t.Setenv("DROIDCAM_EXECUTABLE", filepath.Join(t.TempDir(), "missing"))

		_, err := LocateExecutable(context.Background())
		assert.Error(t, err)
	})
}
