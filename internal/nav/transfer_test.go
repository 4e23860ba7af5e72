package nav

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharenav/config"
)

func writeSized(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestTransferGate_AllowsUnderCap(t *testing.T) {
	gate := NewTransferGate(config.MB)

	assert.NoError(t, gate.Authorize(writeSized(t, "small.bin", 1024)))
	assert.NoError(t, gate.Authorize(writeSized(t, "exact.bin", config.MB)), "a file at the cap is allowed")
}

func TestTransferGate_DeniesOverCap(t *testing.T) {
	gate := NewTransferGate(config.MB)
	path := writeSized(t, "big.bin", config.MB+1)

	err := gate.Authorize(path)
	var tooLarge *TooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(config.MB+1), tooLarge.Size)
	assert.Equal(t, int64(config.MB), tooLarge.Limit)
	assert.Equal(t, "File exceeds 1MB limit", tooLarge.Alert())
}

func TestTransferGate_MissingFile(t *testing.T) {
	gate := NewTransferGate(config.MB)

	err := gate.Authorize(filepath.Join(t.TempDir(), "gone.bin"))
	require.Error(t, err)
	var tooLarge *TooLargeError
	assert.False(t, errors.As(err, &tooLarge))
}
