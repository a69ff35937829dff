package identity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceIDIsGeneratedOnceAndPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "device_id")

	p := NewProvider(path)
	id := p.DeviceID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, p.DeviceID())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, id, strings.TrimSpace(string(data)))

	// A new process reads the same id back.
	assert.Equal(t, id, NewProvider(path).DeviceID())
}

func TestDeviceIDReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_id")
	require.NoError(t, os.WriteFile(path, []byte("  legacy-device \n"), 0o600))

	assert.Equal(t, "legacy-device", NewProvider(path).DeviceID())
}

func TestDeviceIDFallsBackToMemory(t *testing.T) {
	// The parent is a regular file, so the id can never be written.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	p := NewProvider(filepath.Join(blocker, "device_id"))
	id := p.DeviceID()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, p.DeviceID())

	assert.NotEmpty(t, NewProvider("").DeviceID())
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "device_id", filepath.Base(path))
	assert.Equal(t, "officeplan", filepath.Base(filepath.Dir(path)))
}
