// Package identity gives a client installation a stable, anonymous device id.
package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Provider hands out the device id stored at path, creating it on first use.
type Provider struct {
	path string

	mu sync.Mutex
	id string
}

func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// DefaultPath returns <user config dir>/officeplan/device_id.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's config directory: %w", err)
	}
	return filepath.Join(dir, "officeplan", "device_id"), nil
}

// DeviceID returns the persisted id, generating and writing it on the first
// call. It never fails: when the file cannot be read or written the id lives
// in memory for the lifetime of the Provider.
func (p *Provider) DeviceID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id
	}

	if id, err := p.read(); err == nil {
		p.id = id
		return p.id
	} else if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read device id, generating a new one", "path", p.path, "error", err)
	}

	p.id = uuid.NewString()
	if err := p.write(p.id); err != nil {
		slog.Warn("Failed to persist device id, using it for this session only", "path", p.path, "error", err)
	}
	return p.id
}

func (p *Provider) read() (string, error) {
	if p.path == "" {
		return "", fs.ErrNotExist
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", fmt.Errorf("device id file %s is empty", p.path)
	}
	return id, nil
}

func (p *Provider) write(id string) error {
	if p.path == "" {
		return errors.New("no device id path configured")
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("failed to create the device id directory: %w", err)
	}
	return os.WriteFile(p.path, []byte(id+"\n"), 0o600)
}
