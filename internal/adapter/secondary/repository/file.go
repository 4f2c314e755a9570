package repository

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"wavelink-cli/internal/domain"
)

// FileRepository implements domain.SettingsRepository using a TOML file.
// This is a secondary adapter.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a new file-based settings repository.
// A leading ~ in path is expanded to the home directory.
func NewFileRepository(path string) (*FileRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return &FileRepository{path: expanded}, nil
}

// Path returns the resolved file location.
func (f *FileRepository) Path() string {
	return f.path
}

// persistedData represents the TOML structure on disk.
type persistedData struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port,omitempty"`
	PortMin        int    `toml:"port_min"`
	PortMax        int    `toml:"port_max"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Load reads the settings from disk. A missing file yields the defaults;
// keys absent from the file keep their default values.
func (f *FileRepository) Load() (domain.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	defaults := domain.DefaultSettings()
	persisted := persistedData{
		Host:           defaults.Host,
		PortMin:        defaults.PortMin,
		PortMax:        defaults.PortMax,
		TimeoutSeconds: int(defaults.Timeout / time.Second),
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return domain.Settings{}, fmt.Errorf("read config: %w", err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&persisted); err != nil {
		return domain.Settings{}, fmt.Errorf("parse config %s: %w", f.path, err)
	}

	return domain.Settings{
		Host:    strings.TrimSpace(persisted.Host),
		Port:    persisted.Port,
		PortMin: persisted.PortMin,
		PortMax: persisted.PortMax,
		Timeout: time.Duration(persisted.TimeoutSeconds) * time.Second,
	}, nil
}

// Save persists the settings to disk, creating the parent directory if needed.
func (f *FileRepository) Save(settings domain.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	persisted := persistedData{
		Host:           settings.Host,
		Port:           settings.Port,
		PortMin:        settings.PortMin,
		PortMax:        settings.PortMax,
		TimeoutSeconds: int(settings.Timeout / time.Second),
	}

	data, err := toml.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	// Atomic write
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}

	return nil
}

// DefaultPath returns ~/.config/wavelink-cli/config.toml, or a file in the
// working directory when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "wavelink-cli", "config.toml")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, "wavelink-cli.toml")
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			path = home
		} else if len(path) > 1 && (path[1] == '/' || path[1] == '\\') {
			path = filepath.Join(home, path[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}
	return absolute, nil
}
