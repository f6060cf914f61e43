package fs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/roster/pkg/core"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "roster-tmp-"
	// Ext is the extension of every value file.
	Ext = ".json"
)

// Config holds the configuration for the filesystem medium.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error) // called on watcher failures
}

// Medium implements core.Medium with one file per key: {Path}/{key}.json.
type Medium struct {
	Path   string
	config Config

	mu            sync.RWMutex
	writes        int
	lastWrite     *time.Time
	watcherActive bool
}

// NewMedium creates a new filesystem-backed medium.
func NewMedium(config Config) *Medium {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Medium{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the data directory exists.
// In read-only mode the directory is never created.
func (m *Medium) Initialize() error {
	if m.config.MustExist || m.config.ReadOnly {
		info, err := os.Stat(m.Path)
		if os.IsNotExist(err) {
			if m.config.ReadOnly && !m.config.MustExist {
				return nil
			}
			return fmt.Errorf("data path does not exist: %s", m.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", m.Path)
		}
		return nil
	}

	if err := os.MkdirAll(m.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// ValidKey reports whether key can be stored: lowercase letters, digits, '-' and '_'.
func ValidKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func (m *Medium) filename(key string) (string, error) {
	if !ValidKey(key) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidKey, key)
	}
	return filepath.Join(m.Path, key+Ext), nil
}

// Get reads the value file for key. A missing file is reported as absent.
func (m *Medium) Get(key string) (string, bool, error) {
	path, err := m.filename(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes the value file atomically.
func (m *Medium) Set(key, value string) error {
	if m.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := m.filename(key)
	if err != nil {
		return err
	}

	m.config.Logger.Debug("writing value", "key", key, "path", path, "bytes", len(value))

	if err := writeFileAtomic(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	m.mu.Lock()
	now := time.Now()
	m.writes++
	m.lastWrite = &now
	m.mu.Unlock()
	return nil
}

// Delete removes the value file. A missing file is not an error.
func (m *Medium) Delete(key string) error {
	if m.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := m.filename(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys that have a value file.
func (m *Medium) Keys() ([]string, error) {
	entries, err := os.ReadDir(m.Path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyFromName(e.Name()); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// keyFromName maps a file name back to its key, skipping temp and foreign files.
func keyFromName(name string) (string, bool) {
	if strings.HasPrefix(name, TempFilePrefix) || !strings.HasSuffix(name, Ext) {
		return "", false
	}
	key := strings.TrimSuffix(name, Ext)
	return key, ValidKey(key)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over filename, so readers never observe a partial value.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op once renamed

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}

var _ core.Medium = (*Medium)(nil)
var _ core.Watchable = (*Medium)(nil)
