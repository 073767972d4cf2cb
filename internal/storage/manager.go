// Package storage manages the temporary upload folder: storing files,
// tracking their age, and cleaning up expired ones.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// ErrNotFound reports that no file with the given name is stored. Callers
// distinguish it from removal failures on files that do exist.
var ErrNotFound = errors.New("file not found")

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename strips any path components and replaces characters that
// are unsafe in a stored filename.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// Manager stores uploaded files in a directory and removes them once they
// exceed a maximum age. All methods are safe for concurrent use.
type Manager struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	registry map[string]time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock injects the time source, for deterministic expiry tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates the upload directory if needed and returns a manager
// over it.
func NewManager(dir string, maxAge, interval time.Duration, logger *slog.Logger, opts ...Option) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		registry: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Store writes the reader's content under the sanitized name and registers
// the file's age. It returns the stored name and size.
func (m *Manager) Store(name string, r io.Reader) (string, int64, error) {
	name = SanitizeFilename(name)
	path := filepath.Join(m.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("store file: %w", err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("store file: %w", err)
	}

	m.mu.Lock()
	m.registry[name] = m.now()
	m.mu.Unlock()

	m.logger.Info("file stored", "filename", name, "size", size)
	return name, size, nil
}

// Exists reports whether a file with the sanitized name is stored.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(m.dir, SanitizeFilename(name)))
	return err == nil
}

// Path returns the full path of a stored file, and whether it exists.
func (m *Manager) Path(name string) (string, bool) {
	path := filepath.Join(m.dir, SanitizeFilename(name))
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// Delete removes a stored file and drops it from the registry.
func (m *Manager) Delete(name string) error {
	name = SanitizeFilename(name)
	path := filepath.Join(m.dir, name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file %s: %w", name, ErrNotFound)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	m.mu.Lock()
	delete(m.registry, name)
	m.mu.Unlock()

	m.logger.Info("file deleted", "filename", name)
	return nil
}

// List returns the stored PDF filenames, sorted.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return e.Name(), !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf")
	})
	sort.Strings(names)
	return names, nil
}

// Run removes expired files on the configured interval until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("storage cleanup started", "interval", m.interval, "max_age", m.maxAge)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("storage cleanup stopped")
			return
		case <-ticker.C:
			m.CleanupExpired()
		}
	}
}

// CleanupExpired deletes every registered file older than the maximum age.
func (m *Manager) CleanupExpired() {
	m.mu.Lock()
	cutoff := m.now().Add(-m.maxAge)
	var expired []string
	for name, storedAt := range m.registry {
		if storedAt.Before(cutoff) {
			expired = append(expired, name)
		}
	}
	m.mu.Unlock()

	for _, name := range expired {
		if err := m.Delete(name); err != nil {
			m.logger.Error("failed to clean up expired file", "filename", name, "error", err)
		}
	}
}
