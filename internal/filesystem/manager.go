package filesystem

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rsookram/gallery-desktop/internal/container"
)

// ErrNoContainers is returned when the arguments name no container files.
var ErrNoContainers = errors.New("filesystem: no containers found")

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for path resolution.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager turns command line arguments into the container paths to show.
type Manager struct {
	logger *slog.Logger
}

func (m *Manager) log() *slog.Logger {
	if m.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.logger
}

// NewManager creates a new filesystem manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ResolvePaths expands args into container paths. Files are kept in argument
// order whatever their extension; directories contribute their container files
// sorted by name, without recursing.
func (m *Manager) ResolvePaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", arg, err)
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		files, err := m.ListDirectory(arg)
		if err != nil {
			return nil, err
		}
		m.log().Debug("Expanded directory", "dir", arg, "containers", len(files))
		paths = append(paths, files...)
	}

	if len(paths) == 0 {
		return nil, ErrNoContainers
	}
	m.log().Info("Resolved containers", "count", len(paths))
	return paths, nil
}

// ListDirectory lists the container files directly inside dir, sorted by name.
func (m *Manager) ListDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isContainer(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// isContainer matches the container extension case-insensitively.
func isContainer(name string) bool {
	return strings.EqualFold(filepath.Ext(name), container.Extension)
}
