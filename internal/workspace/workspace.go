package workspace

import (
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
)

// Manager owns one output directory for the lifetime of a preview session.
type Manager struct {
	baseDir    string
	dir        string
	persistent bool // caller-chosen directory; never removed
}

// NewManager returns a Manager that creates a fresh directory under baseDir
// (os.TempDir() when empty) and removes it on Cleanup.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// NewPersistentManager returns a Manager for a fixed directory that survives
// Cleanup.
func NewPersistentManager(dir string) *Manager {
	return &Manager{dir: dir, persistent: true}
}

// Create makes the workspace directory.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o750); err != nil {
			return ferrors.FileSystemError("create workspace directory").WithCause(err).
				WithContext("path", m.dir).Build()
		}
		slog.Info("Using persistent workspace", logfields.Path(m.dir))
		return nil
	}

	dir, err := os.MkdirTemp(m.baseDir, "issuebuilder-preview-*")
	if err != nil {
		return ferrors.FileSystemError("create workspace directory").WithCause(err).
			WithContext("path", m.baseDir).Build()
	}
	m.dir = dir
	slog.Info("Created workspace", logfields.Path(dir))
	return nil
}

// GetPath returns the workspace directory, empty before Create.
func (m *Manager) GetPath() string {
	return m.dir
}

// Cleanup removes an ephemeral workspace. Persistent workspaces are kept.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}
	if m.persistent {
		slog.Debug("Keeping persistent workspace", logfields.Path(m.dir))
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return ferrors.FileSystemError("cleanup workspace").WithCause(err).
			WithContext("path", m.dir).Build()
	}
	slog.Info("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
