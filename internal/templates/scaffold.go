package templates

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
)

// Scaffold writes the embedded default theme into dir and returns the files it
// wrote. Existing files are kept unless force is set.
func Scaffold(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ferrors.FileSystemError("create templates directory").WithCause(err).
			WithContext("path", dir).Build()
	}

	src := defaultTheme()
	names, err := fs.Glob(src, "*")
	if err != nil {
		return nil, ferrors.InternalError("list embedded theme").WithCause(err).Build()
	}

	var written []string
	for _, name := range names {
		dst := filepath.Join(dir, name)
		if _, statErr := os.Stat(dst); statErr == nil && !force {
			slog.Info("Keeping existing theme file", logfields.Path(dst))
			continue
		}
		data, err := fs.ReadFile(src, name)
		if err != nil {
			return written, ferrors.InternalError("read embedded theme file").WithCause(err).
				WithContext("path", name).Build()
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return written, ferrors.FileSystemError("write theme file").WithCause(err).
				WithContext("path", dst).Build()
		}
		written = append(written, dst)
	}
	return written, nil
}
