package fsxlocal

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/stagetrack/pkg/errx"
	"github.com/Abraxas-365/stagetrack/pkg/fsx"
)

// LocalFileSystem implementa fsx.FileSystem sobre el disco local
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates a file system rooted at basePath. An empty
// basePath means paths are used as given (relative to the working dir).
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if basePath == "" {
		return &LocalFileSystem{}, nil
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errx.Wrap(err, "failed to resolve base path", errx.TypeInternal).
			WithDetail("base_path", basePath)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, errx.Wrap(err, "failed to create base path", errx.TypeInternal).
			WithDetail("base_path", abs)
	}
	return &LocalFileSystem{basePath: abs}, nil
}

// GetBasePath returns the absolute root, or "" when unrooted
func (l *LocalFileSystem) GetBasePath() string {
	return l.basePath
}

func (l *LocalFileSystem) resolve(path string) (string, error) {
	if path == "" {
		return "", fsx.ErrInvalidPath().WithDetail("path", path)
	}
	if l.basePath == "" {
		return filepath.Clean(path), nil
	}

	full := filepath.Join(l.basePath, filepath.Clean("/"+path))
	if full != l.basePath && !strings.HasPrefix(full, l.basePath+string(filepath.Separator)) {
		return "", fsx.ErrInvalidPath().WithDetail("path", path)
	}
	return full, nil
}

// ReadFile reads a whole file
func (l *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrFileNotFound().WithDetail("path", path)
		}
		return nil, errx.Wrap(err, "failed to read file", errx.TypeInternal).WithDetail("path", path)
	}
	return data, nil
}

// Exists reports whether a regular file or directory exists at path
func (l *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	full, err := l.resolve(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errx.Wrap(err, "failed to stat file", errx.TypeInternal).WithDetail("path", path)
	}
	return true, nil
}

// WriteFile writes data, creating parent directories as needed
func (l *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errx.Wrap(err, "failed to create directory", errx.TypeInternal).WithDetail("path", path)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return errx.Wrap(err, "failed to write file", errx.TypeInternal).WithDetail("path", path)
	}
	return nil
}
