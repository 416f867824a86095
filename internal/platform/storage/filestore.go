// Package storage keeps uploaded attachment files on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidFileName = errors.New("invalid file name")

// FileStore writes uploads into a single directory under collision-free names
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates dir if needed
func NewFileStore(logger *slog.Logger, dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("uploads directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Save copies r into a new file named after originalName with a random prefix and returns the stored name
func (s *FileStore) Save(r io.Reader, originalName string) (string, error) {
	safe := sanitizeFileName(originalName)
	if safe == "" {
		return "", ErrInvalidFileName
	}

	prefix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := prefix + "_" + safe

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	s.logger.Debug("Stored upload", "file", name)
	return name, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *FileStore) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return ErrInvalidFileName
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload file %s: %w", name, err)
	}
	return nil
}

// RemoveAll deletes every file, logging the ones that could not be removed
func (s *FileStore) RemoveAll(names []string) {
	for _, name := range names {
		if err := s.Remove(name); err != nil {
			s.logger.Warn("Failed to remove upload file", "file", name, "error", err)
		}
	}
}

// Path returns the location of a stored file
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
