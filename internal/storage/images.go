// Package storage persists uploaded product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var ErrInvalidName = errors.New("invalid image name")

// ImageStore saves and removes image files by name
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
	// Path returns the location of name inside the store
	Path(name string) string
}

// FileImageStore keeps images in a single directory of an afero filesystem
type FileImageStore struct {
	fs  afero.Fs
	dir string
}

// NewFileImageStore creates the directory when missing
func NewFileImageStore(fs afero.Fs, dir string) (*FileImageStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &FileImageStore{fs: fs, dir: dir}, nil
}

// Fs exposes the underlying filesystem for serving files over HTTP
func (s *FileImageStore) Fs() afero.Fs {
	return afero.NewBasePathFs(s.fs, s.dir)
}

func (s *FileImageStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *FileImageStore) Save(ctx context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := s.fs.OpenFile(s.Path(name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		_ = s.fs.Remove(s.Path(name))
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}

// Remove deletes name. Removing a missing file is not an error.
func (s *FileImageStore) Remove(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.fs.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}

func validName(name string) error {
	base := filepath.Base(name)
	if name == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return ErrInvalidName
	}
	return nil
}
