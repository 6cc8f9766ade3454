package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalImageStorage writes images to a directory on disk. The directory
// is expected to be served statically under publicURL.
type LocalImageStorage struct {
	dir       string
	publicURL string
}

// NewLocalImageStorage creates a local storage rooted at dir
func NewLocalImageStorage(dir, publicURL string) (*LocalImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStorage{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Save writes the image to disk and returns its public path
func (s *LocalImageStorage) Save(_ context.Context, key string, _ string, body io.Reader) (string, error) {
	// keys are generated server-side, but never trust them with path separators
	key = filepath.Base(key)

	f, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	tmpName := f.Name()

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	finalPath := filepath.Join(s.dir, key)
	if err := os.Rename(tmpName, finalPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to store image file: %w", err)
	}

	return s.publicURL + "/" + key, nil
}

// Delete removes the image from disk. Missing files are not an error.
func (s *LocalImageStorage) Delete(_ context.Context, key string) error {
	key = filepath.Base(key)
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

var _ ImageStorage = (*LocalImageStorage)(nil)
