package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore stores objects on the local filesystem under a base directory.
// Locators are paths relative to the base, prefixed with "local://".
type LocalStore struct {
	baseDir string
}

const localScheme = "local://"

// NewLocalStore creates a local filesystem object store
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create object store directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Put writes the object and returns its locator
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key: %s", key)
	}

	path := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	return localScheme + filepath.ToSlash(clean), nil
}

// Open returns a reader over the stored object
func (s *LocalStore) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	path, err := s.resolve(locator)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes the stored object
func (s *LocalStore) Delete(ctx context.Context, locator string) error {
	path, err := s.resolve(locator)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *LocalStore) resolve(locator string) (string, error) {
	if !strings.HasPrefix(locator, localScheme) {
		return "", fmt.Errorf("unknown locator scheme: %s", locator)
	}
	rel := filepath.Clean(strings.TrimPrefix(locator, localScheme))
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid locator: %s", locator)
	}
	return filepath.Join(s.baseDir, rel), nil
}
