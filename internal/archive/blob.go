package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore persists archived objects under slash-separated keys.
type BlobStore interface {
	Put(ctx context.Context, key string, body []byte) error
}

// DirStore is a BlobStore rooted at a local directory. Keys map to paths
// below root; an object becomes visible only once fully written.
type DirStore struct {
	root string
}

// NewDirStore creates root if needed.
func NewDirStore(root string) (*DirStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir %s: %w", root, err)
	}
	return &DirStore{root: root}, nil
}

func (s *DirStore) Put(ctx context.Context, key string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return fmt.Errorf("failed to create temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close object %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to publish object %s: %w", key, err)
	}
	return nil
}

// path rejects keys that would escape root.
func (s *DirStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
