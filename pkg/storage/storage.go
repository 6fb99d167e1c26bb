// Package storage persists rendered result documents to local disk or an
// S3 bucket. The classification core is indifferent to the destination;
// everything here consumes already-rendered bytes.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store writes one named document and returns its final location
// (a file path or an s3:// URL).
type Store interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// LocalStore writes documents under a directory, creating it on demand.
type LocalStore struct {
	Dir string
}

// NewLocalStore returns a store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

// Save writes the document to disk. The content type is unused locally.
func (s *LocalStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
