package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore stores objects on the local filesystem under one directory per
// bucket. Files are served by the HTTP server under /uploads/.
type LocalStore struct {
	baseDir string
	baseURL string // public URL prefix, e.g. http://localhost:8080
}

// NewLocalStore creates a local store rooted at baseDir.
func NewLocalStore(baseDir, baseURL string) *LocalStore {
	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload writes the blob to <baseDir>/<bucket>/<name>. The name is assumed
// sanitized by GenerateObjectName; containment is still verified to guard
// against path traversal.
func (s *LocalStore) Upload(_ context.Context, bucket, name string, data []byte, _ string) (string, error) {
	dir := filepath.Join(s.baseDir, bucket)

	safeName := filepath.Base(name)
	if safeName == "." || safeName == ".." || safeName == "" {
		return "", fmt.Errorf("invalid object name %q", name)
	}

	absBase, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving bucket directory: %w", err)
	}
	target := filepath.Join(absBase, safeName)
	rel, err := filepath.Rel(absBase, target)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected")
	}

	if err := os.MkdirAll(absBase, 0o755); err != nil {
		return "", fmt.Errorf("creating bucket directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("writing object: %w", err)
	}
	return safeName, nil
}

// PublicURL resolves a stored object to its served URL.
func (s *LocalStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, bucket, path)
}

// Delete removes a stored object. Missing objects are not an error.
func (s *LocalStore) Delete(_ context.Context, bucket, path string) error {
	target := filepath.Join(s.baseDir, bucket, filepath.Base(path))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting object: %w", err)
	}
	return nil
}

// List returns the names of all objects in a bucket.
func (s *LocalStore) List(_ context.Context, bucket string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, bucket))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing bucket: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
