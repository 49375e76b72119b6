package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
)

type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: baseURL}
}

func (s *LocalStore) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("local store mkdir: %w", err)
	}
	if err := os.WriteFile(full, body, 0o644); err != nil {
		return "", fmt.Errorf("local store write: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Resolve maps a key to its file under root. Keys that escape root or name
// no file are not found.
func (s *LocalStore) Resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", httperr.NotFound("file_not_found", "File not found.")
	}

	full := filepath.Join(s.root, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", httperr.NotFound("file_not_found", "File not found.")
	}
	return full, nil
}
