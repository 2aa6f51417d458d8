// Package storage keeps rendered documents on local disk so clients can
// download or share them after generation.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored file does not exist.
var ErrNotFound = errors.New("storage: file not found")

// FileStore writes files below a root directory, one subdirectory per owner.
type FileStore struct {
	root    string
	baseURL string
}

// NewFileStore creates a store rooted at root. baseURL is the public prefix
// under which stored files are served, e.g. "/api/v1/files".
func NewFileStore(root, baseURL string) *FileStore {
	return &FileStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Available reports whether files can be written. It is the share
// capability check: when false, generated files cannot be handed out.
func (s *FileStore) Available() bool {
	if s == nil || s.root == "" {
		return false
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return false
	}
	f, err := os.CreateTemp(s.root, ".write-check-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// Key is the stored name of a document: its display name prefixed with the
// document id, so two documents sharing a display name are kept apart.
func Key(id uuid.UUID, name string) string {
	return id.String() + "_" + name
}

// DisplayName returns the name a key was built from. Names without an id
// prefix are returned unchanged.
func DisplayName(key string) string {
	prefix, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return key
	}
	if _, err := uuid.Parse(prefix); err != nil {
		return key
	}
	return rest
}

// Save writes data as owner/name, replacing any previous file with that
// name, and returns the URI clients use to fetch it.
func (s *FileStore) Save(owner, name string, data []byte) (string, error) {
	path, err := s.path(owner, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: create directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("storage: move %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

// Open returns the absolute path of a stored file.
func (s *FileStore) Open(owner, name string) (string, error) {
	path, err := s.path(owner, name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage: stat %s: %w", name, err)
	}
	return path, nil
}

func (s *FileStore) path(owner, name string) (string, error) {
	if owner == "" || name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("storage: invalid file name %q", name)
	}
	return filepath.Join(s.root, owner, name), nil
}
