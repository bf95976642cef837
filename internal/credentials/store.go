// Package credentials is the persistence adapter for the API key. The key is
// carried across sessions; nothing else is durably stored on the client.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the stored API key, or an empty string when none was saved yet.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read api key: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save persists the API key, creating the parent directory if needed. The
// file is user-only readable; the key travels unencrypted in request headers
// and its validation is owned by the backend.
func (s *Store) Save(key string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("write api key: %w", err)
	}
	return nil
}
