// Package credential persists the bearer credential issued at login.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoCredential is returned by Get when no credential is stored.
var ErrNoCredential = errors.New("no credential stored")

// Store holds a single credential with an explicit set/get/clear lifecycle.
type Store interface {
	// Get returns the stored token or ErrNoCredential.
	Get() (string, error)

	// Set stores token, replacing any previous one.
	Set(token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// FileStore keeps the credential in a JSON file encoded as an oauth2.Token.
// The file is written with mode 0600 inside a 0700 directory.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get implements Store.
func (s *FileStore) Get() (string, error) {
	tok, err := s.Load()
	if err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", ErrNoCredential
	}
	return tok.AccessToken, nil
}

// Set implements Store.
func (s *FileStore) Set(token string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	return s.Save(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads the full token, including any refresh token and expiry.
func (s *FileStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoCredential
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(s.path), err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Base(s.path), err)
	}
	return &tok, nil
}

// Save writes the full token.
func (s *FileStore) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns a store holding token. An empty token means absent.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Get implements Store.
func (m *MemoryStore) Get() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return "", ErrNoCredential
	}
	return m.token, nil
}

// Set implements Store.
func (m *MemoryStore) Set(token string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
