package client

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// NameStore keeps the display name used while signed out.
type NameStore interface {
	Load() (string, error)
	Save(name string) error
}

type memoryNameStore struct {
	mu   sync.Mutex
	name string
}

func NewMemoryNameStore() NameStore {
	return &memoryNameStore{}
}

func (s *memoryNameStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name, nil
}

func (s *memoryNameStore) Save(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	return nil
}

// FileNameStore persists the name as a single line of text.
type FileNameStore struct {
	path string
}

func NewFileNameStore(path string) *FileNameStore {
	return &FileNameStore{path: path}
}

func (s *FileNameStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileNameStore) Save(name string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(strings.TrimSpace(name)+"\n"), 0o600)
}

// DisplayName is the signed-in user's name, then their email, then the locally
// stored name, then "Guest".
func (c *Client) DisplayName(_ context.Context) string {
	if c.session != nil {
		if user := c.session.CurrentUser(); user != nil {
			if user.DisplayName != "" {
				return user.DisplayName
			}
			if user.Email != "" {
				return user.Email
			}
		}
	}

	name, err := c.names.Load()
	if err != nil {
		c.log.Warn("Failed to load stored display name", zap.Error(err))
	}
	if name != "" {
		return name
	}
	return "Guest"
}

// SetDisplayName stores the fallback name shown while signed out.
func (c *Client) SetDisplayName(name string) error {
	return c.names.Save(strings.TrimSpace(name))
}
