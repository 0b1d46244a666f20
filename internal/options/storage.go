// Package options holds the per-agent invocation configuration: the local
// store it persists in, the list-field parsing used by editing surfaces,
// and the sanitizer applied before a configuration goes on the wire.
package options

import (
	"os"
	"path/filepath"
	"sync"
)

// Storage is the minimal capability the store needs from its backing
// medium. Implementations swallow underlying failures: a failed Get reads
// as absent, a failed Set is a no-op. The store never sees storage errors.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// FileStorage keeps one file per key under a directory. It is the durable
// production backend (~/.claudectl/options/).
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-backed storage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the value for key. Any read failure reads as absent.
func (s *FileStorage) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes the value for key. Failures are swallowed.
func (s *FileStorage) Set(key, value string) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(s.path(key), []byte(value), 0o644)
}

// MemStorage is an in-memory Storage for tests. Safe for concurrent use.
type MemStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemStorage creates an empty in-memory storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string]string)}
}

func (s *MemStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
