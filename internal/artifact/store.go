package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store reads and writes named files in one location.
type Store interface {
	// Path returns the location a name resolves to, for messages.
	Path(name string) string

	// WriteFile creates or replaces name.
	WriteFile(name string, data []byte) error

	// ReadFile returns the content of name.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether name is present.
	Exists(name string) (bool, error)

	// Remove deletes name.
	Remove(name string) error
}

// OSStore keeps files in a directory on disk.
type OSStore struct {
	dir string
}

// NewOSStore returns a store rooted at dir. Empty dir means the current directory.
func NewOSStore(dir string) *OSStore {
	if dir == "" {
		dir = "."
	}
	return &OSStore{dir: dir}
}

func (s *OSStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *OSStore) WriteFile(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	return os.WriteFile(s.Path(name), data, 0644)
}

func (s *OSStore) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(s.Path(name))
}

func (s *OSStore) Exists(name string) (bool, error) {
	_, err := os.Stat(s.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *OSStore) Remove(name string) error {
	return os.Remove(s.Path(name))
}

// MemoryStore keeps files in memory. Safe for concurrent use.
// RemoveErr, when set, is returned by Remove instead of deleting.
type MemoryStore struct {
	mu        sync.Mutex
	files     map[string][]byte
	RemoveErr error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

func (s *MemoryStore) Path(name string) string {
	return "mem://" + name
}

func (s *MemoryStore) WriteFile(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.files[name] = buf
	return nil
}

func (s *MemoryStore) ReadFile(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: s.Path(name), Err: fs.ErrNotExist}
	}
	return data, nil
}

func (s *MemoryStore) Exists(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok, nil
}

func (s *MemoryStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	if _, ok := s.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: s.Path(name), Err: fs.ErrNotExist}
	}
	delete(s.files, name)
	return nil
}

// Names lists stored files in sorted order.
func (s *MemoryStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Delete drops name without consulting RemoveErr.
func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
}
