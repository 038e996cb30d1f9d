// Package store implements a small persisted key-value settings store. Values
// are JSON-serializable and kept in memory until an explicit Save flushes the
// whole map to disk.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a JSON-backed key-value store. Mutations are in-memory only until
// Save is called.
type Store struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]json.RawMessage
}

// Open loads the store at path, creating an empty one when the file does not
// exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		filePath: path,
		values:   make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse store: %w", err)
	}

	return s, nil
}

// OpenDefault opens the store in the application's home directory, creating
// the directory if needed.
func OpenDefault(appDir, fileName string) (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, appDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return Open(filepath.Join(dir, fileName))
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = data
	return nil
}

// Get decodes the value stored under key into out. The boolean reports
// whether the key was present.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("failed to decode value for %q: %w", key, err)
	}

	return true, nil
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Save flushes the store to disk.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.values, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// Path returns the full path of the backing file.
func (s *Store) Path() string {
	return s.filePath
}
