package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/tada/internal/store"
)

// JSON-backed key-value storage. Single file, human-readable, portable.
// Every Set rewrites the whole file; fine for a handful of keys.

// Store keeps all keys in one JSON object file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a Store writing to path. The file is created on first Set.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := kv[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return []byte(v), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return err
	}
	kv[key] = string(value)
	return s.save(kv)
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := kv[key]; !ok {
		return store.ErrNotFound
	}
	delete(kv, key)
	return s.save(kv)
}

func (s *Store) Close() error { return nil }

func (s *Store) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	kv := map[string]string{}
	if len(b) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(b, &kv); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return kv, nil
}

// save writes to a temp file and renames it over the old one.
func (s *Store) save(kv map[string]string) error {
	b, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
