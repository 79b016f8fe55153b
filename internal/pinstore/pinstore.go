// Package pinstore persists the admin's pinned work-item ids. Pins live in a
// small local key-value store, not the main database; each dashboard context
// gets its own namespace so the two admin surfaces cannot clobber each
// other's pins.
package pinstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// KV is the injected storage. Get returns (nil, nil) for a missing key.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Store manages pin sets per namespace on top of a KV.
type Store struct {
	kv KV
	mu sync.Mutex
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Pins returns the pinned id set for a namespace.
func (s *Store) Pins(namespace string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(namespace)
}

// Pin adds id to the namespace's set.
func (s *Store) Pin(namespace, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pins, err := s.load(namespace)
	if err != nil {
		return err
	}
	if pins[id] {
		return nil
	}
	pins[id] = true
	return s.save(namespace, pins)
}

// Unpin removes id from the namespace's set.
func (s *Store) Unpin(namespace, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pins, err := s.load(namespace)
	if err != nil {
		return err
	}
	if !pins[id] {
		return nil
	}
	delete(pins, id)
	return s.save(namespace, pins)
}

// Toggle flips the pin and reports the new state.
func (s *Store) Toggle(namespace, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pins, err := s.load(namespace)
	if err != nil {
		return false, err
	}
	if pins[id] {
		delete(pins, id)
	} else {
		pins[id] = true
	}
	if err := s.save(namespace, pins); err != nil {
		return false, err
	}
	return pins[id], nil
}

func (s *Store) load(namespace string) (map[string]bool, error) {
	raw, err := s.kv.Get("pins:" + namespace)
	if err != nil {
		return nil, err
	}
	pins := make(map[string]bool)
	if len(raw) == 0 {
		return pins, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("corrupt pin set for %q: %w", namespace, err)
	}
	for _, id := range ids {
		pins[id] = true
	}
	return pins, nil
}

// save writes the current membership only; no history is kept.
func (s *Store) save(namespace string, pins map[string]bool) error {
	ids := make([]string, 0, len(pins))
	for id := range pins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Put("pins:"+namespace, raw)
}

// FileKV stores each key as a JSON file under dir.
type FileKV struct {
	Dir string
}

func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileKV{Dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f *FileKV) Get(key string) ([]byte, error) {
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return raw, err
}

func (f *FileKV) Put(key string, value []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}

// MemKV is an in-memory KV for tests.
type MemKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

func (m *MemKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MemKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}
