package quiz

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
)

// MemoryStore is an in-process Storage. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]Entry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]Entry)}
}

// Get returns a copy of the entries under key.
func (m *MemoryStore) Get(key string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(e), nil
}

// Set stores a copy of entries under key.
func (m *MemoryStore) Set(key string, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(entries)
	return nil
}

// CSVStore persists each key as <Dir>/<key>.csv with a header row.
type CSVStore struct {
	Dir string
}

// NewCSVStore creates dir if needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &CSVStore{Dir: dir}, nil
}

func (c *CSVStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("quiz: invalid storage key %q", key)
	}
	return filepath.Join(c.Dir, key+".csv"), nil
}

// Get reads and parses the file for key. A missing file is ErrNotFound.
func (c *CSVStore) Get(key string) ([]Entry, error) {
	path, err := c.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var entries []Entry
	if err := gocsv.UnmarshalBytes(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Set writes entries to a temporary file and renames it over the old one.
func (c *CSVStore) Set(key string, entries []Entry) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	data, err := gocsv.MarshalBytes(entries)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
