package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gridrack/gridrack/pkg/errors"
)

// FileStore is a file-based layout set store for CLI applications.
// Each set is stored as one JSON file named after the set.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to ~/.config/gridrack/layouts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "gridrack", "layouts")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) setPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Get retrieves a layout set by name.
func (s *FileStore) Get(ctx context.Context, name string) (*LayoutSet, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.setPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeLayoutNotFound, "no layout set named %q", name)
		}
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read layout set %q", name)
	}

	var set LayoutSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse layout set %q", name)
	}
	return &set, nil
}

// Save stores a layout set, replacing any set with the same name.
func (s *FileStore) Save(ctx context.Context, set *LayoutSet) error {
	if err := prepare(set); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "marshal layout set %q", set.Name)
	}
	if err := os.WriteFile(s.setPath(set.Name), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write layout set %q", set.Name)
	}
	return nil
}

// Delete removes a layout set by name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateLayoutName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.setPath(name))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeLayoutNotFound, "no layout set named %q", name)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "remove layout set %q", name)
	}
	return nil
}

// List returns the names of all stored layout sets, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read layout dir")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Path returns the base directory for layout set files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
