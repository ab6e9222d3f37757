// Package file provides a TOML-file key-value store for host settings.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driven"
	"github.com/inkbridge-labs/inkbridge/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// Store is a file-based implementation of driven.KeyValueStore using TOML.
// Values are stored as strings, which fits the keys in use: document text
// and JSON-encoded host configurations.
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]string
}

// NewStore creates a new TOML-based store.
// If configDir is empty, defaults to ~/.inkbridge/config.toml.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".inkbridge")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]string),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get retrieves a value by key.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	if !ok {
		return nil, false
	}
	return []byte(val), true
}

// Set stores a value and persists the file immediately.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = string(value)
	s.mu.Unlock()
	return s.Save()
}

// Delete removes a key and persists the file immediately.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return s.Save()
}

// Load reads the TOML file from disk, replacing in-memory data.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	data := make(map[string]string)
	if err := toml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Save persists the current data to the TOML file.
func (s *Store) Save() error {
	s.mu.RLock()
	raw, err := toml.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.filePath, err)
	}

	if err := os.WriteFile(s.filePath, raw, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.filePath, err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.filePath
}

// WatchChanges reloads the store when the file is edited externally.
// It returns once the watcher is installed; reloading stops when ctx is
// cancelled.
func (s *Store) WatchChanges(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.filePath, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.filePath {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if err := s.Load(); err != nil {
					logger.Warn("reload %s: %v", s.filePath, err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch %s: %v", s.filePath, err)
			}
		}
	}()

	return nil
}
