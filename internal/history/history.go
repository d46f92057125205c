// Package history provides a persistent JSON store for per-agent assessment
// summaries across runs. This enables risk drift detection by comparing the
// current top score against the previously recorded one.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry summarizes one agent's most recent assessment.
type Entry struct {
	TopCategory string  `json:"top_category"`
	TopScore    float64 `json:"top_score"`
	AARS        float64 `json:"aars"`
	AssessedAt  string  `json:"assessed_at"`
}

// Store persists assessment summaries to a JSON file on disk, keyed by
// agent name.
type Store struct {
	mu      sync.RWMutex
	Entries map[string]Entry `json:"entries"`
	path    string
}

// New creates a new Store backed by the given file path.
func New(path string) *Store {
	return &Store{
		Entries: make(map[string]Entry),
		path:    path,
	}
}

// DefaultPath returns the default history file path (~/.aivss/history.json).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aivss/history.json"
	}
	return filepath.Join(home, ".aivss", "history.json")
}

// Load reads the history file from disk. If the file doesn't exist, the
// store starts empty (no error). Symlinks are rejected.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Lstat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("history file is a symlink (rejected for security): %s", s.path)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, s)
}

// Save writes the current history to disk, creating parent directories if
// needed. Directories are created with 0o700, files with 0o600 (owner-only).
// Symlinks are rejected.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if info, err := os.Lstat(s.path); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("history file is a symlink (rejected for security): %s", s.path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Get returns the entry for the given agent and whether it exists.
func (s *Store) Get(agent string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.Entries[agent]
	return e, ok
}

// Set records an agent's latest assessment summary with the current
// timestamp.
func (s *Store) Set(agent, topCategory string, topScore, aars float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries[agent] = Entry{
		TopCategory: topCategory,
		TopScore:    topScore,
		AARS:        aars,
		AssessedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// Path returns the file path of this store.
func (s *Store) Path() string {
	return s.path
}
