package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const recordFile = "session.json"

// Record is the persisted form of a session. The token and the identity
// fields live in one record with one write path and one clear path, so a
// crash can never leave the two halves disagreeing.
type Record struct {
	Token    string `json:"token"`
	UserID   string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	SavedAt  int64  `json:"savedAt"`
}

// Store persists the session record in the data directory. It is owned
// exclusively by the Manager; nothing else reads or writes the file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store rooted at dataDir. An empty dataDir defaults to
// ~/.blogctl.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".blogctl")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{path: filepath.Join(dataDir, recordFile)}, nil
}

// Load reads the persisted record. A missing, unreadable, or corrupt file is
// reported as nil: callers treat every load failure exactly like "no prior
// session".
func (st *Store) Load() *Record {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(st.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Str("path", st.path).Err(err).Msg("Session record unreadable, treating as absent")
		}
		return nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Warn().Str("path", st.path).Err(err).Msg("Session record corrupt, treating as absent")
		return nil
	}

	return &rec
}

// Save writes the record atomically with owner-only permissions.
func (st *Store) Save(rec Record) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if rec.SavedAt == 0 {
		rec.SavedAt = time.Now().Unix()
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	tmpPath := st.path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session record: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync session file: %w", err)
	}
	file.Close()

	// Atomic replace
	if err := os.Rename(tmpPath, st.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

// Clear removes the persisted record. Clearing an absent record succeeds.
func (st *Store) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Path returns the location of the record file.
func (st *Store) Path() string {
	return st.path
}
