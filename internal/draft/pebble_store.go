package draft

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog/log"
)

var draftKey = []byte("order_draft")

// PebbleStore implements Store on a local PebbleDB.
type PebbleStore struct {
	db *pebble.DB

	mu        sync.Mutex
	lastSaved time.Time
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: d}, nil
}

func (s *PebbleStore) Close() error { return s.db.Close() }

func (s *PebbleStore) Save(snap *Snapshot) error {
	bytes, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.db.Set(draftKey, bytes, pebble.Sync); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	s.mu.Lock()
	s.lastSaved = time.Now()
	s.mu.Unlock()
	return nil
}

func (s *PebbleStore) Load() (*Snapshot, error) {
	v, closer, err := s.db.Get(draftKey)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	defer closer.Close()

	var snap Snapshot
	if err := json.Unmarshal(v, &snap); err != nil {
		// Malformed stored data is treated as absent rather than
		// propagated; the session starts from an empty draft.
		log.Warn().Err(err).Msg("draft: stored snapshot is malformed, starting empty")
		return nil, nil
	}
	return &snap, nil
}

func (s *PebbleStore) Clear() error {
	if err := s.db.Delete(draftKey, pebble.Sync); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

func (s *PebbleStore) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}
