// Package store owns the ordered collection of scanned cards and its
// persisted snapshot. The in-memory collection is the single source of
// truth; the snapshot is rewritten as one unit after every mutation and read
// back once at startup.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jonathan/cardpulse/internal/types"
)

//go:embed schema.sql
var schema string

// Namespace is the fixed key the whole collection is serialized under.
const Namespace = "cardpulse_storage"

// LoadOutcome reports what Load found at startup.
type LoadOutcome int

// Load outcomes
const (
	// LoadedEmpty means no snapshot existed; the collection starts empty.
	LoadedEmpty LoadOutcome = iota
	// LoadedSnapshot means a snapshot was read and deserialized.
	LoadedSnapshot
	// RecoveredCorrupt means the snapshot could not be deserialized; the
	// collection starts empty and the old snapshot is left in place.
	RecoveredCorrupt
)

// Store holds the ordered card collection, newest first.
type Store struct {
	db *sql.DB

	mu    sync.Mutex
	cards []types.BusinessCard
}

// Open creates a store backed by a SQLite database file, initializing the
// schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an existing database handle. The handle can be a real
// database for production use or a mock database within unit tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the persisted snapshot into memory. A corrupt snapshot is
// logged and recovered by starting from an empty collection; it never
// surfaces to the user.
func (s *Store) Load(ctx context.Context) (LoadOutcome, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE namespace = ?", Namespace,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return LoadedEmpty, nil
	}
	if err != nil {
		return LoadedEmpty, fmt.Errorf("read snapshot: %w", err)
	}

	var cards []types.BusinessCard
	if err := json.Unmarshal(payload, &cards); err != nil {
		log.Printf("store: corrupt snapshot under %q, starting empty: %v", Namespace, err)
		return RecoveredCorrupt, nil
	}

	s.mu.Lock()
	s.cards = cards
	s.mu.Unlock()
	return LoadedSnapshot, nil
}

// Add inserts the card at the front of the collection (newest first) and
// writes the snapshot. An ID and creation timestamp are assigned when the
// card does not already carry them.
func (s *Store) Add(ctx context.Context, card types.BusinessCard) (types.BusinessCard, error) {
	if card.ID == "" || card.CreatedAt == 0 {
		stamped := types.NewBusinessCard(card.CardFields, card.ImageSource)
		if card.ID != "" {
			stamped.ID = card.ID
		}
		if card.CreatedAt != 0 {
			stamped.CreatedAt = card.CreatedAt
		}
		card = stamped
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards = append([]types.BusinessCard{card}, s.cards...)
	if err := s.saveLocked(ctx); err != nil {
		// Roll back the in-memory insert so memory and snapshot stay aligned
		s.cards = s.cards[1:]
		return types.BusinessCard{}, err
	}
	return card, nil
}

// Remove deletes the card with the given ID. Removing an absent ID is a
// no-op, not an error; the snapshot is only rewritten when something changed.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.cards {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	removed := s.cards[idx]
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
	if err := s.saveLocked(ctx); err != nil {
		// Restore on a failed write
		s.cards = append(s.cards[:idx], append([]types.BusinessCard{removed}, s.cards[idx:]...)...)
		return false, err
	}
	return true, nil
}

// Get returns the card with the given ID.
func (s *Store) Get(id string) (types.BusinessCard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return types.BusinessCard{}, false
}

// List returns a copy of the collection, newest first.
func (s *Store) List() []types.BusinessCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.BusinessCard, len(s.cards))
	copy(out, s.cards)
	return out
}

// Len returns the number of cards in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// saveLocked serializes the whole collection and upserts it under the fixed
// namespace. Callers hold s.mu.
func (s *Store) saveLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.cards)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (namespace, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (namespace) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		Namespace, payload, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
