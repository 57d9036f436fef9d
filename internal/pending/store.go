package pending

import (
	"sync"

	"github.com/mangobot/mangobot/internal/domain"
)

// Store keeps at most one unconfirmed entry per user. A new submission
// overwrites the previous slot (last write wins); nothing survives a
// process restart.
type Store struct {
	mu      sync.Mutex
	entries map[int64]domain.Entry
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]domain.Entry)}
}

// Put stores entry as the user's pending submission, replacing any
// previous one.
func (s *Store) Put(userID int64, entry domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = entry
}

// Take removes and returns the user's pending entry. The second return is
// false when the slot is empty.
func (s *Store) Take(userID int64) (domain.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if ok {
		delete(s.entries, userID)
	}
	return entry, ok
}
