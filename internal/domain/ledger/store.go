package ledger

import (
	"context"
	"sync"

	"github.com/finsift/finsift/internal/domain/record"
)

// Store commits records keyed by fingerprint. InsertIfNew must be atomic:
// concurrent inserts of the same fingerprint admit exactly one.
type Store interface {
	// InsertIfNew stores the record unless the fingerprint is already
	// present. It reports whether the record was inserted.
	InsertIfNew(ctx context.Context, fingerprint string, rec *record.TransactionRecord) (bool, error)
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	records []record.TransactionRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]struct{})}
}

// InsertIfNew implements Store.
func (s *MemoryStore) InsertIfNew(_ context.Context, fingerprint string, rec *record.TransactionRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[fingerprint]; ok {
		return false, nil
	}
	s.seen[fingerprint] = struct{}{}
	s.records = append(s.records, *rec)
	return true, nil
}

// Records returns the stored records in insertion order.
func (s *MemoryStore) Records() []record.TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record.TransactionRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports how many records are stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
