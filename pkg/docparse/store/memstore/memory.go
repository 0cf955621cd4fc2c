package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/docparse/pkg/docparse/store"
)

// Store is an in-memory implementation of store.Store, used when no
// database path is configured and in tests.
type Store struct {
	mu         sync.RWMutex
	ingestions map[string]store.Ingestion
	seq        map[string]int64
	next       int64
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		ingestions: make(map[string]store.Ingestion),
		seq:        make(map[string]int64),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// RecordIngestion inserts or replaces an entry, keyed by ID.
func (s *Store) RecordIngestion(ctx context.Context, in store.Ingestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seq[in.ID]; !ok {
		s.next++
		s.seq[in.ID] = s.next
	}
	s.ingestions[in.ID] = in
	return nil
}

// GetIngestion returns an entry by ID.
func (s *Store) GetIngestion(ctx context.Context, id string) (store.Ingestion, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in, ok := s.ingestions[id]
	return in, ok, nil
}

// RecentIngestions returns up to limit entries, newest first. Entries with
// equal timestamps are ordered by insertion, newest first.
func (s *Store) RecentIngestions(ctx context.Context, limit int) ([]store.Ingestion, error) {
	if limit <= 0 {
		limit = store.DefaultRecentLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]store.Ingestion, 0, len(s.ingestions))
	for _, in := range s.ingestions {
		result = append(result, in)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return s.seq[a.ID] > s.seq[b.ID]
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
