package history

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

const backendMemory = "memory"

// MemoryStore implements Store in process memory. Its contents are lost when
// the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record
	ids     map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]struct{})}
}

// Save stores a copy of rec.
func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[rec.ID]; ok {
		return NewStoreError(backendMemory, "save", fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID))
	}

	recordCopy := *rec
	s.records = append(s.records, &recordCopy)
	s.ids[rec.ID] = struct{}{}
	return nil
}

// List returns copies of matching records, newest first. Records with equal
// timestamps are returned most recently saved first.
func (s *MemoryStore) List(ctx context.Context, q Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Record
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if q.File != "" && rec.File != q.File {
			continue
		}
		recordCopy := *rec
		results = append(results, &recordCopy)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CheckedAt.After(results[j].CheckedAt)
	})

	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results, nil
}

// Latest returns the most recent record for file.
func (s *MemoryStore) Latest(ctx context.Context, file string) (*Record, error) {
	records, err := s.List(ctx, Query{File: file, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, file)
	}
	return records[0], nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
