package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. Records idle longer than the
// TTL are dropped lazily on access and by Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory store. A non-positive ttl keeps records forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		ttl:     ttl,
	}
}

// FetchOrCreate implements Store.
func (s *MemoryStore) FetchOrCreate(ctx context.Context, id string, now time.Time) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if rec, ok := s.records[id]; ok && !s.expired(rec, now) {
			rec.LastAccessed = now
			s.records[id] = rec
			return rec.Clone(), nil
		}
	}

	rec := NewRecord(now)
	s.records[rec.ID] = rec
	return rec.Clone(), nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec.Clone()
	return nil
}

// Get returns a copy of a stored record.
func (s *MemoryStore) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return rec.Clone(), true
}

// Sweep removes expired records and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, rec := range s.records {
		if s.expired(rec, now) {
			delete(s.records, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryStore) expired(rec Record, now time.Time) bool {
	return s.ttl > 0 && now.Sub(rec.LastAccessed) > s.ttl
}
