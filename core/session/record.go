package session

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Record is the persisted form of a session.
type Record struct {
	ID           string         `bson:"_id" json:"id"`
	LastAccessed time.Time      `bson:"last_accessed" json:"last_accessed"`
	Data         map[string]any `bson:"data" json:"data"`
}

// NewRecord creates an empty record with a fresh id.
func NewRecord(now time.Time) Record {
	return Record{
		ID:           NewID(),
		LastAccessed: now,
		Data:         map[string]any{},
	}
}

// Clone returns a copy of r with its own top-level data map.
func (r Record) Clone() Record {
	out := r
	out.Data = make(map[string]any, len(r.Data))
	maps.Copy(out.Data, r.Data)
	return out
}

// NewID returns a new opaque session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of an id produced by NewID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// Store persists session records.
// Implementations must be safe for concurrent use.
type Store interface {
	// FetchOrCreate returns the record stored under id with its last-accessed
	// time set to now. An empty or unknown id yields a newly created record
	// under a fresh id.
	FetchOrCreate(ctx context.Context, id string, now time.Time) (Record, error)
	// Save writes the record, replacing any stored data for its id.
	Save(ctx context.Context, rec Record) error
}
