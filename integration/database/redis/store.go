package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/yarf/core/session"
)

// DefaultKeyPrefix namespaces session keys.
const DefaultKeyPrefix = "yarf:session:"

// SessionStore keeps session records as JSON strings. Every fetch stores the
// new access time and slides the key's expiry forward by the TTL.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewSessionStore creates a store. A non-positive ttl keeps keys forever.
func NewSessionStore(client redis.UniversalClient, prefix string, ttl time.Duration) (*SessionStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}, nil
}

// FetchOrCreate loads the record under id, or stores a new one.
func (s *SessionStore) FetchOrCreate(ctx context.Context, id string, now time.Time) (session.Record, error) {
	if id != "" {
		raw, err := s.client.Get(ctx, s.key(id)).Bytes()
		switch {
		case err == nil:
			var rec session.Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return session.Record{}, fmt.Errorf("redis: %w: %s: %w", ErrCorruptRecord, id, err)
			}
			rec.ID = id
			rec.LastAccessed = now
			if rec.Data == nil {
				rec.Data = map[string]any{}
			}
			if err := s.Save(ctx, rec); err != nil {
				return session.Record{}, err
			}
			return rec, nil
		case !errors.Is(err, redis.Nil):
			return session.Record{}, fmt.Errorf("redis: fetch session: %w", err)
		}
	}

	rec := session.NewRecord(now)
	if err := s.Save(ctx, rec); err != nil {
		return session.Record{}, err
	}
	return rec, nil
}

// Save writes the record and resets its expiry.
func (s *SessionStore) Save(ctx context.Context, rec session.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redis: encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(rec.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: save session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return s.prefix + id
}
