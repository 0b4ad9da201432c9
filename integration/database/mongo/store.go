package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/yarf/core/session"
)

// SessionStore keeps session records in a MongoDB collection, one document
// per session keyed by its id.
type SessionStore struct {
	coll *mongodriver.Collection
	ttl  time.Duration
}

// NewSessionStore creates a store on db.Collection(collection). A positive
// ttl is used by EnsureIndexes to expire idle sessions.
func NewSessionStore(db *mongodriver.Database, collection string, ttl time.Duration) (*SessionStore, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	if collection == "" {
		collection = "yarf_sessions"
	}
	return &SessionStore{coll: db.Collection(collection), ttl: ttl}, nil
}

// EnsureIndexes creates the TTL index on last_accessed.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	_, err := s.coll.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "last_accessed", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(s.ttl / time.Second)),
	})
	if err != nil {
		return fmt.Errorf("mongo: create session ttl index: %w", err)
	}
	return nil
}

// FetchOrCreate touches the record stored under id, or inserts a new one.
func (s *SessionStore) FetchOrCreate(ctx context.Context, id string, now time.Time) (session.Record, error) {
	if id != "" {
		var rec session.Record
		err := s.coll.FindOneAndUpdate(ctx,
			bson.D{{Key: "_id", Value: id}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "last_accessed", Value: now}}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&rec)
		switch {
		case err == nil:
			rec.Data = normalizeMap(rec.Data)
			return rec, nil
		case !errors.Is(err, mongodriver.ErrNoDocuments):
			return session.Record{}, fmt.Errorf("mongo: fetch session: %w", err)
		}
	}

	rec := session.NewRecord(now)
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return session.Record{}, fmt.Errorf("mongo: create session: %w", err)
	}
	return rec, nil
}

// Save replaces the record's data and last-accessed time.
func (s *SessionStore) Save(ctx context.Context, rec session.Record) error {
	data := rec.Data
	if data == nil {
		data = map[string]any{}
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: rec.ID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "last_accessed", Value: rec.LastAccessed},
			{Key: "data", Value: data},
		}}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo: save session: %w", err)
	}
	return nil
}

// normalizeMap converts nested BSON documents and arrays into plain maps and
// slices so session data looks the same regardless of the backing store.
func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	for k, v := range m {
		m[k] = normalize(v)
	}
	return m
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.M:
		return normalizeMap(map[string]any(t))
	case map[string]any:
		return normalizeMap(t)
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	}
	return v
}
