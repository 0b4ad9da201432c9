package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/yarf/core/config"
	"github.com/dmitrymomot/yarf/core/health"
	"github.com/dmitrymomot/yarf/core/logger"
	"github.com/dmitrymomot/yarf/core/session"
	"github.com/dmitrymomot/yarf/integration/database/mongo"
	"github.com/dmitrymomot/yarf/integration/database/redis"
)

// sessionBackend is an opened session store with its shutdown and background
// work.
type sessionBackend struct {
	store session.Store
	check health.Check
	run   func(ctx context.Context) func() error
	close func(ctx context.Context) error
}

func openSessionStore(ctx context.Context, cfg AppConfig, log *slog.Logger) (*sessionBackend, error) {
	ttl := cfg.Session.TTL()

	switch cfg.SessionStore {
	case storeMemory, "":
		store := session.NewMemoryStore(ttl)
		return &sessionBackend{
			store: store,
			run:   sweepMemory(store, cfg.Janitor.Schedule, log),
			close: func(context.Context) error { return nil },
		}, nil

	case storeMongo:
		var mc mongo.Config
		if err := config.Load(&mc); err != nil {
			return nil, err
		}
		client, err := mongo.New(ctx, mc)
		if err != nil {
			return nil, err
		}
		store, err := mongo.NewSessionStore(client.Database(mc.Database), mc.SessionCollection, ttl)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.InfoContext(ctx, "mongo session store ready", "database", mc.Database, "collection", mc.SessionCollection)
		return &sessionBackend{
			store: store,
			check: mongo.Healthcheck(client),
			close: client.Disconnect,
		}, nil

	case storeRedis:
		var rc redis.Config
		if err := config.Load(&rc); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rc)
		if err != nil {
			return nil, err
		}
		store, err := redis.NewSessionStore(client, rc.SessionKeyPrefix, ttl)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		log.InfoContext(ctx, "redis session store ready", "prefix", rc.SessionKeyPrefix)
		return &sessionBackend{
			store: store,
			check: redis.Healthcheck(client),
			close: func(context.Context) error { return client.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
}

// sweepMemory evicts expired in-memory sessions on the janitor schedule.
func sweepMemory(store *session.MemoryStore, schedule string, log *slog.Logger) func(context.Context) func() error {
	return func(ctx context.Context) func() error {
		return func() error {
			c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
			if _, err := c.AddFunc(schedule, func() {
				if n := store.Sweep(time.Now()); n > 0 {
					log.DebugContext(ctx, "expired sessions evicted", logger.Count("sessions", n))
				}
			}); err != nil {
				return fmt.Errorf("session sweep schedule: %w", err)
			}
			c.Start()
			<-ctx.Done()
			<-c.Stop().Done()
			return nil
		}
	}
}
