// Package mongo connects to MongoDB and provides a session.Store backed by a
// MongoDB collection.
//
// Connection settings are read from the environment through Config:
//
//	MONGODB_URL                 connection string (required)
//	MONGODB_DATABASE            database name (default: yarf)
//	MONGODB_CONNECT_TIMEOUT     connect and ping timeout (default: 10s)
//	MONGODB_MAX_POOL_SIZE       maximum pool size (default: 100)
//	MONGODB_MIN_POOL_SIZE       minimum pool size (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  idle connection lifetime (default: 300s)
//	MONGODB_RETRY_WRITES        retryable writes (default: true)
//	MONGODB_RETRY_READS         retryable reads (default: true)
//	MONGODB_RETRY_ATTEMPTS      connection attempts (default: 3)
//	MONGODB_RETRY_INTERVAL      base pause between attempts (default: 5s)
//	SESSION_COLLECTION          session collection (default: yarf_sessions)
//
// Usage:
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store, err := mongo.NewSessionStore(db, cfg.SessionCollection, time.Hour)
//	if err != nil {
//		return err
//	}
//	if err := store.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//
// Session documents carry the id in _id, a last_accessed timestamp and a data
// sub-document. When a TTL is given, MongoDB removes documents that have not
// been touched for that long.
package mongo
