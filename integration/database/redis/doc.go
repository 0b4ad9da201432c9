// Package redis connects to Redis and provides a session.Store that keeps
// each session as a JSON string under a prefixed key.
//
// Configuration is read from the environment through Config:
//
//	REDIS_URL              redis:// or rediss:// URL (required)
//	REDIS_RETRY_ATTEMPTS   ping attempts before giving up (default: 3)
//	REDIS_RETRY_INTERVAL   base pause between attempts (default: 5s)
//	REDIS_CONNECT_TIMEOUT  overall connect deadline (default: 30s)
//	SESSION_KEY_PREFIX     session key prefix (default: yarf:session:)
//
// Usage:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store, err := redis.NewSessionStore(client, cfg.SessionKeyPrefix, 2*time.Hour)
//
// Fetching a session uses GETEX so an active session never expires while it
// is in use. Save rewrites the whole record with SET EX.
//
// Errors can be checked with errors.Is: ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString, ErrRedisNotReady, ErrHealthcheckFailed,
// ErrNilClient and ErrCorruptRecord.
package redis
