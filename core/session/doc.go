// Package session implements cookie-keyed server-side sessions.
//
// A Manager resolves the session of a request in a single store round trip:
// the id carried in the session cookie (default name "yjs") is handed to
// Store.FetchOrCreate, which refreshes the last-accessed time of a known
// record or creates a fresh one. When the record id differs from the id the
// client presented, the Session carries a Set-Cookie value for the new id.
// After the action has run, Persist writes the possibly mutated data map back.
//
//	mgr := session.NewManager(session.NewMemoryStore(session.DefaultTTL))
//	sess, err := mgr.Resolve(ctx, cookie.Parse(r.Header.Get("Cookie")))
//	if err != nil {
//		return err
//	}
//	sess.Data["visits"] = 1
//	err = mgr.Persist(ctx, sess)
//
// MemoryStore is suitable for development and tests. Durable stores live in
// integration/database/mongo and integration/database/redis.
//
// Cookie values can be HMAC-signed with WithSigner; tampered or malformed ids
// are treated as absent and lead to a new session.
package session
