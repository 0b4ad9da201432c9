package session

import "errors"

var (
	// ErrStoreUninitialized is returned when sessions are used without a store.
	ErrStoreUninitialized = errors.New("session: store is not initialized")
	// ErrStore wraps failures reported by the session store.
	ErrStore = errors.New("session: store failure")
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("session: record not found")
)
