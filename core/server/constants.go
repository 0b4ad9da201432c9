package server

import "time"

const (
	// DefaultReadHeaderTimeout bounds reading request headers.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultReadTimeout bounds reading the whole request. It is longer than
	// the default request deadline so uploads are cut by the engine first.
	DefaultReadTimeout = 90 * time.Second

	// DefaultWriteTimeout bounds writing the response.
	DefaultWriteTimeout = 90 * time.Second

	// DefaultIdleTimeout is the default timeout for idle connections.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the default timeout for graceful shutdown.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxHeaderBytes is the default maximum size of request headers.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)
