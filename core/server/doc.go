// Package server runs an http.Handler with graceful shutdown.
//
// Server wraps http.Server with environment-driven configuration and an
// errgroup-friendly Run method:
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, engine))
//	return g.Wait()
//
// The server does not terminate TLS; run it behind a proxy that does.
//
// Defaults: 10s header read timeout, 90s read and write timeouts, 60s idle
// timeout, 1MB header limit and a 30s graceful shutdown window. The read and
// write timeouts exceed the engine's default request deadline so that slow
// requests are finalized by the engine rather than cut by the transport.
package server
