// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a text or JSON logger; the attribute helpers give every package
// the same keys for the same facts, so request lifecycle logs can be queried
// consistently:
//
//	log := logger.New(logger.WithJSONFormatter(), logger.WithLevelName("debug"))
//
//	log.Info("serving request",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.RemoteAddr(addr, port),
//	)
//
//	log.Error("session write-back failed",
//		logger.Error(err),
//		logger.SessionID(id),
//		logger.Controller("admin/widgets"),
//		logger.ActionID("postEdit"),
//	)
//
// Helpers return an empty slog.Attr for nil or empty input, so callers never
// need nil checks around them.
package logger
