// Package health provides a controller answering liveness and readiness checks.
//
// Usage:
//
//	loader.Register("health", health.Controller(logger,
//		mongo.Healthcheck(client),
//	))
//
// Liveness never checks dependencies. Readiness runs every check in order and
// answers 503 on the first failure.
package health
