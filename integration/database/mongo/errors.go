package mongo

import "errors"

var (
	// ErrFailedToConnectToMongo is returned when all connection attempts fail.
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	// ErrHealthcheckFailed is returned when the health check ping fails.
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
	// ErrEmptyConnectionURL is returned when no connection URL is configured.
	ErrEmptyConnectionURL = errors.New("empty mongo connection URL")
	// ErrNilDatabase is returned when a store is created without a database.
	ErrNilDatabase = errors.New("mongo database is required")
)
