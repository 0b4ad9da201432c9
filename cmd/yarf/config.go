package main

import (
	"github.com/dmitrymomot/yarf"
	"github.com/dmitrymomot/yarf/core/binder"
	"github.com/dmitrymomot/yarf/core/cookie"
	"github.com/dmitrymomot/yarf/core/janitor"
	"github.com/dmitrymomot/yarf/core/server"
	"github.com/dmitrymomot/yarf/core/session"
)

// Session store backends selectable with SESSION_STORE.
const (
	storeMemory = "memory"
	storeMongo  = "mongo"
	storeRedis  = "redis"
)

// AppConfig aggregates the configuration of every component. Store specific
// settings are loaded only for the selected backend.
type AppConfig struct {
	Engine  yarf.Config
	Server  server.Config
	Session session.Config
	Cookie  cookie.Config
	Limits  binder.Limits
	Janitor janitor.Config

	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`
	MetricsAddr  string `env:"METRICS_ADDR" envDefault:""`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
}
