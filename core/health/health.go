package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/yarf"
	"github.com/dmitrymomot/yarf/core/logger"
	"github.com/dmitrymomot/yarf/core/response"
)

// Check verifies one dependency.
type Check func(context.Context) error

// Controller returns a controller factory for health checks:
//
//	GET <path>        liveness, always "ALIVE"
//	GET <path>/live   liveness, always "ALIVE"
//	GET <path>/ready  readiness, "READY" or 503 when a check fails
func Controller(log *slog.Logger, checks ...Check) yarf.Factory {
	if log == nil {
		log = logger.Discard()
	}
	p := &checker{log: log, checks: checks}
	return func() yarf.Controller { return p }
}

type checker struct {
	log    *slog.Logger
	checks []Check
}

func (p *checker) Actions() yarf.Actions {
	return yarf.Actions{
		"getIndex": p.live,
		"getLive":  p.live,
		"getReady": p.ready,
	}
}

func (p *checker) live(c *yarf.Context) {
	c.Complete("ALIVE")
}

func (p *checker) ready(c *yarf.Context) {
	for _, check := range p.checks {
		if err := check(c); err != nil {
			p.log.ErrorContext(c, "readiness check failed", logger.Error(err))
			c.Fail(response.ErrServiceUnavailable.WithError(err))
			return
		}
	}
	c.Complete("READY")
}
