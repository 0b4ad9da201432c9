package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/dmitrymomot/yarf"
	"github.com/dmitrymomot/yarf/core/health"
	"github.com/dmitrymomot/yarf/core/registry"
)

// bindControllers makes the bundled controllers available to manifests:
// a module directory whose controller.yaml says `controller: echo` is served
// by the echo controller.
func bindControllers(l *registry.DirLoader[yarf.Factory], log *slog.Logger, checks ...health.Check) {
	l.Bind("health", health.Controller(log, checks...))
	l.Bind("home", func() yarf.Controller { return home{} })
	l.Bind("echo", func() yarf.Controller { return echo{} })
	l.Bind("upload", func() yarf.Controller { return upload{} })
	l.Bind("counter", func() yarf.Controller { return counter{} })
}

type home struct{}

func (home) Actions() yarf.Actions {
	return yarf.Actions{
		"getIndex": func(c *yarf.Context) {
			c.Complete("<h1>yarf</h1>")
		},
	}
}

// echo returns what it was sent.
type echo struct{}

func (echo) Actions() yarf.Actions {
	respond := func(c *yarf.Context) {
		c.Complete(map[string]any{
			"action":  c.ActionID(),
			"params":  c.Params(),
			"query":   c.Query(),
			"fields":  c.Post(),
			"payload": printable(c.Payload()),
			"remote":  c.RemoteAddr(),
		})
	}
	return yarf.Actions{
		"getIndex":  respond,
		"postIndex": respond,
		"putIndex":  respond,
	}
}

func printable(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// upload lists received files.
type upload struct{}

func (upload) Actions() yarf.Actions {
	return yarf.Actions{
		"postIndex": func(c *yarf.Context) {
			type file struct {
				Field string `json:"field"`
				Name  string `json:"name"`
				Type  string `json:"type"`
				Size  int64  `json:"size"`
			}

			files := make([]file, 0)
			for _, list := range c.Files() {
				for _, f := range list {
					files = append(files, file{Field: f.FieldName, Name: f.FileName, Type: f.MimeType, Size: f.Size})
					_ = f.Remove()
				}
			}
			sort.Slice(files, func(i, j int) bool { return files[i].Field < files[j].Field })

			c.SetStatus(http.StatusCreated)
			c.Complete(map[string]any{"files": files})
		},
	}
}

// counter counts visits per session.
type counter struct{}

func (counter) Actions() yarf.Actions {
	return yarf.Actions{
		"getIndex": func(c *yarf.Context) {
			sess := c.Session()
			if sess == nil {
				c.Complete("sessions are disabled")
				return
			}
			n := visits(sess["visits"]) + 1
			sess["visits"] = n
			c.Complete(fmt.Sprintf("visit %d", n))
		},
		"deleteIndex": func(c *yarf.Context) {
			clear(c.Session())
			c.SetStatus(http.StatusNoContent)
			c.Complete(nil)
		},
	}
}

// visits reads a counter that may come back from a store as any number type.
func visits(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
