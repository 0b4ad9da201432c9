package yarf

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/yarf/core/registry"
	"github.com/dmitrymomot/yarf/core/router"
)

// Action handles one (method, action) pair. It must eventually call
// Context.Complete or Context.Fail, either before returning or later from
// another goroutine.
type Action func(*Context)

// Actions maps dispatch keys such as "getIndex" or "postEdit" to actions.
type Actions map[string]Action

// Controller is the handler for one module path.
type Controller interface {
	Actions() Actions
}

// Factory creates a fresh controller for every request routed to it.
type Factory func() Controller

// ControllerFunc adapts an Actions map to a Controller.
type ControllerFunc func() Actions

// Actions implements Controller.
func (f ControllerFunc) Actions() Actions {
	return f()
}

// handler is the compiled form of a Factory kept in the registry.
type handler struct {
	factory Factory
	keys    []string
}

// compile builds one instance from the factory to learn its dispatch keys.
func compile(f Factory) (h *handler, err error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil factory", registry.ErrNotConstructible)
	}

	defer func() {
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("%w: factory panicked: %v", registry.ErrNotConstructible, r)
		}
	}()

	sample := f()
	if sample == nil {
		return nil, fmt.Errorf("%w: factory returned nil", registry.ErrNotConstructible)
	}

	keys := make([]string, 0)
	for key, action := range sample.Actions() {
		if action != nil {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	return &handler{factory: f, keys: keys}, nil
}

// has reports whether the controller exposes the exact dispatch key.
func (h *handler) has(id string) bool {
	_, ok := slices.BinarySearch(h.keys, id)
	return ok
}

func (h *handler) actionKeys() []string {
	return slices.Clone(h.keys)
}

// compileLoader turns a loader of factories into a loader of compiled handlers.
func compileLoader(loader registry.Loader[Factory]) registry.Loader[*handler] {
	return registry.LoaderFunc[*handler](func(ctx context.Context, logicalPath string) (*handler, error) {
		f, err := loader.Load(ctx, logicalPath)
		if err != nil {
			return nil, err
		}
		return compile(f)
	})
}

// allow lists the methods that have an action for base, in acceptedMethods
// order. A key without a method prefix counts as GET.
func (h *handler) allow(base string) []string {
	methods := make([]string, 0, len(acceptedMethods))

	for _, m := range acceptedMethods {
		for _, key := range h.keys {
			method, rest, ok := router.CutMethod(key, acceptedMethods...)
			if !ok {
				method = http.MethodGet
			}
			if method == m && strings.EqualFold(rest, base) {
				methods = append(methods, m)
				break
			}
		}
	}

	return methods
}
