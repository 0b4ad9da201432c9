package registry

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Descriptor identifies a loaded handler. It is immutable once loaded and
// shared read-only by every request routed to it.
type Descriptor[H any] struct {
	// Name is the last segment of the logical path.
	Name string
	// Path is the slash-separated logical path relative to the modules root.
	Path string
	// Handler is the value produced by the loader (typically a factory).
	Handler H
}

// Loader turns a logical path into a handler value.
//
// Implementations return ErrNoModule when the path exists without a module,
// ErrPathNotFound when the path does not exist at all, and
// ErrNotConstructible when the module is present but unusable.
type Loader[H any] interface {
	Load(ctx context.Context, logicalPath string) (H, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc[H any] func(ctx context.Context, logicalPath string) (H, error)

// Load implements Loader.
func (f LoaderFunc[H]) Load(ctx context.Context, logicalPath string) (H, error) {
	return f(ctx, logicalPath)
}

// Registry resolves logical paths to descriptors and memoizes successful loads.
// Safe for concurrent use; concurrent first loads of one path share a single
// loader call.
type Registry[H any] struct {
	loader Loader[H]
	cache  sync.Map // logical path -> Descriptor[H]
	group  singleflight.Group
}

// New creates a registry backed by the given loader.
func New[H any](loader Loader[H]) (*Registry[H], error) {
	if loader == nil {
		return nil, ErrNilLoader
	}
	return &Registry[H]{loader: loader}, nil
}

// Resolve returns the descriptor for logicalPath. Only successful loads are
// cached; loader errors pass through unchanged so callers can distinguish
// ErrNoModule from ErrPathNotFound.
func (r *Registry[H]) Resolve(ctx context.Context, logicalPath string) (Descriptor[H], error) {
	key := Clean(logicalPath)
	if key == "" {
		return Descriptor[H]{}, ErrPathNotFound
	}

	if cached, ok := r.cache.Load(key); ok {
		return cached.(Descriptor[H]), nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if cached, ok := r.cache.Load(key); ok {
			return cached, nil
		}

		h, err := r.loader.Load(ctx, key)
		if err != nil {
			return nil, err
		}

		desc := Descriptor[H]{
			Name:    path.Base(key),
			Path:    key,
			Handler: h,
		}
		r.cache.Store(key, desc)
		return desc, nil
	})
	if err != nil {
		return Descriptor[H]{}, err
	}

	return v.(Descriptor[H]), nil
}

// Cached reports whether logicalPath has already been loaded.
func (r *Registry[H]) Cached(logicalPath string) bool {
	_, ok := r.cache.Load(Clean(logicalPath))
	return ok
}

// IsMiss reports whether err means "nothing loadable here" as opposed to an
// infrastructure failure.
func IsMiss(err error) bool {
	return errors.Is(err, ErrNoModule) ||
		errors.Is(err, ErrPathNotFound) ||
		errors.Is(err, ErrNotConstructible) ||
		errors.Is(err, ErrNotFound)
}

// Clean normalizes a logical path: no leading or trailing slashes, no empty
// or dot segments.
func Clean(logicalPath string) string {
	parts := strings.Split(logicalPath, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "/")
}
