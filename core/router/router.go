package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/yarf/core/registry"
)

// IndexPath is the logical path resolved for a request without path segments.
const IndexPath = "index"

// Resolver is the registry capability the path walk needs.
type Resolver[H any] interface {
	Resolve(ctx context.Context, logicalPath string) (registry.Descriptor[H], error)
}

// Split breaks a URL pathname into its non-empty segments.
func Split(pathname string) []string {
	raw := strings.Split(pathname, "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Resolve walks segments left to right and returns the descriptor of the first
// prefix that holds a handler, together with the segments after that prefix.
//
// An empty segment list resolves IndexPath. The walk continues past prefixes
// that exist without a module and stops with ErrNotFound at the first prefix
// that does not exist or holds an unusable module. Errors that are not misses
// are returned wrapped.
func Resolve[H any](ctx context.Context, r Resolver[H], segments []string) (registry.Descriptor[H], []string, error) {
	var zero registry.Descriptor[H]
	if r == nil {
		return zero, nil, ErrNoResolver
	}

	if len(segments) == 0 {
		d, err := r.Resolve(ctx, IndexPath)
		if err != nil {
			return zero, nil, classify(IndexPath, err)
		}
		return d, []string{}, nil
	}

	for i := range segments {
		candidate := strings.Join(segments[:i+1], "/")

		d, err := r.Resolve(ctx, candidate)
		switch {
		case err == nil:
			rest := make([]string, len(segments)-i-1)
			copy(rest, segments[i+1:])
			return d, rest, nil
		case errors.Is(err, registry.ErrNoModule):
			continue
		default:
			return zero, nil, classify(candidate, err)
		}
	}

	return zero, nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(segments, "/"))
}

func classify(candidate string, err error) error {
	if registry.IsMiss(err) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, candidate, err)
	}
	return fmt.Errorf("router: resolve %s: %w", candidate, err)
}
