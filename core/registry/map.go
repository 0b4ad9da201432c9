package registry

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MapLoader serves handlers registered in code. A logical path that is a
// strict prefix of a registered path behaves like an existing directory
// without a module.
type MapLoader[H any] struct {
	mu       sync.RWMutex
	handlers map[string]H
	valid    func(H) bool
}

// NewMapLoader creates an empty loader. The optional valid func rejects
// registered values that cannot be constructed (e.g. nil factories).
func NewMapLoader[H any](valid func(H) bool) *MapLoader[H] {
	return &MapLoader[H]{
		handlers: make(map[string]H),
		valid:    valid,
	}
}

// Register binds a handler to a logical path, replacing any previous binding.
func (l *MapLoader[H]) Register(logicalPath string, h H) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[Clean(logicalPath)] = h
}

// Load implements Loader.
func (l *MapLoader[H]) Load(_ context.Context, logicalPath string) (H, error) {
	var zero H
	key := Clean(logicalPath)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if h, ok := l.handlers[key]; ok {
		if l.valid != nil && !l.valid(h) {
			return zero, ErrNotConstructible
		}
		return h, nil
	}

	prefix := key + "/"
	for p := range l.handlers {
		if strings.HasPrefix(p, prefix) {
			return zero, ErrNoModule
		}
	}

	return zero, ErrPathNotFound
}

// Paths returns every registered logical path in sorted order.
func (l *MapLoader[H]) Paths() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	paths := make([]string, 0, len(l.handlers))
	for p := range l.handlers {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
