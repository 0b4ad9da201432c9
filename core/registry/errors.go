package registry

import "errors"

var (
	// ErrNotFound is returned when no handler can be resolved for a logical path.
	ErrNotFound = errors.New("registry: handler not found")

	// ErrNoModule is returned by a Loader when the path exists but holds no
	// handler module; resolution keeps walking deeper segments.
	ErrNoModule = errors.New("registry: no handler module at path")

	// ErrPathNotFound is returned by a Loader when the path itself does not
	// exist; resolution stops.
	ErrPathNotFound = errors.New("registry: path does not exist")

	// ErrNotConstructible is returned when a module exists but does not
	// describe a constructible handler.
	ErrNotConstructible = errors.New("registry: module is not a constructible handler")

	// ErrInvalidManifest is returned when a module manifest cannot be decoded.
	ErrInvalidManifest = errors.New("registry: invalid module manifest")

	// ErrNilLoader is returned when a registry is created without a loader.
	ErrNilLoader = errors.New("registry: loader is required")
)
