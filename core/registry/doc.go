// Package registry resolves logical controller paths to handler descriptors.
//
// A Registry sits in front of a Loader and memoizes successful loads keyed by
// logical path, so each handler module is loaded at most once per process.
// Concurrent first loads of the same path are collapsed with singleflight.
//
// Two loaders are provided. MapLoader holds handlers registered in code.
// DirLoader walks a modules directory on disk where each directory mirrors a
// URL prefix and a controller.yaml manifest marks a handler module:
//
//	Modules/
//	  index/controller.yaml        # controller: home
//	  admin/users/controller.yaml  # controller: users
//
// Loaders report three kinds of miss so the router can decide how to walk:
// ErrNoModule (path exists, keep walking), ErrPathNotFound (stop walking) and
// ErrNotConstructible (module present but unusable, treated as not found).
package registry
