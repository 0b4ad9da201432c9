// Package router maps request paths onto handler descriptors and dispatch keys.
//
// Routing is a fixed two-stage walk rather than a pattern table. Resolve walks
// the path segments against a registry and stops at the first prefix that
// holds a handler; SelectAction then consumes at most one more segment as the
// action name and combines it with the HTTP method:
//
//	segments := router.Split("/admin/users/edit/42")
//	desc, rest, err := router.Resolve(ctx, reg, segments) // admin/users, [edit 42]
//	action := router.SelectAction(http.MethodPost, rest)  // postEdit, [42]
//
// Both functions return fresh slices, so the caller's segment list only ever
// shrinks as routing proceeds.
package router
