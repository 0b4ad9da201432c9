// Package static serves files from an application's public directory.
//
// The request lifecycle asks Public to serve every GET or HEAD request before
// handler resolution; when a regular file exists at the request path under
// the root it is written with http.ServeContent (content type from the file
// extension, conditional and range requests supported) and the lifecycle
// ends. Paths that escape the root, directories and missing files fall
// through to handler resolution.
package static
