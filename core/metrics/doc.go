// Package metrics exposes Prometheus metrics for the request lifecycle:
// completed requests by method and status, request duration, uploaded files,
// session store round trips and janitor sweeps.
package metrics
