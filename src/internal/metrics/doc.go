// Package metrics exposes Prometheus metrics for interface enumeration and the
// HTTP API.
package metrics
