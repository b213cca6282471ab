// Package middleware provides HTTP middleware for request logging and
// Prometheus metrics collection. Health check endpoints are excluded from
// both so that liveness probes do not pollute logs or metric series.
package middleware
