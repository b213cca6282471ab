// Package metrics defines the Prometheus collectors for the gallery service.
//
// All collectors are registered at package load time via promauto and are
// safe for concurrent use. They are exposed on the dedicated metrics port
// (see main.go) rather than the application port.
package metrics
