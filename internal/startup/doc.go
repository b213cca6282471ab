// Package startup handles application initialization: layered configuration
// (defaults, optional YAML file, environment variables), directory setup,
// build information, and the structured startup and shutdown log output.
package startup
