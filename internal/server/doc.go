// Package server runs the HTTP transport of the configuration server.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown bounded by the configured request timeout.
package server
