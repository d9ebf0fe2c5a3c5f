// Package app assembles the application: configuration, logging, the
// dashboard service, the chi router with its middleware stack, and the
// HTTP server lifecycle including graceful shutdown.
package app
