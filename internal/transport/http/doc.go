// Package http contains the HTTP transport layer: chi handlers that adapt
// the dashboard service to the JSON API, plus health and metrics
// endpoints. Handlers validate inputs, map service errors to RFC 7807
// problem documents, and never contain aggregation logic themselves.
package http
