// Package server holds the HTTP server configuration.
//
// The HTTP surface is optional: it exposes the on-demand reconciliation trigger,
// status and snapshot debug routes, Prometheus metrics and Swagger docs. The
// main entry point (cmd/start.go) decides whether to start it based on EnableWeb.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting the routes,
// and the EnableWeb switch.
package server
