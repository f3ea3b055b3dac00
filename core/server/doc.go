// Package server holds the HTTP server configuration and the Fiber
// application factory.
//
// New wires the cross-cutting middleware (RayID, request logging,
// Prometheus metrics) and installs the envelope error handler, so features
// only register their own routes.
//
// # Configuration
//
// The Config struct defines the HTTP port, the public base URL, the
// environment (development, production) and the request body limit.
package server
