// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - Auth: verifies the session cookie, enforces roles on admin routes and
//     redirects anonymous page requests to the login flow.
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//   - Metrics: records Prometheus request counters and latency histograms.
//
// These middleware components are designed to be registered globally or per-route group
// in the main application setup.
package middleware
