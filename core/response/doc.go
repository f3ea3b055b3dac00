// Package response implements the uniform JSON envelope returned by every
// API route:
//
//	{"success": true, "message": "OK", "data": {...}}
//
// Validation failures add an "errors" object keyed by JSON field name.
// Not-found and conflict helpers build their message from the entity name,
// and Internal logs the cause before answering with a generic 500.
package response
