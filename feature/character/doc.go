// Package character serves the character master data.
//
// Characters are read through a TTL cache (core/cache) since they only
// change when the seed runs. Each character is returned with the code of
// its unit so clients and the event-bonus calculator can tell VIRTUAL
// SINGER characters apart.
//
// # Routes
//
//   - GET /api/characters?unit_code=: list characters ordered by priority.
//   - GET /api/characters/:code: a single character.
package character
