// Package unit serves the unit master data and the admin seed operation.
//
// # Routes
//
//   - GET /api/units: units with their characters, ordered by priority.
//   - GET /api/units/:code: a single unit.
//   - POST /api/admin/seed: upsert the static units and characters, then
//     drop every master data cache.
package unit
