// Package setting stores per-user preferences.
//
// A user without a stored row gets the defaults: no leader character,
// checked reactions shown, every unit visible. PUT replaces the whole
// setting and creates the row on first use.
//
// # Routes
//
//   - GET /api/settings
//   - PUT /api/settings
package setting
