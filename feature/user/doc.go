// Package user manages accounts.
//
// Accounts are created by the auth feature on first login through
// UpsertOAuthUser. Users can read and rename themselves; admins list users
// and change roles.
//
// # Routes
//
//   - GET /api/users/me, PATCH /api/users/me
//   - GET /api/admin/users, PATCH /api/admin/users/:id
package user
