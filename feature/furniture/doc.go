// Package furniture implements the furniture catalogue and reaction checks.
//
// Admins maintain tags, groups, furniture (with an image in object storage)
// and reactions, i.e. the set of characters reacting together to a
// furniture. Users check reactions off as they see them in game.
//
// # Groups and Excluded Combinations
//
// Furniture in the same group share checks: a reaction that is not
// directly checked still counts as checked ("group") when a reaction with
// the same character combination on another furniture of the group is
// directly checked. Admins mark combinations as excluded per group to stop
// that sharing. BuildCombinations lists every combination of a group with
// its excluded flag, and ResolveChecks computes the status of every
// reaction for a user.
//
// # HTTP Endpoints
//
// User routes under /api:
//
//   - GET /reactions : furniture with reactions and checked_by (direct, group or null).
//   - POST /reactions/:id/check, DELETE /reactions/:id/check
//   - GET /furnitures/:id/image : stream the furniture image.
//
// Admin routes under /api/admin:
//
//   - /furniture-tags, /furniture-groups, /furnitures: CRUD.
//   - GET /furniture-groups/:id/combinations
//   - PUT /furniture-groups/:id/excluded-combinations
//   - PUT /furnitures/:id/image : multipart upload.
//   - POST /furnitures/:id/reactions, PUT|DELETE /reactions/:id
package furniture
