// Package integrity provides system health checks.
//
// # Checks Provided
//
//   - Schema: the database tables, including many2many join tables, match
//     the GORM models (columns, and column types on MySQL).
//   - Storage: the image bucket exists, every furniture image key points at
//     a stored object, and no stored image is unreferenced.
//
// Both checks run concurrently. With ?fix=true the storage check creates a
// missing bucket, removes orphan images and clears dangling image keys.
//
// # HTTP Endpoints
//
//   - GET /api/admin/integrity : Runs all checks (supports ?fix=true).
//   - GET /api/admin/integrity/schema : Runs the schema check.
//   - GET /api/admin/integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
