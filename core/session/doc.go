// Package session issues and verifies the signed session cookie.
//
// Sessions are HS256 JWTs (golang-jwt/jwt/v5) carrying the user id, display
// name and role. The token travels in an HttpOnly cookie; API clients may
// also send it as a Bearer token.
package session
