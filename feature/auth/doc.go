// Package auth implements the OAuth login flow and the session endpoints.
//
// Login stores a random state and the post-login path in short-lived
// HttpOnly cookies and redirects to the provider. The callback checks the
// state, exchanges the code for a profile, upserts the user and sets the
// signed session cookie.
//
// # Routes
//
//   - GET /auth/login?callback_url=: redirect to the provider.
//   - GET /auth/callback?code=&state=: finish the login.
//   - POST /auth/logout: clear the session cookie.
//   - GET /auth/session: the current session claims, or null.
package auth
