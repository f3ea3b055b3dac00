// Package oauth wraps golang.org/x/oauth2 for the login flow.
//
// A Provider builds the consent URL and turns an authorization code into a
// normalized Profile (subject, name, e-mail, avatar). Presets exist for
// Google (OpenID Connect userinfo) and Discord (/users/@me); the custom
// provider takes all three endpoints from configuration.
package oauth
