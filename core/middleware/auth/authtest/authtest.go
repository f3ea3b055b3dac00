// Package authtest injects sessions into Fiber apps under test.
package authtest

import (
	"prsk-lab/core/middleware/auth"
	"prsk-lab/core/session"

	"github.com/gofiber/fiber/v2"
)

// As returns a middleware that authenticates every request as the given user.
func As(userID, role string) fiber.Handler {
	claims := &session.Claims{UserID: userID, Name: userID, Role: role}
	return func(c *fiber.Ctx) error {
		c.Locals(auth.LocalsKey, claims)
		return c.Next()
	}
}
