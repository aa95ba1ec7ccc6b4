package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const localsSubjectKey = "auth_subject"

// KeyValidator checks a plaintext API key, returning the key owner
type KeyValidator func(key string) (string, bool)

// Middleware accepts either a Bearer access token or an X-API-Key
// header. Requests without valid credentials are rejected before the
// handler runs.
func Middleware(tokens *TokenService, validateKey KeyValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key := c.Get("X-API-Key"); key != "" && validateKey != nil {
			owner, ok := validateKey(key)
			if !ok {
				return ErrInvalidAPIKey()
			}
			c.Locals(localsSubjectKey, owner)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrMissingCredentials()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ErrInvalidToken().WithDetail("reason", "authorization header is not a bearer token")
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(localsSubjectKey, claims.Subject)
		return c.Next()
	}
}

// Subject returns the authenticated subject set by Middleware
func Subject(c *fiber.Ctx) (string, bool) {
	subject, ok := c.Locals(localsSubjectKey).(string)
	return subject, ok
}
