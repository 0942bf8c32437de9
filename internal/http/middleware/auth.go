package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"restoapi/internal/auth"
	"restoapi/internal/model"
)

// ClaimsLocalKey is the key under which verified token claims are stored in Fiber's context locals.
const ClaimsLocalKey = "claims"

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth rejects requests without a valid bearer token with 401.
func Auth(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// OptionalAuth records the caller when a valid token is present and lets anonymous
// requests through. A malformed or expired token is still rejected.
func OptionalAuth(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if bearerToken(c) == "" {
			return c.Next()
		}
		return Auth(tokens)(c)
	}
}

// RequireRoles must run after Auth. It answers 403 unless the caller has one of roles.
func RequireRoles(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		if !slices.Contains(roles, claims.Role) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// Claims returns the verified claims, or nil for anonymous requests.
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}
