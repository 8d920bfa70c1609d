package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/auth"
	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

const claimsLocalKey = "auth_claims"

// TokenParser verifies bearer tokens. *auth.TokenIssuer satisfies it.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the verified claims in locals.
func RequireAuth(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals(claimsLocalKey, claims)
		return c.Next()
	}
}

// UserLookup loads the stored account behind a token. service.UserService satisfies it.
type UserLookup interface {
	Get(ctx context.Context, id string) (*model.User, error)
}

// RequireRole allows the request only when the authenticated user holds one of roles.
// It must run after RequireAuth. With non-nil users the role comes from the stored
// account and replaces the token role in locals; a deleted account gets 401.
// With nil users the token role holds until the token expires.
func RequireRole(users UserLookup, roles ...model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		if users != nil {
			u, err := users.Get(c.UserContext(), claims.UserID())
			if errors.Is(err, service.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
			}
			if err != nil {
				return err
			}
			current := *claims
			current.Role = u.Role
			claims = &current
			c.Locals(claimsLocalKey, claims)
		}
		for _, r := range roles {
			if claims.Role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}

// Claims returns the verified token claims, or nil on unauthenticated routes.
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsLocalKey).(*auth.Claims)
	return claims
}

// IsAdmin reports whether the authenticated user is an admin.
func IsAdmin(c *fiber.Ctx) bool {
	claims := Claims(c)
	return claims != nil && claims.Role == model.UserRoleAdmin
}

// UserID returns the authenticated user's ID, or "".
func UserID(c *fiber.Ctx) string {
	if claims := Claims(c); claims != nil {
		return claims.UserID()
	}
	return ""
}
