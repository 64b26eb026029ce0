package middleware

import (
	"context"
	"strings"

	"inmobiliaria-backend/internal/constants"
	"inmobiliaria-backend/internal/pkg/response"
	"inmobiliaria-backend/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const authLocal = "auth"

// RequireAuth validates the bearer token and rejects tokens of deactivated
// users (Redis denylist). Claims are stored in Locals for handlers.
func RequireAuth(issuer *token.Issuer, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c, "Unauthorized")
		}
		claims, err := issuer.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if rdb != nil {
			n, err := rdb.Exists(context.Background(), constants.DisabledUserKey(claims.UserID)).Result()
			if err == nil && n > 0 {
				return response.Unauthorized(c, "Account is deactivated")
			}
		}
		c.Locals(authLocal, claims)
		return c.Next()
	}
}

// GetClaims returns the authenticated user's claims (nil if not logged in).
func GetClaims(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(authLocal).(*token.Claims)
	return claims
}
