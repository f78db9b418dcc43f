// Package middleware provides HTTP middleware for the fiber application.
package middleware

import (
	"strings"

	"custodia/internal/utils"
	"custodia/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// Auth validates the Bearer token and stores the claims in the request
// context. Downstream handlers read the authenticated user ID from
// c.Locals("claims"); the funds engine itself never inspects credentials.
func Auth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c)
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			return response.Error(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals("claims", claims)
		c.Locals("userID", claims.UserID)
		return c.Next()
	}
}
