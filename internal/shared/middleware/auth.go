package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/shared/response"
	"book-catalog/pkg/jwt"
)

// WriteGuard protects mutating catalog routes with a bearer token.
// When disabled every request passes through.
func WriteGuard(manager *jwt.Manager, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		// 2. Extract token từ "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		// 3. Verify và parse JWT
		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString("request_id")).
				Msg("Rejected catalog write token")
			response.Unauthorized(c, "invalid token")
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}
