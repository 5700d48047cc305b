package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/achoumais/achoumais/internal/utils"
)

// JWTMiddleware guards the admin endpoints.
type JWTMiddleware struct {
	jwt *utils.JWTManager
}

// NewJWTMiddleware constructs a JWTMiddleware.
func NewJWTMiddleware(jwt *utils.JWTManager) *JWTMiddleware {
	return &JWTMiddleware{jwt: jwt}
}

// Handle validates the Bearer token and stores the admin email in context.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := m.jwt.Validate(parts[1])
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Next()
	}
}
