package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/dto/response"
	"github.com/nashon/pos-ledger-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware for terminal
// sessions. The validated operator name is stored in the gin context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator", claims.Operator)

		c.Next()
	}
}

// GetOperator returns the authenticated operator name from the context,
// or the empty string on unauthenticated routes.
func GetOperator(c *gin.Context) string {
	if v, exists := c.Get("operator"); exists {
		if operator, ok := v.(string); ok {
			return operator
		}
	}
	return ""
}
