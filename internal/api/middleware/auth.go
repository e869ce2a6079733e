package middleware

import (
	"net/http"
	"strings"

	"smarthelmet-backend/pkg/jwt"
	"smarthelmet-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stashes the caller's
// identity on the request context.
func AuthMiddleware(jwtUtil *jwt.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorMessageResponse(c, http.StatusUnauthorized, "unauthorized", "Authorization header required")
			c.Abort()
			return
		}

		// Accept both "Bearer <token>" and a bare token.
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			utils.ErrorMessageResponse(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role.
// Runs after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			utils.ErrorMessageResponse(c, http.StatusForbidden, "forbidden", "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
