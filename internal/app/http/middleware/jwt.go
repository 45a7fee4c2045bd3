package middleware

import (
	"net/http"
	"strings"

	"unbelong-api/internal/app/auth"

	"github.com/gin-gonic/gin"
)

// AdminOnly requires a valid admin bearer token.
func AdminOnly(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(tokens.Secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Admin secret not configured"})
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header missing"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Bearer token malformed"})
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			return
		}
		if claims.Role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
			return
		}

		c.Set("admin", claims.Subject)
		c.Next()
	}
}
