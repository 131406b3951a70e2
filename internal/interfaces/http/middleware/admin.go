package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards admin-only routes. It must run after the JWT
// middleware so the admin claim is already in the context.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTClaims(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FORBIDDEN",
					"message": "Admin privileges required",
				},
			})
			return
		}

		c.Next()
	}
}
