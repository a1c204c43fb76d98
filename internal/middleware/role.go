package middleware

import (
	"net/http"

	"jumparena/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures the authenticated account holds one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// StaffOnly admits admin and staff accounts.
func StaffOnly() gin.HandlerFunc {
	return RequireRole("admin", "staff")
}

// ClientOnly admits client accounts.
func ClientOnly() gin.HandlerFunc {
	return RequireRole("client")
}
