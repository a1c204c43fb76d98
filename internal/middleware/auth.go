package middleware

import (
	"net/http"
	"strings"

	"jumparena/internal/pkg/jwt"
	"jumparena/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and stores the acting identity in the
// request context under account_id, role, client_id and employee_id.
func Auth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or malformed Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("role", claims.Role)
		c.Set("client_id", claims.ClientID)
		c.Set("employee_id", claims.EmployeeID)

		c.Next()
	}
}
