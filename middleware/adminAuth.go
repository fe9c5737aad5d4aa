package middleware

import (
	"net/http"
	"strings"

	"cabgo/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuth gates the admin panel routes. The token is passed explicitly on
// every request; there is no ambient session state.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		username, err := utils.ValidateAdminToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminUser", username)
		c.Set("isAdmin", true)
		c.Next()
	}
}
