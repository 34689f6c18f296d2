package middlewares

import (
	"log"
	"net/http"
	"strings"

	authUtils "fixmyward-be/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the requesting user from the auth_token
// cookie or an Authorization bearer header and stores the user id on
// the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("auth_token")
		if err != nil || tokenString == "" {
			authHeader := c.Request.Header.Get("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
				c.Abort()
				return
			}
			tokenString = authHeader
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = authHeader[7:]
			}
		}

		userID, err := authUtils.ParseToken(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
