package middleware

import (
	"net/http"
	"strings"

	"medvault/models"
	"medvault/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token, rejects revoked sessions, and stores the
// caller's identity in the request context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if cache := utils.AuthCacheClient; cache != nil {
			key := utils.RevokedTokenPrefix + utils.HashToken(tokenString)
			if n, err := cache.Exists(c.Request.Context(), key).Result(); err == nil && n > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				return
			}
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Runs after JWTAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized for this resource"})
			return
		}
		c.Next()
	}
}

// RequireProfessional restricts a route to professional accounts.
func RequireProfessional() gin.HandlerFunc {
	return RequireRole(models.RoleProfessional)
}

// RequirePatient restricts a route to patient accounts.
func RequirePatient() gin.HandlerFunc {
	return RequireRole(models.RolePatient)
}
