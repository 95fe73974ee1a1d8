package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campusanon/internal/pkg"
	"campusanon/internal/repository/redis"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
)

func Auth(tokens *pkg.JWTManager, sessions *redis.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		tokenStr := parts[1]
		claims, err := tokens.ParseAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// the stored token must match; a newer login or a ban replaces or
		// removes it and invalidates this one
		stored, err := sessions.GetToken(c.Request.Context(), claims.UserID)
		if err != nil || stored != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session no longer valid"})
			return
		}

		if err := sessions.ExtendToken(c.Request.Context(), claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session refresh failed"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// UserID reads the authenticated user id set by Auth.
func UserID(c *gin.Context) uint64 {
	v, _ := c.Get(ContextUserIDKey)
	id, _ := v.(uint64)
	return id
}
