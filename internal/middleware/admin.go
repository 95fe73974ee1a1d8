package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusanon/internal/model"
)

// AdminOnly gates a route group on the role claim. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextRoleKey)
		role, _ := v.(int)
		if !ok || role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privilege required"})
			return
		}
		c.Next()
	}
}
