// Package middleware file: middleware/role.go
package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"mentora-hub/models"
)

// WithRole resolves the signed-in user's role for pages that render
// differently for admins, such as the navigation bar. It never blocks:
// anonymous visitors and failed lookups continue as students.
func WithRole(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.RoleStudent
		if uid, _ := sessions.Default(c).Get(SessionUID).(string); uid != "" {
			c.Set(ContextUID, uid)
			if r, err := resolver.ResolveRole(c.Request.Context(), uid); err == nil {
				role = r
			}
		}
		c.Set(ContextRole, role)
		c.Next()
	}
}

// CurrentRole reads the role set by WithRole or AdminRequired.
func CurrentRole(c *gin.Context) models.Role {
	if r, ok := c.Get(ContextRole); ok {
		if role, ok := r.(models.Role); ok {
			return role
		}
	}
	return models.RoleStudent
}
