// file: middleware/admin_required.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"mentora-hub/logger"
	"mentora-hub/models"
)

// RoleResolver looks up a user's current role.
type RoleResolver interface {
	ResolveRole(ctx context.Context, uid string) (models.Role, error)
}

const loadingPage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><meta http-equiv="refresh" content="3">
<title>Loading...</title></head>
<body><p class="loading">Checking your access, please wait...</p></body></html>`

// AdminRequired resolves the role on every request, so a promotion or
// demotion takes effect without signing in again. Pages redirect; JSON
// endpoints under /admin/api get a 401.
func AdminRequired(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		uid, _ := session.Get(SessionUID).(string)
		api := isAPIRequest(c)

		if uid == "" {
			logger.Warn.Println("[AdminRequired] no session - blocking")
			deny(c, api, "/login")
			return
		}

		role, err := resolver.ResolveRole(c.Request.Context(), uid)
		if err != nil {
			logger.Error.Printf("[AdminRequired] role lookup failed for %s: %v", uid, err)
			c.Header("Retry-After", "3")
			if api {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Role lookup unavailable"})
				return
			}
			c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", []byte(loadingPage))
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			logger.Warn.Printf("[AdminRequired] %s has role %q - blocking", uid, role)
			deny(c, api, "/")
			return
		}

		c.Set(ContextUID, uid)
		c.Set(ContextRole, role)
		logger.Debug.Println("[AdminRequired] Passed, continuing request")
		c.Next()
	}
}

func deny(c *gin.Context, api bool, redirect string) {
	if api {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	} else {
		c.Redirect(http.StatusFound, redirect)
	}
	c.Abort()
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/admin/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
