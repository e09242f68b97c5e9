// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"mentora-hub/logger"
)

// session keys shared with the controllers
const (
	SessionUID   = "uid"
	SessionEmail = "user"
)

// context keys set by the middleware
const (
	ContextUID  = "uid"
	ContextRole = "role"
)

// -------------- authentication middleware --------------

// AuthRequired redirects visitors without a signed-in session to /login.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	uid, _ := session.Get(SessionUID).(string)

	if uid == "" {
		logger.Warn.Printf("[AuthRequired] no signed-in user for %s", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set(ContextUID, uid)
	logger.Debug.Println("[AuthRequired] User authenticated - proceeding with request")
	c.Next()
}
