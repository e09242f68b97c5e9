// file: controllers/test_helpers.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"mentora-hub/logger"
	"mentora-hub/middleware"
	"mentora-hub/models"
)

func init() {
	logger.InitNop()
}

// setupTestRouter creates a new Gin engine with session middleware and fake HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Set up sessions with cookie store.
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	// Create minimal templates to avoid panics during testing.
	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}

	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes a set of minimal HTML templates to the provided directory.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"index.html":           `<html><body>{{range .Pages}}{{.Slug}} {{end}}</body></html>`,
		"support.html":         `<html><body>{{.Page.PageTitle}}{{with .Widget}} agent={{.AgentID}} expanded={{.Expanded}}{{end}}{{with .Error}} error={{.}}{{end}}</body></html>`,
		"404.html":             `<html><body>Page not found</body></html>`,
		"login.html":           `<html><body>{{with .Error}}{{.}}{{end}}</body></html>`,
		"signup.html":          `<html><body>{{with .Error}}{{.}}{{end}}</body></html>`,
		"admin_dashboard.html": `<html><body>{{with .Error}}{{.}}{{else}}reports={{.Snapshot.Totals.Reports}}{{end}}</body></html>`,
		"admin_event.html":     `<html><body>{{.EventName}}{{with .Error}} {{.}}{{end}}</body></html>`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// SetSession sets the given key/value pairs in the session using a helper route
// and returns the session cookie that can be attached to subsequent test requests.
func SetSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	// Create a helper route for setting session values.
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	// Call the helper route.
	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Extract and return the session cookie.
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "testsession" {
			return cookie
		}
	}
	return nil
}

// asAdmin stands in for middleware.AdminRequired: it marks the request as
// coming from uid with the admin role.
func asAdmin(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUID, uid)
		c.Set(middleware.ContextRole, models.RoleAdmin)
		c.Next()
	}
}

// perform sends a request with an optional body and cookie.
func perform(router *gin.Engine, method, path, contentType, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
