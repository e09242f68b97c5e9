// main_test.go
package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentora-hub/config"
	"mentora-hub/logger"
	"mentora-hub/models"
	"mentora-hub/store"
	"mentora-hub/widget"
)

func init() {
	logger.InitNop()
}

// setupTestTemplates creates a temporary templates directory with the page names the router renders.
func setupTestTemplates(t *testing.T) string {
	dir := t.TempDir()
	names := []string{
		"index.html", "support.html", "404.html", "login.html", "signup.html",
		"admin_dashboard.html", "admin_event.html",
	}
	for _, name := range names {
		content := []byte("<html><body>" + name + "</body></html>")
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0644))
	}
	return dir
}

// setupTestApp wires the app against in-memory backends.
func setupTestApp(t *testing.T) (*App, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	cfg := config.App{
		Env:             "test",
		HTTPPort:        "8080",
		ApplicationURL:  "http://localhost:8080",
		SessionSecret:   "test-secret",
		StoreBackend:    config.BackendMemory,
		AuthBackend:     config.BackendMemory,
		EventsFile:      filepath.Join(t.TempDir(), "events.yaml"),
		DashboardLimit:  100,
		ShutdownTimeout: time.Second,
	}
	app, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	templates := setupTestTemplates(t)
	router := newRouter(app, filepath.Join(templates, "*.html"), t.TempDir())
	return app, router
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName {
			return c
		}
	}
	return nil
}

func get(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// login signs in through the form and returns the session cookie.
func login(t *testing.T, router *gin.Engine, email, password string) *http.Cookie {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	return cookie
}

// TestHealthEndpoint tests the /health endpoint.
func TestHealthEndpoint(t *testing.T) {
	_, router := setupTestApp(t)

	w := get(router, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", strings.TrimSpace(w.Body.String()))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestMetricsEndpoint(t *testing.T) {
	_, router := setupTestApp(t)

	w := get(router, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

// Home and every support page send anonymous visitors to /login.
func TestMemberPages_AnonymousRedirectsToLogin(t *testing.T) {
	_, router := setupTestApp(t)

	paths := []string{"/"}
	for _, page := range widget.Pages() {
		paths = append(paths, page.Path())
	}
	for _, p := range paths {
		w := get(router, p, nil)
		assert.Equal(t, http.StatusFound, w.Code, p)
		assert.Equal(t, "/login", w.Header().Get("Location"), p)
	}

	assert.Equal(t, http.StatusOK, get(router, "/login", nil).Code)
	assert.Equal(t, http.StatusOK, get(router, "/signup", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/no-such-page", nil).Code)
}

// A signed-in student reaches home and every support page.
func TestMemberPages_SignedIn(t *testing.T) {
	app, router := setupTestApp(t)
	_, err := app.users.SignUp(context.Background(), "student@school.edu", "secret1")
	require.NoError(t, err)
	cookie := login(t, router, "student@school.edu", "secret1")

	assert.Equal(t, http.StatusOK, get(router, "/", cookie).Code)
	for _, page := range widget.Pages() {
		w := get(router, page.Path(), cookie)
		assert.Equal(t, http.StatusOK, w.Code, page.Path())
	}
}

// Credential posts are not throttled by the portal.
func TestLogin_NoThrottling(t *testing.T) {
	_, router := setupTestApp(t)

	form := url.Values{"email": {"nobody@school.edu"}, "password": {"wrong-pass"}}.Encode()
	for i := 0; i < 30; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.NotEqual(t, http.StatusTooManyRequests, w.Code, "attempt %d", i+1)
	}
}

// The widget loader is served, and every call site that waits on the
// bootstrap script handles a failed load.
func TestWidgetScript_HandlesLoadFailure(t *testing.T) {
	app, _ := setupTestApp(t)
	router := newRouter(app, filepath.Join(setupTestTemplates(t), "*.html"), filepath.Join(projectDir(), "static"))

	w := get(router, "/static/widget.js", nil)
	require.Equal(t, http.StatusOK, w.Code)

	script := w.Body.String()
	calls := strings.Count(script, "ensureLoaded().")
	require.Positive(t, calls)
	assert.Equal(t, calls, strings.Count(script, ".catch(function (err)"))
}

// A confirmed report posted to /api lands in the reports collection.
func TestWebhookEndpoint_PersistsReport(t *testing.T) {
	app, router := setupTestApp(t)

	body := `{"queryResult":{"queryText":"yes","intent":{"displayName":"report_bullying"},
		"parameters":{"name":"Asha","classSection":"9B","description":"pushed in hallway","confirmation":"yes"}}}`
	req, _ := http.NewRequest(http.MethodPost, "/api", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for speaking up")

	recs, err := app.store.Query(context.Background(), models.CollectionReports, store.Query{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "bullying", recs[0].Fields["type"])
	assert.Equal(t, "New", recs[0].Fields["status"])
}

func TestWebhookStatus(t *testing.T) {
	_, router := setupTestApp(t)

	w := get(router, "/api", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)
}

func TestAdminRoutes_Anonymous(t *testing.T) {
	_, router := setupTestApp(t)

	w := get(router, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = get(router, "/admin/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

// A promoted user signs in and reaches the admin API; a student does not.
func TestAdminRoutes_RoleGate(t *testing.T) {
	app, router := setupTestApp(t)
	ctx := context.Background()

	admin, err := app.users.SignUp(ctx, "admin@school.edu", "secret1")
	require.NoError(t, err)
	require.NoError(t, app.users.SetRole(ctx, admin.UID, models.RoleAdmin))
	_, err = app.users.SignUp(ctx, "student@school.edu", "secret1")
	require.NoError(t, err)

	adminCookie := login(t, router, "admin@school.edu", "secret1")
	w := get(router, "/admin/api/dashboard", adminCookie)
	assert.Equal(t, http.StatusOK, w.Code)

	studentCookie := login(t, router, "student@school.edu", "secret1")
	w = get(router, "/admin/api/dashboard", studentCookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(router, "/admin/dashboard", studentCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestOpenStore_DisabledWithoutCredentials(t *testing.T) {
	s := openStore(context.Background(), config.App{StoreBackend: config.BackendFirestore})

	d, ok := s.(store.Disabled)
	require.True(t, ok)
	assert.NotEmpty(t, d.Reason)
}

func TestSetRole_RefusesDisabledStore(t *testing.T) {
	cfg = config.App{StoreBackend: config.BackendFirestore}
	t.Cleanup(func() { cfg = config.App{} })

	err := setRole(context.Background(), "u1", models.RoleAdmin)
	assert.Error(t, err)
}
