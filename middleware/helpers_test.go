// file: middleware/helpers_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mentora-hub/logger"
	"mentora-hub/models"
)

func init() {
	logger.InitNop()
}

// MockResolver is a testify mock of RoleResolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveRole(ctx context.Context, uid string) (models.Role, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(models.Role), args.Error(1)
}

// newSessionRouter returns a router with a cookie session and a
// /login-test route that signs in as uid.
func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	router.GET("/login-test", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionUID, c.Query("uid"))
		session.Set(SessionEmail, c.Query("uid")+"@school.edu")
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "Failed to save session")
			return
		}
		c.String(http.StatusOK, "Session set")
	})
	return router
}

// signIn hits /login-test and returns the session cookie.
func signIn(t *testing.T, router *gin.Engine, uid string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/login-test?uid="+uid, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "testsession" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func serve(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)
	return w
}

func serveMethod(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}
