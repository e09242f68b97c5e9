//go:build unit
// +build unit

package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mentora-hub/models"
)

func setupAdminTestRouter(resolver RoleResolver) *gin.Engine {
	router := newSessionRouter()
	admin := router.Group("/admin", AdminRequired(resolver))
	admin.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome, admin!")
	})
	admin.GET("/api/dashboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": CurrentRole(c)})
	})
	return router
}

func TestAdminRequired_Success(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveRole", mock.Anything, "admin-1").Return(models.RoleAdmin, nil)
	router := setupAdminTestRouter(resolver)
	cookie := signIn(t, router, "admin-1")

	w := serve(router, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code, "Admin should be allowed")
	assert.Contains(t, w.Body.String(), "Welcome, admin!")

	w = serve(router, "/admin/api/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"admin"}`, w.Body.String())
}

// the role is looked up on every request
func TestAdminRequired_DemotionTakesEffectImmediately(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveRole", mock.Anything, "u1").Return(models.RoleAdmin, nil).Once()
	resolver.On("ResolveRole", mock.Anything, "u1").Return(models.RoleStudent, nil).Once()
	router := setupAdminTestRouter(resolver)
	cookie := signIn(t, router, "u1")

	assert.Equal(t, http.StatusOK, serve(router, "/admin/dashboard", cookie).Code)

	w := serve(router, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	resolver.AssertExpectations(t)
}

func TestAdminRequired_StudentBlocked(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveRole", mock.Anything, "s1").Return(models.RoleStudent, nil)
	router := setupAdminTestRouter(resolver)
	cookie := signIn(t, router, "s1")

	w := serve(router, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = serve(router, "/admin/api/dashboard", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "Non-admin should be blocked")
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAdminRequired_MissingSession(t *testing.T) {
	resolver := new(MockResolver)
	router := setupAdminTestRouter(resolver)

	w := serve(router, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = serve(router, "/admin/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "Missing session should block access")
	resolver.AssertNotCalled(t, "ResolveRole", mock.Anything, mock.Anything)
}

func TestAdminRequired_LookupFailureShowsLoading(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveRole", mock.Anything, "u1").Return(models.Role(""), errors.New("unavailable"))
	router := setupAdminTestRouter(resolver)
	cookie := signIn(t, router, "u1")

	w := serve(router, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Checking your access")
	assert.NotContains(t, w.Body.String(), "Welcome, admin!")

	w = serve(router, "/admin/api/dashboard", cookie)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
