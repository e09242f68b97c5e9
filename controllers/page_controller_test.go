// controllers/page_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"

	"mentora-hub/widget"
)

func setupPageRouter(t *testing.T, pc *PageController) *gin.Engine {
	router := setupTestRouter(t)
	router.GET("/health", pc.Health)
	router.GET("/", pc.Home)
	for _, page := range widget.Pages() {
		router.GET(page.Path(), pc.SupportPage(page.Slug))
	}
	router.GET("/missing", pc.SupportPage("missing"))
	router.GET("/qrcode/:slug", pc.GetQRCode)
	router.NoRoute(pc.NotFound)
	return router
}

func TestHealth(t *testing.T) {
	router := setupPageRouter(t, NewPageController("http://localhost:8080"))

	w := perform(router, http.MethodGet, "/health", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHome_ListsSupportPages(t *testing.T) {
	router := setupPageRouter(t, NewPageController("http://localhost:8080"))

	w := perform(router, http.MethodGet, "/", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	for _, page := range widget.Pages() {
		assert.Contains(t, w.Body.String(), page.Slug)
	}
}

func TestSupportPage_RendersWidget(t *testing.T) {
	router := setupPageRouter(t, NewPageController("http://localhost:8080"))
	cfg, ok := widget.Lookup("mental-health")
	assert.True(t, ok)

	w := perform(router, http.MethodGet, "/mental-health", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), cfg.PageTitle)
	assert.Contains(t, w.Body.String(), "agent="+cfg.AgentID)
	assert.Contains(t, w.Body.String(), "expanded=false")
}

func TestSupportPage_OpenParamExpandsChat(t *testing.T) {
	router := setupPageRouter(t, NewPageController("http://localhost:8080"))

	w := perform(router, http.MethodGet, "/bullying-help?open=1", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "expanded=true")
}

func TestSupportPage_UnknownSlug(t *testing.T) {
	router := setupPageRouter(t, NewPageController("http://localhost:8080"))

	w := perform(router, http.MethodGet, "/missing", "", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotFound(t *testing.T) {
	router := setupPageRouter(t, NewPageController("http://localhost:8080"))

	w := perform(router, http.MethodGet, "/nowhere", "", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestGetQRCode(t *testing.T) {
	var gotURL string
	var gotSize int
	pc := NewPageController("https://hub.example.edu/")
	pc.QREncoder = func(content string, _ qrcode.RecoveryLevel, size int) ([]byte, error) {
		gotURL, gotSize = content, size
		return []byte("png"), nil
	}
	router := setupPageRouter(t, pc)

	w := perform(router, http.MethodGet, "/qrcode/activities?size=512", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "https://hub.example.edu/activities", gotURL)
	assert.Equal(t, 512, gotSize)
}

func TestGetQRCode_DefaultSize(t *testing.T) {
	var gotSize int
	pc := NewPageController("http://localhost:8080")
	pc.QREncoder = func(_ string, _ qrcode.RecoveryLevel, size int) ([]byte, error) {
		gotSize = size
		return []byte("png"), nil
	}
	router := setupPageRouter(t, pc)

	w := perform(router, http.MethodGet, "/qrcode/homework-help", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultQRSize, gotSize)
}

func TestGetQRCode_BadInput(t *testing.T) {
	pc := NewPageController("http://localhost:8080")
	pc.QREncoder = func(string, qrcode.RecoveryLevel, int) ([]byte, error) {
		return nil, errors.New("should not be called")
	}
	router := setupPageRouter(t, pc)

	tests := []struct {
		path string
		code int
	}{
		{"/qrcode/unknown", http.StatusNotFound},
		{"/qrcode/activities?size=abc", http.StatusBadRequest},
		{"/qrcode/activities?size=5000", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w := perform(router, http.MethodGet, tt.path, "", "", nil)
		assert.Equal(t, tt.code, w.Code, tt.path)
	}
}
