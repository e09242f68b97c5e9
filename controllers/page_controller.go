// Package controllers file: controllers/page_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"mentora-hub/logger"
	"mentora-hub/middleware"
	"mentora-hub/models"
	"mentora-hub/services"
	"mentora-hub/widget"
)

const (
	defaultQRSize = 300
	maxQRSize     = 1024
)

// PageController renders the public pages.
type PageController struct {
	ApplicationURL string
	QREncoder      services.QRCodeEncoder
}

// NewPageController creates the page handlers. appURL is the public base
// URL printed into QR codes.
func NewPageController(appURL string) *PageController {
	return &PageController{ApplicationURL: strings.TrimRight(appURL, "/")}
}

// Health is the liveness probe.
func (pc *PageController) Health(c *gin.Context) {
	logger.Debug.Println("[Health] Health check requested")
	c.String(http.StatusOK, "OK")
}

// Home lists the support pages.
func (pc *PageController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pc.baseData(c, gin.H{
		"Pages": widget.Pages(),
	}))
}

// SupportPage renders one widget page. ?open=1 expands the chat on load.
func (pc *PageController) SupportPage(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, ok := widget.Lookup(slug)
		if !ok {
			c.HTML(http.StatusNotFound, "404.html", pc.baseData(c, nil))
			return
		}

		view, err := widget.Render(c.Request.Context(), cfg, c.Query("open") == "1")
		if err != nil {
			logger.Error.Printf("[SupportPage] %s: widget failed to load: %v", slug, err)
			c.HTML(http.StatusServiceUnavailable, "support.html", pc.baseData(c, gin.H{
				"Page":  cfg,
				"Error": "The chat assistant is unavailable right now. Please try again shortly.",
			}))
			return
		}

		logger.Info.Printf("[SupportPage] rendering %s (open=%v)", slug, view.Widget.Expanded)
		c.HTML(http.StatusOK, "support.html", pc.baseData(c, gin.H{
			"Page":    view.Page,
			"Scripts": view.Scripts,
			"Widget":  view.Widget,
		}))
	}
}

// GetQRCode returns a PNG QR code linking to a support page.
func (pc *PageController) GetQRCode(c *gin.Context) {
	slug := c.Param("slug")
	cfg, ok := widget.Lookup(slug)
	if !ok {
		c.String(http.StatusNotFound, "Unknown page")
		return
	}

	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n > maxQRSize {
			c.String(http.StatusBadRequest, fmt.Sprintf("size must be a number up to %d", maxQRSize))
			return
		}
		size = n
	}

	png, err := services.GeneratePageQRCode(pc.ApplicationURL+cfg.Path(), size, pc.QREncoder)
	if err != nil {
		logger.Error.Printf("[GetQRCode] Error generating QR code for %s: %v", slug, err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", slug+".png"))
	c.Data(http.StatusOK, "image/png", png)
}

// NotFound renders the 404 page.
func (pc *PageController) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", pc.baseData(c, nil))
}

// baseData adds what the shared layout needs: sign-in state and role.
func (pc *PageController) baseData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	session := sessions.Default(c)
	data["User"] = session.Get(middleware.SessionEmail)
	data["IsAdmin"] = middleware.CurrentRole(c) == models.RoleAdmin
	return data
}
