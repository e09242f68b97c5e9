// Package controllers holds the gin handlers for the webhook, pages, sign-in and the admin dashboard.
// File: controllers/webhook_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mentora-hub/logger"
	"mentora-hub/models"
	"mentora-hub/services"
)

// WebhookController receives fulfillment calls from the agent platform.
type WebhookController struct {
	Service services.WebhookServiceInterface
}

// NewWebhookController creates the webhook handler.
func NewWebhookController(svc services.WebhookServiceInterface) *WebhookController {
	return &WebhookController{Service: svc}
}

// Handle answers POST /api. A body that cannot be decoded gets the generic
// error reply with a 500, in the same message shape.
func (wc *WebhookController) Handle(c *gin.Context) {
	var req models.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("[WebhookController.Handle] invalid request body: %v", err)
		c.JSON(http.StatusInternalServerError, models.NewWebhookResponse(services.MsgWebhookError))
		return
	}

	logger.Info.Printf("[WebhookController.Handle] intent=%q", req.QueryResult.Intent.DisplayName)
	resp := wc.Service.Handle(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}

// Status answers GET /api so the endpoint can be checked from a browser.
func (wc *WebhookController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Mentora Hub webhook is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    "OK",
	})
}

// WebhookRecovery turns a panic inside the webhook into the generic reply.
func WebhookRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error.Printf("[WebhookRecovery] panic while handling %s: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewWebhookResponse(services.MsgWebhookError))
	})
}
