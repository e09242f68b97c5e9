// controllers/webhook_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mentora-hub/models"
	"mentora-hub/services"
)

func setupWebhookRouter(t *testing.T, svc services.WebhookServiceInterface) *gin.Engine {
	router := setupTestRouter(t)
	wc := NewWebhookController(svc)
	api := router.Group("/api", WebhookRecovery())
	api.GET("", wc.Status)
	api.POST("", wc.Handle)
	return router
}

func decodeReply(t *testing.T, body []byte) models.WebhookResponse {
	t.Helper()
	var resp models.WebhookResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestWebhookHandle_PassesRequestToService(t *testing.T) {
	svc := new(MockWebhookService)
	svc.On("Handle", mock.Anything, mock.MatchedBy(func(req models.WebhookRequest) bool {
		return req.QueryResult.Intent.DisplayName == "report_other" &&
			req.QueryResult.Parameters["confirmation"] == "no"
	})).Return(models.NewWebhookResponse(services.MsgReportDeclined))

	router := setupWebhookRouter(t, svc)
	body := `{"queryResult":{"intent":{"displayName":"report_other"},"parameters":{"confirmation":"no"}}}`
	w := perform(router, http.MethodPost, "/api", "application/json", body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.MsgReportDeclined, decodeReply(t, w.Body.Bytes()).Message())
	svc.AssertExpectations(t)
}

// A body that does not decode gets the generic reply in the normal message shape.
func TestWebhookHandle_MalformedBody(t *testing.T) {
	svc := new(MockWebhookService)
	router := setupWebhookRouter(t, svc)

	w := perform(router, http.MethodPost, "/api", "application/json", `{"queryResult":`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, services.MsgWebhookError, decodeReply(t, w.Body.Bytes()).Message())
	svc.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestWebhookHandle_PanicRecovered(t *testing.T) {
	svc := new(MockWebhookService)
	svc.On("Handle", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("boom")
	})
	router := setupWebhookRouter(t, svc)

	w := perform(router, http.MethodPost, "/api", "application/json", `{"queryResult":{"intent":{"displayName":"x"}}}`, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, services.MsgWebhookError, decodeReply(t, w.Body.Bytes()).Message())
}

func TestWebhookStatus(t *testing.T) {
	router := setupWebhookRouter(t, new(MockWebhookService))

	w := perform(router, http.MethodGet, "/api", "", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Mentora Hub webhook is running", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}
