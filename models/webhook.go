// file: models/webhook.go
package models

// ---------------------- agent webhook wire types ----------------------

// WebhookRequest is the payload the agent platform POSTs for each matched intent.
type WebhookRequest struct {
	QueryResult QueryResult `json:"queryResult"`
}

// QueryResult carries the matched intent and its collected parameters.
type QueryResult struct {
	Intent          Intent                 `json:"intent"`
	Parameters      map[string]interface{} `json:"parameters"`
	QueryText       string                 `json:"queryText,omitempty"`
	FulfillmentText string                 `json:"fulfillmentText,omitempty"`
}

// Intent identifies the matched intent.
type Intent struct {
	DisplayName string `json:"displayName"`
}

// WebhookResponse is the fulfillment returned to the agent platform.
type WebhookResponse struct {
	FulfillmentMessages []FulfillmentMessage `json:"fulfillmentMessages"`
	FulfillmentText     string               `json:"fulfillmentText,omitempty"`
}

// FulfillmentMessage wraps one text reply.
type FulfillmentMessage struct {
	Text FulfillmentText `json:"text"`
}

// FulfillmentText holds the reply lines.
type FulfillmentText struct {
	Text []string `json:"text"`
}

// NewWebhookResponse builds a single-message fulfillment.
func NewWebhookResponse(message string) WebhookResponse {
	return WebhookResponse{
		FulfillmentMessages: []FulfillmentMessage{{Text: FulfillmentText{Text: []string{message}}}},
		FulfillmentText:     message,
	}
}

// Message returns the first reply line, or "" when there is none.
func (r WebhookResponse) Message() string {
	if len(r.FulfillmentMessages) == 0 || len(r.FulfillmentMessages[0].Text.Text) == 0 {
		return ""
	}
	return r.FulfillmentMessages[0].Text.Text[0]
}
