// Package services holds the portal's business logic: webhook dispatch,
// dashboard reads and moderation, accounts, exports and charts.
// File: services/webhook_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ettle/strcase"

	"mentora-hub/logger"
	"mentora-hub/metrics"
	"mentora-hub/models"
	"mentora-hub/store"
)

// intent kinds, used as a metrics label
const (
	KindRegistration = "registration"
	KindReport       = "report"
	KindUnknown      = "unknown"
)

// fixed replies
const (
	MsgAcknowledge    = "Request received. How else can I help you today?"
	MsgReportDeclined = "Please only use this reporting service for genuine concerns. Misuse of the reporting system may result in disciplinary action."
	MsgReportClarify  = "Please confirm whether you would like to submit this report by answering \"yes\" or \"no\"."
	MsgReportReceived = "Thank you for speaking up. Your report has been submitted and will be reviewed by school staff."
	MsgWebhookError   = "An error occurred while processing your request. Please try again."
)

// persistTimeout bounds the single write attempt a webhook call makes.
const persistTimeout = 5 * time.Second

// registration intents and the event each one signs up for
var registrationIntents = map[string]string{
	"register_CH":             "Coding Hackathon",
	"EventRegistrationIntent": "Coding Hackathon",
}

// report intents and the report type each one files
var reportIntents = map[string]models.ReportType{
	"report_bullying":      models.ReportBullying,
	"report_mental_health": models.ReportMentalHealth,
	"report_incident":      models.ReportIncident,
	"report_other":         models.ReportOther,
}

// WebhookService turns agent intents into stored records and a reply.
type WebhookService struct {
	store   store.Store
	metrics metrics.Recorder
}

// NewWebhookService creates the dispatcher.
func NewWebhookService(s store.Store, m metrics.Recorder) *WebhookService {
	if m == nil {
		m = metrics.Nop{}
	}
	return &WebhookService{store: s, metrics: m}
}

// Handle dispatches on the intent name. It never fails: write errors are
// logged and counted, and the reply is the same as on success.
func (w *WebhookService) Handle(ctx context.Context, req models.WebhookRequest) models.WebhookResponse {
	qr := req.QueryResult
	intent := qr.Intent.DisplayName
	params := normalizeParameters(qr.Parameters)

	if eventName, ok := registrationIntents[intent]; ok {
		return w.handleRegistration(ctx, intent, eventName, qr.QueryText, params)
	}
	if reportType, ok := reportIntents[intent]; ok {
		return w.handleReport(ctx, intent, reportType, qr.QueryText, params)
	}

	logger.Debug.Printf("[WebhookService.Handle] unrecognised intent %q, acknowledging", intent)
	w.metrics.WebhookRequest(KindUnknown, metrics.OutcomeOK)
	if qr.FulfillmentText != "" {
		return models.NewWebhookResponse(qr.FulfillmentText)
	}
	return models.NewWebhookResponse(MsgAcknowledge)
}

func (w *WebhookService) handleRegistration(ctx context.Context, intent, eventName, queryText string, params map[string]string) models.WebhookResponse {
	reg := models.Registration{
		EventName:        eventName,
		FullName:         paramOrDefault(params, "fullName"),
		Email:            paramOrDefault(params, "email"),
		ContactNumber:    paramOrDefault(params, "contactNumber"),
		ClassSection:     paramOrDefault(params, "classSection"),
		RollNumber:       paramOrDefault(params, "rollNumber"),
		CodingExperience: paramOrDefault(params, "codingExperience"),
		IntentName:       intent,
		OriginalQuery:    queryText,
	}
	logger.Info.Printf("[WebhookService] registration for %q from %s", eventName, reg.FullName)

	fields := reg.Fields()
	fields["timestamp"] = store.ServerTimestamp
	w.persist(ctx, models.CollectionRegistrations, fields, KindRegistration)

	return models.NewWebhookResponse(registrationReply(reg))
}

func (w *WebhookService) handleReport(ctx context.Context, intent string, reportType models.ReportType, queryText string, params map[string]string) models.WebhookResponse {
	switch params["confirmation"] {
	case "yes":
	case "no":
		logger.Info.Printf("[WebhookService] %s declined at confirmation", intent)
		w.metrics.WebhookRequest(KindReport, metrics.OutcomeRejected)
		return models.NewWebhookResponse(MsgReportDeclined)
	default:
		w.metrics.WebhookRequest(KindReport, metrics.OutcomeRejected)
		return models.NewWebhookResponse(MsgReportClarify)
	}

	report := models.Report{
		Type:          reportType,
		Name:          paramOrDefault(params, "name"),
		ClassSection:  paramOrDefault(params, "classSection"),
		Description:   paramOrDefault(params, "description"),
		Confirmation:  "yes",
		Status:        models.StatusNew,
		IntentName:    intent,
		OriginalQuery: queryText,
	}
	logger.Info.Printf("[WebhookService] confirmed %s report", reportType)

	fields := report.Fields()
	fields["timestamp"] = store.ServerTimestamp
	w.persist(ctx, models.CollectionReports, fields, KindReport)

	return models.NewWebhookResponse(MsgReportReceived)
}

// persist makes one write attempt that outlives a cancelled request.
func (w *WebhookService) persist(ctx context.Context, collection string, fields map[string]interface{}, kind string) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	id, err := w.store.Add(writeCtx, collection, fields)
	if err != nil {
		logger.Error.Printf("[WebhookService.persist] failed to save %s: %v", collection, err)
		w.metrics.PersistFailure(collection)
		w.metrics.WebhookRequest(kind, metrics.OutcomeFailed)
		return
	}
	logger.Info.Printf("[WebhookService.persist] saved %s/%s", collection, id)
	w.metrics.WebhookRequest(kind, metrics.OutcomeOK)
}

func registrationReply(reg models.Registration) string {
	details := []struct{ label, value string }{
		{"Full Name", reg.FullName},
		{"Email", reg.Email},
		{"Class & Section", reg.ClassSection},
		{"Roll Number", reg.RollNumber},
		{"Contact Number", reg.ContactNumber},
		{"Coding Experience", reg.CodingExperience},
	}

	complete := true
	var b strings.Builder
	for _, d := range details {
		if d.value == models.NotProvided {
			complete = false
		}
		fmt.Fprintf(&b, "\n- %s: %s", d.label, d.value)
	}

	if complete {
		return fmt.Sprintf("Thank you! We've received the following registration details for event: %s:%s\n\nWe will process your registration.",
			reg.EventName, b.String())
	}
	return fmt.Sprintf("It seems some details might be missing for your registration for %q. Please ensure all information is provided. We received:%s",
		reg.EventName, b.String())
}

func paramOrDefault(params map[string]string, key string) string {
	if v := params[key]; v != "" {
		return v
	}
	return models.NotProvided
}

// normalizeParameters converts keys like "full-name" or "Full Name" to
// lowerCamel and flattens values to trimmed strings.
func normalizeParameters(raw map[string]interface{}) map[string]string {
	out := make(map[string]string, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	// exact camelCase keys win over normalised duplicates
	sort.Slice(keys, func(i, j int) bool { return !hasSeparator(keys[i]) && hasSeparator(keys[j]) })

	for _, k := range keys {
		key := k
		if hasSeparator(k) {
			key = strcase.ToCamel(k)
		}
		if _, exists := out[key]; exists {
			continue
		}
		if v := stringify(raw[k]); v != "" {
			out[key] = v
		}
	}
	return out
}

func hasSeparator(k string) bool {
	return strings.ContainsAny(k, "-_ ")
}

// stringify renders agent parameter values: numbers without a trailing
// ".0", person entities by name, lists joined with commas.
func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case map[string]interface{}:
		if name, ok := x["name"]; ok {
			return stringify(name)
		}
		return ""
	case []interface{}:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
