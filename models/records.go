// Package models defines data structures used across the application.
// File: models/records.go
package models

import (
	"fmt"
	"time"
)

// collection names in the document store
const (
	CollectionRegistrations = "registrations"
	CollectionReports       = "reports"
	CollectionUsers         = "users"
)

// NotProvided fills any registration field the agent did not collect.
const NotProvided = "Not provided"

// GeneralEvent groups registrations that carry no event name.
const GeneralEvent = "General Event"

// ----------------------- report enums -----------------------

// ReportType classifies a submitted report.
type ReportType string

const (
	ReportBullying     ReportType = "bullying"
	ReportMentalHealth ReportType = "mental_health"
	ReportIncident     ReportType = "incident"
	ReportOther        ReportType = "other"
)

// ReportTypes lists every report type in dashboard order.
var ReportTypes = []ReportType{ReportBullying, ReportMentalHealth, ReportIncident, ReportOther}

// Label is the heading shown on the dashboard.
func (t ReportType) Label() string {
	switch t {
	case ReportBullying:
		return "Bullying Reports"
	case ReportMentalHealth:
		return "Mental Health Reports"
	case ReportIncident:
		return "Incident Reports"
	case ReportOther:
		return "Other Reports"
	default:
		return string(t)
	}
}

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	for _, known := range ReportTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ReportStatus is the moderation state of a report.
type ReportStatus string

const (
	StatusNew      ReportStatus = "New"
	StatusReviewed ReportStatus = "Reviewed"
)

// Valid reports whether s is New or Reviewed.
func (s ReportStatus) Valid() bool {
	return s == StatusNew || s == StatusReviewed
}

// Toggle flips New and Reviewed.
func (s ReportStatus) Toggle() ReportStatus {
	if s == StatusReviewed {
		return StatusNew
	}
	return StatusReviewed
}

// Role is a user's authorization role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ------------------------ records -----------------------

// Registration is an event sign-up captured by the agent.
type Registration struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	EventName        string    `json:"eventName"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	ContactNumber    string    `json:"contactNumber"`
	ClassSection     string    `json:"classSection"`
	RollNumber       string    `json:"rollNumber"`
	CodingExperience string    `json:"codingExperience"`
	IntentName       string    `json:"intentName,omitempty"`
	OriginalQuery    string    `json:"originalQuery,omitempty"`
}

// Fields returns the document body without id or timestamp.
func (r Registration) Fields() map[string]interface{} {
	return map[string]interface{}{
		"eventName":        r.EventName,
		"fullName":         r.FullName,
		"email":            r.Email,
		"contactNumber":    r.ContactNumber,
		"classSection":     r.ClassSection,
		"rollNumber":       r.RollNumber,
		"codingExperience": r.CodingExperience,
		"intentName":       r.IntentName,
		"originalQuery":    r.OriginalQuery,
	}
}

// RegistrationFromFields rebuilds a registration from a stored document.
func RegistrationFromFields(id string, f map[string]interface{}) Registration {
	return Registration{
		ID:               id,
		Timestamp:        timeField(f, "timestamp"),
		EventName:        stringField(f, "eventName"),
		FullName:         stringField(f, "fullName"),
		Email:            stringField(f, "email"),
		ContactNumber:    stringField(f, "contactNumber"),
		ClassSection:     stringField(f, "classSection"),
		RollNumber:       stringField(f, "rollNumber"),
		CodingExperience: stringField(f, "codingExperience"),
		IntentName:       stringField(f, "intentName"),
		OriginalQuery:    stringField(f, "originalQuery"),
	}
}

// Report is a confirmed incident report.
type Report struct {
	ID            string       `json:"id"`
	Timestamp     time.Time    `json:"timestamp"`
	Type          ReportType   `json:"type"`
	Name          string       `json:"name"`
	ClassSection  string       `json:"classSection"`
	Description   string       `json:"description"`
	Confirmation  string       `json:"confirmation"`
	Status        ReportStatus `json:"status"`
	IntentName    string       `json:"intentName,omitempty"`
	OriginalQuery string       `json:"originalQuery,omitempty"`
}

// Fields returns the document body without id or timestamp.
func (r Report) Fields() map[string]interface{} {
	return map[string]interface{}{
		"type":          string(r.Type),
		"name":          r.Name,
		"classSection":  r.ClassSection,
		"description":   r.Description,
		"confirmation":  r.Confirmation,
		"status":        string(r.Status),
		"intentName":    r.IntentName,
		"originalQuery": r.OriginalQuery,
	}
}

// ReportFromFields rebuilds a report from a stored document. Reports stored
// before moderation existed have no status and read as New.
func ReportFromFields(id string, f map[string]interface{}) Report {
	status := ReportStatus(stringField(f, "status"))
	if !status.Valid() {
		status = StatusNew
	}
	return Report{
		ID:            id,
		Timestamp:     timeField(f, "timestamp"),
		Type:          ReportType(stringField(f, "type")),
		Name:          stringField(f, "name"),
		ClassSection:  stringField(f, "classSection"),
		Description:   stringField(f, "description"),
		Confirmation:  stringField(f, "confirmation"),
		Status:        status,
		IntentName:    stringField(f, "intentName"),
		OriginalQuery: stringField(f, "originalQuery"),
	}
}

// User is a portal account and its role.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Fields returns the users/{uid} document body.
func (u User) Fields() map[string]interface{} {
	return map[string]interface{}{
		"uid":   u.UID,
		"email": u.Email,
		"role":  string(u.Role),
	}
}

// UserFromFields rebuilds a user; a missing role means student.
func UserFromFields(id string, f map[string]interface{}) User {
	u := User{
		UID:   stringField(f, "uid"),
		Email: stringField(f, "email"),
		Role:  Role(stringField(f, "role")),
	}
	if u.UID == "" {
		u.UID = id
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	return u
}

func stringField(f map[string]interface{}, key string) string {
	switch v := f[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func timeField(f map[string]interface{}, key string) time.Time {
	if t, ok := f[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}
