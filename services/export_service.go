// file: services/export_service.go
package services

import (
	"encoding/csv"
	"io"
	"time"

	"mentora-hub/models"
)

var reportColumns = []string{"id", "timestamp", "type", "status", "name", "classSection", "description", "intentName"}

var registrationColumns = []string{"id", "timestamp", "eventName", "fullName", "email", "contactNumber", "classSection", "rollNumber", "codingExperience"}

// WriteReportsCSV writes one row per report with a header.
func WriteReportsCSV(w io.Writer, reports []models.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportColumns); err != nil {
		return err
	}
	for _, r := range reports {
		row := []string{r.ID, csvTime(r.Timestamp), string(r.Type), string(r.Status), r.Name, r.ClassSection, r.Description, r.IntentName}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRegistrationsCSV writes one row per registration with a header.
func WriteRegistrationsCSV(w io.Writer, regs []models.Registration) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(registrationColumns); err != nil {
		return err
	}
	for _, r := range regs {
		row := []string{r.ID, csvTime(r.Timestamp), r.EventName, r.FullName, r.Email, r.ContactNumber, r.ClassSection, r.RollNumber, r.CodingExperience}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
