// file: models/event.go
package models

import (
	"html/template"
	"time"
)

// Event joins catalogue metadata with the registrations sharing its name.
type Event struct {
	Name           string         `json:"name"`
	Date           string         `json:"date,omitempty"`
	Location       string         `json:"location,omitempty"`
	Description    template.HTML  `json:"description,omitempty"`
	NextOccurrence *time.Time     `json:"nextOccurrence,omitempty"`
	Registrations  []Registration `json:"registrations"`
	InCatalogue    bool           `json:"inCatalogue"`
}

// Count is the number of registrations for the event.
func (e Event) Count() int {
	return len(e.Registrations)
}
