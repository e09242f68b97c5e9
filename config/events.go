// file: config/events.go
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// EventEntry is one event in the catalogue file.
type EventEntry struct {
	Name        string `yaml:"name" validate:"required"`
	Date        string `yaml:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Location    string `yaml:"location,omitempty"`
	Description string `yaml:"description,omitempty"`
	Recurrence  string `yaml:"recurrence,omitempty"`
}

// Catalogue is the static event metadata joined with registrations on the dashboard.
type Catalogue struct {
	Events []EventEntry `yaml:"events" validate:"dive"`
}

// LoadCatalogue reads the event catalogue. A missing file yields an empty catalogue.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Catalogue{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue decodes and validates catalogue YAML.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var cat Catalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse events file: %w", err)
	}
	if err := ValidateCatalogue(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// ValidateCatalogue checks struct tags, duplicate names and recurrence rule syntax.
func ValidateCatalogue(cat *Catalogue) error {
	if err := validate.Struct(cat); err != nil {
		return fmt.Errorf("events validation failed: %w", err)
	}

	seen := make(map[string]bool, len(cat.Events))
	for i, ev := range cat.Events {
		if seen[ev.Name] {
			return fmt.Errorf("duplicate event name %q in events[%d]", ev.Name, i)
		}
		seen[ev.Name] = true

		if ev.Recurrence == "" {
			continue
		}
		if _, err := rrule.StrToRRule(ev.Recurrence); err != nil {
			return fmt.Errorf("invalid recurrence in events[%d]: %w", i, err)
		}
	}
	return nil
}
