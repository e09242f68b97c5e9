// file: services/catalogue_service.go
package services

import (
	"bytes"
	"html/template"
	"sort"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/teambition/rrule-go"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"mentora-hub/config"
	"mentora-hub/logger"
	"mentora-hub/models"
)

// EventCatalogue joins the static event file with stored registrations.
type EventCatalogue struct {
	entries []config.EventEntry
	md      goldmark.Markdown
	policy  *bluemonday.Policy
	now     func() time.Time
}

// NewEventCatalogue wraps a loaded catalogue. A nil catalogue is empty.
func NewEventCatalogue(cat *config.Catalogue) *EventCatalogue {
	c := &EventCatalogue{
		md:     goldmark.New(goldmark.WithExtensions(extension.Linkify)),
		policy: bluemonday.UGCPolicy(),
		now:    time.Now,
	}
	if cat != nil {
		c.entries = cat.Events
	}
	return c
}

// SetClock overrides the time used for next-occurrence calculation.
func (c *EventCatalogue) SetClock(now func() time.Time) {
	c.now = now
}

// Join groups registrations by event name. Catalogue events come first in
// file order, even with no sign-ups; other names follow alphabetically.
// Registrations without a name land under "General Event".
func (c *EventCatalogue) Join(regs []models.Registration) []models.Event {
	byName := make(map[string][]models.Registration)
	for _, r := range regs {
		name := r.EventName
		if name == "" {
			name = models.GeneralEvent
		}
		byName[name] = append(byName[name], r)
	}

	events := make([]models.Event, 0, len(c.entries)+len(byName))
	seen := make(map[string]bool, len(c.entries))
	for _, entry := range c.entries {
		seen[entry.Name] = true
		events = append(events, models.Event{
			Name:           entry.Name,
			Date:           entry.Date,
			Location:       entry.Location,
			Description:    c.describe(entry.Description),
			NextOccurrence: c.nextOccurrence(entry),
			Registrations:  nonNil(byName[entry.Name]),
			InCatalogue:    true,
		})
	}

	var extra []string
	for name := range byName {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		events = append(events, models.Event{Name: name, Registrations: byName[name]})
	}
	return events
}

// describe renders markdown and strips anything unsafe.
func (c *EventCatalogue) describe(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		logger.Warn.Printf("[EventCatalogue.describe] markdown conversion failed: %v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(c.policy.SanitizeBytes(buf.Bytes()))
}

// nextOccurrence expands the recurrence rule from the event date. It is nil
// for one-off events and for rules with no remaining dates.
func (c *EventCatalogue) nextOccurrence(entry config.EventEntry) *time.Time {
	if entry.Recurrence == "" {
		return nil
	}
	rule, err := rrule.StrToRRule(entry.Recurrence)
	if err != nil {
		logger.Warn.Printf("[EventCatalogue] bad recurrence for %q: %v", entry.Name, err)
		return nil
	}
	if entry.Date != "" {
		if start, err := time.Parse("2006-01-02", entry.Date); err == nil {
			rule.DTStart(start)
		}
	}
	next := rule.After(c.now(), true)
	if next.IsZero() {
		return nil
	}
	return &next
}

func nonNil(regs []models.Registration) []models.Registration {
	if regs == nil {
		return []models.Registration{}
	}
	return regs
}
