// file: services/dashboard_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mentora-hub/logger"
	"mentora-hub/metrics"
	"mentora-hub/models"
	"mentora-hub/store"
)

var (
	ErrInvalidStatus     = errors.New("status must be New or Reviewed")
	ErrUnknownReportType = errors.New("unknown report type")
)

// DefaultDashboardLimit caps each collection read when none is configured.
const DefaultDashboardLimit = 100

// ReportGroup is one report type with its newest-first reports.
type ReportGroup struct {
	Type     models.ReportType `json:"type"`
	Label    string            `json:"label"`
	Reports  []models.Report   `json:"reports"`
	NewCount int               `json:"newCount"`
}

// Totals summarise the snapshot.
type Totals struct {
	Reports       int `json:"reports"`
	NewReports    int `json:"newReports"`
	Registrations int `json:"registrations"`
	Events        int `json:"events"`
}

// Snapshot is everything the admin dashboard shows on one load.
type Snapshot struct {
	ReportGroups []ReportGroup  `json:"reportGroups"`
	Events       []models.Event `json:"events"`
	Admins       []models.User  `json:"admins"`
	Totals       Totals         `json:"totals"`
}

// DashboardService reads and moderates stored reports and registrations.
type DashboardService struct {
	store     store.Store
	catalogue *EventCatalogue
	users     *UserService
	metrics   metrics.Recorder
	limit     int
}

// NewDashboardService wires the dashboard reads. limit <= 0 uses the default.
func NewDashboardService(s store.Store, catalogue *EventCatalogue, users *UserService, m metrics.Recorder, limit int) *DashboardService {
	if limit <= 0 {
		limit = DefaultDashboardLimit
	}
	if m == nil {
		m = metrics.Nop{}
	}
	if catalogue == nil {
		catalogue = NewEventCatalogue(nil)
	}
	return &DashboardService{store: s, catalogue: catalogue, users: users, metrics: m, limit: limit}
}

// Snapshot loads reports, registrations and admins.
func (d *DashboardService) Snapshot(ctx context.Context) (Snapshot, error) {
	reports, err := d.reports(ctx, "")
	if err != nil {
		return Snapshot{}, err
	}
	regs, err := d.registrations(ctx, store.Query{OrderBy: "timestamp", Descending: true, Limit: d.limit})
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		ReportGroups: groupReports(reports),
		Events:       d.catalogue.Join(regs),
	}
	if d.users != nil {
		admins, err := d.users.Admins(ctx)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Admins = admins
	}

	snap.Totals.Reports = len(reports)
	snap.Totals.Registrations = len(regs)
	snap.Totals.Events = len(snap.Events)
	for _, g := range snap.ReportGroups {
		snap.Totals.NewReports += g.NewCount
	}
	logger.Debug.Printf("[DashboardService.Snapshot] %d reports, %d registrations", len(reports), len(regs))
	return snap, nil
}

// Reports returns newest-first reports, optionally of one type, whose
// name, class or description contains query.
func (d *DashboardService) Reports(ctx context.Context, reportType models.ReportType, query string) ([]models.Report, error) {
	if reportType != "" && !reportType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReportType, reportType)
	}
	reports, err := d.reports(ctx, reportType)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return reports, nil
	}
	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if containsFold(query, r.Name, r.ClassSection, r.Description) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Registrations returns every sign-up for one event, newest first, filtered
// by query over name, email, class and roll number. It is not capped by the
// dashboard limit so the event page and its export are complete.
func (d *DashboardService) Registrations(ctx context.Context, eventName, query string) ([]models.Registration, error) {
	q := store.Query{OrderBy: "timestamp", Descending: true}
	if eventName != models.GeneralEvent {
		q.Where = []store.Filter{{Field: "eventName", Value: eventName}}
	}
	regs, err := d.registrations(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]models.Registration, 0, len(regs))
	for _, r := range regs {
		// unnamed registrations are listed under the general event
		if eventName == models.GeneralEvent && r.EventName != "" && r.EventName != models.GeneralEvent {
			continue
		}
		if query != "" && !containsFold(query, r.FullName, r.Email, r.ClassSection, r.RollNumber) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// SetReportStatus marks a report New or Reviewed.
func (d *DashboardService) SetReportStatus(ctx context.Context, id string, status models.ReportStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	err := d.store.Update(ctx, models.CollectionReports, id, map[string]interface{}{"status": string(status)})
	d.record("set_status", err)
	if err != nil {
		return fmt.Errorf("failed to update report %s: %w", id, err)
	}
	return nil
}

// DeleteReport removes a report.
func (d *DashboardService) DeleteReport(ctx context.Context, id string) error {
	err := d.store.Delete(ctx, models.CollectionReports, id)
	d.record("delete_report", err)
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	return nil
}

// DeleteRegistration removes a registration.
func (d *DashboardService) DeleteRegistration(ctx context.Context, id string) error {
	err := d.store.Delete(ctx, models.CollectionRegistrations, id)
	d.record("delete_registration", err)
	if err != nil {
		return fmt.Errorf("failed to delete registration %s: %w", id, err)
	}
	return nil
}

// DemoteAdmin returns another admin to the student role.
func (d *DashboardService) DemoteAdmin(ctx context.Context, actorUID, targetUID string) error {
	if d.users == nil {
		return errors.New("user service is not configured")
	}
	err := d.users.Demote(ctx, actorUID, targetUID)
	d.record("demote", err)
	return err
}

func (d *DashboardService) record(action string, err error) {
	if err != nil {
		logger.Error.Printf("[DashboardService] %s failed: %v", action, err)
		d.metrics.ModerationAction(action, metrics.OutcomeFailed)
		return
	}
	logger.Info.Printf("[DashboardService] %s ok", action)
	d.metrics.ModerationAction(action, metrics.OutcomeOK)
}

func (d *DashboardService) reports(ctx context.Context, reportType models.ReportType) ([]models.Report, error) {
	q := store.Query{OrderBy: "timestamp", Descending: true, Limit: d.limit}
	if reportType != "" {
		q.Where = []store.Filter{{Field: "type", Value: string(reportType)}}
	}
	recs, err := d.store.Query(ctx, models.CollectionReports, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	out := make([]models.Report, 0, len(recs))
	for _, r := range recs {
		out = append(out, models.ReportFromFields(r.ID, r.Fields))
	}
	return out, nil
}

func (d *DashboardService) registrations(ctx context.Context, q store.Query) ([]models.Registration, error) {
	recs, err := d.store.Query(ctx, models.CollectionRegistrations, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}
	out := make([]models.Registration, 0, len(recs))
	for _, r := range recs {
		out = append(out, models.RegistrationFromFields(r.ID, r.Fields))
	}
	return out, nil
}

// groupReports buckets reports by type in dashboard order. Reports with an
// unrecognised type go under "other".
func groupReports(reports []models.Report) []ReportGroup {
	groups := make([]ReportGroup, len(models.ReportTypes))
	index := make(map[models.ReportType]int, len(models.ReportTypes))
	for i, t := range models.ReportTypes {
		groups[i] = ReportGroup{Type: t, Label: t.Label(), Reports: []models.Report{}}
		index[t] = i
	}
	for _, r := range reports {
		i, ok := index[r.Type]
		if !ok {
			i = index[models.ReportOther]
		}
		groups[i].Reports = append(groups[i].Reports, r)
		if r.Status == models.StatusNew {
			groups[i].NewCount++
		}
	}
	return groups
}

func containsFold(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
