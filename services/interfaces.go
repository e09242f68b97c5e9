// file: services/interfaces.go
package services

import (
	"context"

	"mentora-hub/models"
)

// WebhookServiceInterface is what the webhook controller needs.
type WebhookServiceInterface interface {
	Handle(ctx context.Context, req models.WebhookRequest) models.WebhookResponse
}

// UserServiceInterface covers sign-in, sign-up, roles and password resets.
type UserServiceInterface interface {
	SignUp(ctx context.Context, email, password string) (models.User, error)
	SignIn(ctx context.Context, email, password string) (models.User, error)
	ResolveRole(ctx context.Context, uid string) (models.Role, error)
	SendPasswordReset(ctx context.Context, email string) error
}

// DashboardServiceInterface covers admin reads and moderation.
type DashboardServiceInterface interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Reports(ctx context.Context, reportType models.ReportType, query string) ([]models.Report, error)
	Registrations(ctx context.Context, eventName, query string) ([]models.Registration, error)
	SetReportStatus(ctx context.Context, id string, status models.ReportStatus) error
	DeleteReport(ctx context.Context, id string) error
	DeleteRegistration(ctx context.Context, id string) error
	DemoteAdmin(ctx context.Context, actorUID, targetUID string) error
}

var (
	_ WebhookServiceInterface   = (*WebhookService)(nil)
	_ UserServiceInterface      = (*UserService)(nil)
	_ DashboardServiceInterface = (*DashboardService)(nil)
)
