//go:build unit
// +build unit

package controllers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mentora-hub/models"
	"mentora-hub/services"
)

var (
	_ services.WebhookServiceInterface   = (*MockWebhookService)(nil)
	_ services.UserServiceInterface      = (*MockUserService)(nil)
	_ services.DashboardServiceInterface = (*MockDashboardService)(nil)
)

// MockWebhookService implements the WebhookServiceInterface for testing.
type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) Handle(ctx context.Context, req models.WebhookRequest) models.WebhookResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(models.WebhookResponse)
}

// MockUserService implements the UserServiceInterface for testing.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SignUp(ctx context.Context, email, password string) (models.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) SignIn(ctx context.Context, email, password string) (models.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) ResolveRole(ctx context.Context, uid string) (models.Role, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(models.Role), args.Error(1)
}

func (m *MockUserService) SendPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockDashboardService implements the DashboardServiceInterface for testing.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Snapshot(ctx context.Context) (services.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.Snapshot), args.Error(1)
}

func (m *MockDashboardService) Reports(ctx context.Context, reportType models.ReportType, query string) ([]models.Report, error) {
	args := m.Called(ctx, reportType, query)
	reports, _ := args.Get(0).([]models.Report)
	return reports, args.Error(1)
}

func (m *MockDashboardService) Registrations(ctx context.Context, eventName, query string) ([]models.Registration, error) {
	args := m.Called(ctx, eventName, query)
	regs, _ := args.Get(0).([]models.Registration)
	return regs, args.Error(1)
}

func (m *MockDashboardService) SetReportStatus(ctx context.Context, id string, status models.ReportStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockDashboardService) DeleteReport(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDashboardService) DeleteRegistration(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDashboardService) DemoteAdmin(ctx context.Context, actorUID, targetUID string) error {
	return m.Called(ctx, actorUID, targetUID).Error(0)
}
