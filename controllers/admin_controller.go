// Package controllers provides HTTP handlers for the admin dashboard.
// File: controllers/admin_controller.go
package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ettle/strcase"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"mentora-hub/logger"
	"mentora-hub/middleware"
	"mentora-hub/models"
	"mentora-hub/services"
	"mentora-hub/store"
)

// ---------------- Admin Controller ----------------

// AdminController serves the dashboard and its moderation actions. Every
// route sits behind middleware.AdminRequired.
type AdminController struct {
	Dashboard services.DashboardServiceInterface
	Users     services.UserServiceInterface
}

// NewAdminController initializes a new instance of AdminController
func NewAdminController(dashboard services.DashboardServiceInterface, users services.UserServiceInterface) *AdminController {
	return &AdminController{Dashboard: dashboard, Users: users}
}

// result is the toast payload returned by every moderation action.
type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, ok bool, msg string) {
	c.JSON(status, result{Success: ok, Message: msg})
}

// ---------------- dashboard reads ----------------

// DashboardPage renders the overview.
func (ac *AdminController) DashboardPage(c *gin.Context) {
	snap, err := ac.Dashboard.Snapshot(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[DashboardPage] %v", err)
		c.HTML(http.StatusServiceUnavailable, "admin_dashboard.html", gin.H{"Error": "Could not load dashboard data."})
		return
	}
	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"Snapshot": snap,
		"User":     sessions.Default(c).Get(middleware.SessionEmail),
		"UID":      c.GetString(middleware.ContextUID),
	})
}

// DashboardJSON returns the snapshot for client-side refreshes.
func (ac *AdminController) DashboardJSON(c *gin.Context) {
	snap, err := ac.Dashboard.Snapshot(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[DashboardJSON] %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not load dashboard data"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Reports lists reports filtered by ?type= and searched by ?q=.
func (ac *AdminController) Reports(c *gin.Context) {
	reports, err := ac.Dashboard.Reports(c.Request.Context(), models.ReportType(c.Query("type")), c.Query("q"))
	if errors.Is(err, services.ErrUnknownReportType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logger.Error.Printf("[Reports] %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not load reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// EventRegistrations lists one event's sign-ups, searched by ?q=.
func (ac *AdminController) EventRegistrations(c *gin.Context) {
	eventName := c.Param("eventName")
	regs, err := ac.Dashboard.Registrations(c.Request.Context(), eventName, c.Query("q"))
	if err != nil {
		logger.Error.Printf("[EventRegistrations] %s: %v", eventName, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not load registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"eventName": eventName, "registrations": regs})
}

// EventPage renders the registration table for one event.
func (ac *AdminController) EventPage(c *gin.Context) {
	eventName := c.Param("eventName")
	regs, err := ac.Dashboard.Registrations(c.Request.Context(), eventName, c.Query("q"))
	if err != nil {
		logger.Error.Printf("[EventPage] %s: %v", eventName, err)
		c.HTML(http.StatusServiceUnavailable, "admin_event.html", gin.H{"EventName": eventName, "Error": "Could not load registrations."})
		return
	}
	c.HTML(http.StatusOK, "admin_event.html", gin.H{"EventName": eventName, "Registrations": regs, "Query": c.Query("q")})
}

// ---------------- moderation ----------------

// SetReportStatus marks a report New or Reviewed.
func (ac *AdminController) SetReportStatus(c *gin.Context) {
	var body struct {
		Status models.ReportStatus `json:"status" form:"status" binding:"required"`
	}
	if err := c.ShouldBind(&body); err != nil {
		respond(c, http.StatusBadRequest, false, "Status is required.")
		return
	}
	id := c.Param("id")
	err := ac.Dashboard.SetReportStatus(c.Request.Context(), id, body.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		respond(c, http.StatusBadRequest, false, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respond(c, http.StatusNotFound, false, "Report not found.")
	case err != nil:
		respond(c, http.StatusInternalServerError, false, "Failed to update report status.")
	default:
		respond(c, http.StatusOK, true, fmt.Sprintf("Report marked as %s.", body.Status))
	}
}

// DeleteReport removes a report.
func (ac *AdminController) DeleteReport(c *gin.Context) {
	if err := ac.Dashboard.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, http.StatusInternalServerError, false, "Failed to delete report.")
		return
	}
	respond(c, http.StatusOK, true, "Report deleted.")
}

// DeleteRegistration removes a registration.
func (ac *AdminController) DeleteRegistration(c *gin.Context) {
	if err := ac.Dashboard.DeleteRegistration(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, http.StatusInternalServerError, false, "Failed to delete registration.")
		return
	}
	respond(c, http.StatusOK, true, "Registration deleted.")
}

// DemoteUser returns another admin to the student role.
func (ac *AdminController) DemoteUser(c *gin.Context) {
	actor := c.GetString(middleware.ContextUID)
	err := ac.Dashboard.DemoteAdmin(c.Request.Context(), actor, c.Param("uid"))
	switch {
	case errors.Is(err, services.ErrSelfDemotion):
		respond(c, http.StatusBadRequest, false, "You cannot demote yourself.")
	case errors.Is(err, store.ErrNotFound):
		respond(c, http.StatusNotFound, false, "User not found.")
	case err != nil:
		respond(c, http.StatusInternalServerError, false, "Failed to demote user.")
	default:
		respond(c, http.StatusOK, true, "User demoted to student.")
	}
}

// PasswordReset mails a reset link to the signed-in admin.
func (ac *AdminController) PasswordReset(c *gin.Context) {
	email, _ := sessions.Default(c).Get(middleware.SessionEmail).(string)
	if err := ac.Users.SendPasswordReset(c.Request.Context(), email); err != nil {
		logger.Error.Printf("[PasswordReset] %s: %v", email, err)
		respond(c, http.StatusInternalServerError, false, "Failed to send password reset email.")
		return
	}
	respond(c, http.StatusOK, true, fmt.Sprintf("Password reset email sent to %s.", email))
}

// ---------------- exports ----------------

// ExportReports downloads the filtered reports as CSV.
func (ac *AdminController) ExportReports(c *gin.Context) {
	reports, err := ac.Dashboard.Reports(c.Request.Context(), models.ReportType(c.Query("type")), c.Query("q"))
	if errors.Is(err, services.ErrUnknownReportType) {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Error.Printf("[ExportReports] %v", err)
		c.String(http.StatusServiceUnavailable, "Could not load reports")
		return
	}
	var buf bytes.Buffer
	if err := services.WriteReportsCSV(&buf, reports); err != nil {
		c.String(http.StatusInternalServerError, "Export failed")
		return
	}
	sendCSV(c, "reports.csv", buf.Bytes())
}

// ExportEvent downloads one event's registrations as CSV. The route
// parameter carries the ".csv" suffix.
func (ac *AdminController) ExportEvent(c *gin.Context) {
	eventName := strings.TrimSuffix(c.Param("eventName"), ".csv")
	regs, err := ac.Dashboard.Registrations(c.Request.Context(), eventName, c.Query("q"))
	if err != nil {
		logger.Error.Printf("[ExportEvent] %s: %v", eventName, err)
		c.String(http.StatusServiceUnavailable, "Could not load registrations")
		return
	}
	var buf bytes.Buffer
	if err := services.WriteRegistrationsCSV(&buf, regs); err != nil {
		c.String(http.StatusInternalServerError, "Export failed")
		return
	}
	sendCSV(c, exportFilename(eventName), buf.Bytes())
}

// Stats renders the charts page.
func (ac *AdminController) Stats(c *gin.Context) {
	snap, err := ac.Dashboard.Snapshot(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[Stats] %v", err)
		c.String(http.StatusServiceUnavailable, "Could not load statistics")
		return
	}
	var buf bytes.Buffer
	if err := services.RenderStats(&buf, snap); err != nil {
		logger.Error.Printf("[Stats] render failed: %v", err)
		c.String(http.StatusInternalServerError, "Could not render statistics")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func sendCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// exportFilename turns an event name into a safe download name.
func exportFilename(eventName string) string {
	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, strcase.ToKebab(eventName))
	if name == "" {
		name = "event"
	}
	return name + "-registrations.csv"
}
