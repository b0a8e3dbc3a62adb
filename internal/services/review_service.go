// internal/services/review_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/repository"
	"github.com/javajoker/permit-portal/internal/utils"
)

// ReviewService backs the administrative console.
type ReviewService struct {
	applications        repository.ApplicationRepository
	audit               repository.AuditRepository
	notificationService *NotificationService
	async               func(func())
}

type ReviewFilter struct {
	utils.PaginationParams
	Status *models.ApplicationStatus `json:"status,omitempty"`
	Type   string                    `json:"type,omitempty"`
}

// StatusUpdateRequest is the body of an administrative decision.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
	Note   string `json:"note" validate:"max=1000"`
}

// StatusChange describes a completed transition.
type StatusChange struct {
	Application *models.Application      `json:"application"`
	From        models.ApplicationStatus `json:"from"`
	To          models.ApplicationStatus `json:"to"`
}

func NewReviewService(applications repository.ApplicationRepository, audit repository.AuditRepository, notificationService *NotificationService) *ReviewService {
	return &ReviewService{
		applications:        applications,
		audit:               audit,
		notificationService: notificationService,
		async:               func(f func()) { go f() },
	}
}

// ListApplications returns every application matching the filter, sorted by the
// filter's sort field (date, newest first, by default).
func (s *ReviewService) ListApplications(ctx context.Context, filter ReviewFilter) ([]models.Application, error) {
	order := repository.DateDescending
	if filter.Sort != "" {
		order = repository.Order{Field: filter.Sort, Descending: filter.Order != "asc"}
	}

	apps, err := s.applications.Query(ctx, repository.ApplicationFilter{
		Status: filter.Status,
		Type:   filter.Type,
		Search: filter.Search,
	}, order)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *ReviewService) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	return s.applications.GetByID(ctx, id)
}

// GetStats recomputes the dashboard summary from the full record set.
func (s *ReviewService) GetStats(ctx context.Context) (ReviewSummary, error) {
	apps, err := s.applications.Query(ctx, repository.ApplicationFilter{}, repository.DateDescending)
	if err != nil {
		return ReviewSummary{}, fmt.Errorf("failed to load applications: %w", err)
	}
	return SummarizeApplications(apps), nil
}

// UpdateStatus applies an administrative decision. The write is a blind overwrite
// of the status column: two admins deciding concurrently both succeed and the
// later write wins. Only Approved and Rejected can be requested; Processing is
// never set through this path.
func (s *ReviewService) UpdateStatus(ctx context.Context, id string, target models.ApplicationStatus, adminID, note string) (*StatusChange, error) {
	if target != models.ApplicationStatusApproved && target != models.ApplicationStatusRejected {
		return nil, &EnvelopeError{Fields: map[string]string{"status": "status must be one of: Approved Rejected"}}
	}

	current, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := current.Status
	if !from.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, from, target)
	}

	if err := s.applications.UpdateFields(ctx, id, map[string]interface{}{"status": target}); err != nil {
		return nil, err
	}

	updated := *current
	updated.Status = target

	logrus.WithFields(logrus.Fields{
		"application_id": id,
		"from":           from,
		"to":             target,
		"admin_id":       adminID,
	}).Info("Application status changed")

	s.async(func() {
		s.recordStatusChange(context.Background(), &updated, from, adminID, note)
	})

	return &StatusChange{Application: &updated, From: from, To: target}, nil
}

// History returns the recorded status changes of one application, oldest first.
func (s *ReviewService) History(ctx context.Context, id string) ([]models.AuditLog, error) {
	if _, err := s.applications.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.audit.ListAuditLogs(ctx, "application", id)
}

func (s *ReviewService) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]models.AdminNotification, error) {
	return s.audit.ListNotifications(ctx, unreadOnly, limit)
}

func (s *ReviewService) recordStatusChange(ctx context.Context, app *models.Application, from models.ApplicationStatus, adminID, note string) {
	auditLog := &models.AuditLog{
		UserID:       adminID,
		Action:       "application.status_changed",
		ResourceType: "application",
		ResourceID:   app.ID,
		OldValues:    models.JSONB{"status": string(from)},
		NewValues:    models.JSONB{"status": string(app.Status), "note": note},
	}
	if err := s.audit.CreateAuditLog(ctx, auditLog); err != nil {
		logrus.WithError(err).WithField("application_id", app.ID).Error("Failed to create audit log")
	}

	if s.notificationService != nil {
		if err := s.notificationService.NotifyStatusChange(ctx, app, from, adminID); err != nil {
			logrus.WithError(err).WithField("application_id", app.ID).Error("Failed to create notification")
		}
	}
}
