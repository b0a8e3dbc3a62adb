// internal/services/submission_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/forms"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/permits"
	"github.com/javajoker/permit-portal/internal/repository"
	"github.com/javajoker/permit-portal/internal/utils"
)

// SubmissionService is the single write path that creates applications.
type SubmissionService struct {
	applications        repository.ApplicationRepository
	notificationService *NotificationService
	now                 func() time.Time
	async               func(func())
}

// SubmitRequest is the submission envelope. Data is the encoded value tree.
type SubmitRequest struct {
	Type          string `json:"type" validate:"required,notblank"`
	ApplicantName string `json:"applicantName" validate:"required,notblank,max=255"`
	UserID        string `json:"userId" validate:"required,notblank,max=128"`
	Data          string `json:"data"`
}

func NewSubmissionService(applications repository.ApplicationRepository, notificationService *NotificationService) *SubmissionService {
	return &SubmissionService{
		applications:        applications,
		notificationService: notificationService,
		now:                 time.Now,
		async:               func(f func()) { go f() },
	}
}

// Submit validates the envelope, decodes the payload and persists a new Pending
// application. When actor is given, the envelope must be submitted for the actor's
// own id. Every call that gets past validation creates a new record.
func (s *SubmissionService) Submit(ctx context.Context, req *SubmitRequest, actor *models.Actor) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", &EnvelopeError{Fields: utils.ValidationErrorMap(utils.GetValidationErrors(err))}
	}

	schema, ok := permits.Lookup(req.Type)
	if !ok {
		return "", &EnvelopeError{
			Fields: map[string]string{"type": fmt.Sprintf("%q is not a known permit type", req.Type)},
			Err:    errs.ErrUnknownPermitType,
		}
	}

	userID := strings.TrimSpace(req.UserID)
	if actor != nil && actor.ID != userID {
		return "", fmt.Errorf("%w: cannot submit on behalf of another user", errs.ErrForbidden)
	}

	data, err := forms.Decode(req.Data)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"payload_sha256": utils.HashString(req.Data),
			"payload_bytes":  len(req.Data),
			"type":           schema.Type,
			"user_id":        userID,
		}).WithError(err).Warn("Rejected submission with malformed payload")
		return "", err
	}

	app := &models.Application{
		Type:          schema.Type,
		ApplicantName: strings.TrimSpace(req.ApplicantName),
		UserID:        userID,
		Status:        models.ApplicationStatusPending,
		Date:          s.now().UTC(),
		Data:          models.JSONB(data),
	}

	id, err := s.applications.Create(ctx, app)
	if err != nil {
		logrus.WithError(err).WithField("type", schema.Type).Error("Failed to persist application")
		return "", &PersistenceError{Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"application_id": id,
		"type":           app.Type,
		"user_id":        app.UserID,
	}).Info("Application submitted")

	if s.notificationService != nil {
		created := *app
		s.async(func() {
			if err := s.notificationService.NotifyNewApplication(context.Background(), &created); err != nil {
				logrus.WithError(err).WithField("application_id", id).Error("Failed to create admin notification")
			}
			if actor == nil || actor.Email == "" {
				return
			}
			if err := s.notificationService.SendSubmissionReceipt(&created, actor.Email); err != nil {
				logrus.WithError(err).WithField("application_id", id).Error("Failed to send submission receipt")
			}
		})
	}

	return id, nil
}

// IsMalformedPayload reports whether err came from decoding the payload.
func IsMalformedPayload(err error) bool {
	return errors.Is(err, errs.ErrMalformedPayload)
}
