// internal/services/applicant_service.go
package services

import (
	"context"
	"fmt"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/repository"
)

// ApplicantService is the read side of the applicant dashboard. Every query is
// scoped to the caller's own user id.
type ApplicantService struct {
	applications repository.ApplicationRepository
}

type ApplicantFilter struct {
	Status *models.ApplicationStatus
}

func NewApplicantService(applications repository.ApplicationRepository) *ApplicantService {
	return &ApplicantService{applications: applications}
}

func (s *ApplicantService) ListMine(ctx context.Context, userID string, filter ApplicantFilter) ([]models.Application, error) {
	if userID == "" {
		return nil, errs.ErrForbidden
	}
	apps, err := s.applications.Query(ctx, repository.ApplicationFilter{
		UserID: userID,
		Status: filter.Status,
	}, repository.DateDescending)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// GetMine hides other users' records behind ErrNotFound.
func (s *ApplicantService) GetMine(ctx context.Context, userID, id string) (*models.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID == "" || app.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return app, nil
}

func (s *ApplicantService) Summary(ctx context.Context, userID string) (ReviewSummary, error) {
	apps, err := s.ListMine(ctx, userID, ApplicantFilter{})
	if err != nil {
		return ReviewSummary{}, err
	}
	return SummarizeApplications(apps), nil
}
