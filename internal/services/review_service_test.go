package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/javajoker/permit-portal/internal/repository"
	"github.com/javajoker/permit-portal/internal/utils"
)

func newReviewFixture(t *testing.T, apps ...models.Application) (*ReviewService, *repository.Store) {
	t.Helper()
	store := repository.NewMemoryStore()
	for i := range apps {
		_, err := store.Applications.Create(context.Background(), &apps[i])
		require.NoError(t, err)
	}
	svc := NewReviewService(store.Applications, store.Audit, NewNotificationService(store.Audit, testConfig(), &fakeMailer{}))
	svc.async = runInline
	return svc, store
}

func application(id, name, permitType string, status models.ApplicationStatus, date time.Time) models.Application {
	return models.Application{
		ID:            id,
		Type:          permitType,
		ApplicantName: name,
		UserID:        "user-" + id,
		Status:        status,
		Date:          date,
		Data:          models.JSONB{"land": map[string]interface{}{"tenure": "Private"}},
	}
}

func TestSummarizeApplications(t *testing.T) {
	now := time.Now()
	apps := []models.Application{
		application("1", "A", "Building Permit (Individual)", models.ApplicationStatusApproved, now),
		application("2", "B", "Building Permit (Company)", models.ApplicationStatusApproved, now),
		application("3", "C", "Mast Installation Permit", models.ApplicationStatusRejected, now),
		application("4", "D", "DIN Application", models.ApplicationStatusPending, now),
	}

	summary := SummarizeApplications(apps)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Approved)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.PendingLike)
	assert.Equal(t, map[string]int{
		"Building Permit":          2,
		"Mast Installation Permit": 1,
		"DIN Application":          1,
	}, summary.ByType)
}

func TestSummarizeApplications_ProcessingIsPendingLike(t *testing.T) {
	summary := SummarizeApplications([]models.Application{
		application("1", "A", "DIN Application", models.ApplicationStatusProcessing, time.Now()),
	})
	assert.Equal(t, 1, summary.PendingLike)
	assert.Equal(t, 1, summary.ByStatus["Processing"])

	empty := SummarizeApplications(nil)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.ByType)
}

func TestUpdateStatus_ApprovePending(t *testing.T) {
	date := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	svc, store := newReviewFixture(t, application("app-1", "A B", "DIN Application", models.ApplicationStatusPending, date))
	ctx := context.Background()

	before, err := store.Applications.GetByID(ctx, "app-1")
	require.NoError(t, err)

	change, err := svc.UpdateStatus(ctx, "app-1", models.ApplicationStatusApproved, "admin-1", "complete file")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, change.From)
	assert.Equal(t, models.ApplicationStatusApproved, change.To)

	after, err := store.Applications.GetByID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, after.Status)

	after.Status = before.Status
	assert.Equal(t, before, after)

	history, err := svc.History(ctx, "app-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "admin-1", history[0].UserID)
	assert.Equal(t, "Pending", history[0].OldValues["status"])
	assert.Equal(t, "complete file", history[0].NewValues["note"])

	notes, err := svc.ListNotifications(ctx, false, 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "application_status_changed", notes[0].Type)
}

func TestUpdateStatus_TerminalStatesAreFinal(t *testing.T) {
	svc, store := newReviewFixture(t, application("app-1", "A", "DIN Application", models.ApplicationStatusRejected, time.Now()))

	_, err := svc.UpdateStatus(context.Background(), "app-1", models.ApplicationStatusApproved, "admin-1", "")
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	app, err := store.Applications.GetByID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, app.Status)
}

func TestUpdateStatus_ProcessingIsNotAnAdminAction(t *testing.T) {
	svc, _ := newReviewFixture(t, application("app-1", "A", "DIN Application", models.ApplicationStatusPending, time.Now()))

	_, err := svc.UpdateStatus(context.Background(), "app-1", models.ApplicationStatusProcessing, "admin-1", "")
	var envErr *EnvelopeError
	require.ErrorAs(t, err, &envErr)
	assert.Contains(t, envErr.Fields, "status")
}

func TestUpdateStatus_FromProcessing(t *testing.T) {
	svc, _ := newReviewFixture(t, application("app-1", "A", "DIN Application", models.ApplicationStatusProcessing, time.Now()))

	change, err := svc.UpdateStatus(context.Background(), "app-1", models.ApplicationStatusRejected, "admin-1", "")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, change.Application.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, _ := newReviewFixture(t)

	_, err := svc.UpdateStatus(context.Background(), "missing", models.ApplicationStatusApproved, "admin-1", "")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.History(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListApplications_FiltersAndOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newReviewFixture(t,
		application("app-1", "Chidi Okafor", "DIN Application", models.ApplicationStatusPending, base),
		application("app-2", "Tower Co", "Mast Installation Permit", models.ApplicationStatusApproved, base.Add(time.Hour)),
		application("app-3", "Ngozi Eze", "DIN Application", models.ApplicationStatusPending, base.Add(2*time.Hour)),
	)
	ctx := context.Background()

	all, err := svc.ListApplications(ctx, ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "app-3", all[0].ID)

	pending := models.ApplicationStatusPending
	filtered, err := svc.ListApplications(ctx, ReviewFilter{Status: &pending, PaginationParams: utils.PaginationParams{Search: "chidi"}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "app-1", filtered[0].ID)

	oldest, err := svc.ListApplications(ctx, ReviewFilter{PaginationParams: utils.PaginationParams{Sort: "date", Order: "asc"}})
	require.NoError(t, err)
	assert.Equal(t, "app-1", oldest[0].ID)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.PendingLike)
}
