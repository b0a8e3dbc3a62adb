package repository

import (
	"context"
	"testing"
	"time"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo ApplicationRepository, apps ...models.Application) []string {
	t.Helper()
	ids := make([]string, 0, len(apps))
	for i := range apps {
		id, err := repo.Create(context.Background(), &apps[i])
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestMemoryApplicationRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	ctx := context.Background()

	app := &models.Application{
		Type:          "DIN Application",
		ApplicantName: "A B",
		UserID:        "u1",
		Status:        models.ApplicationStatusPending,
		Date:          time.Now(),
		Data:          models.JSONB{"nested": map[string]interface{}{"k": "v"}},
	}
	id, err := repo.Create(ctx, app)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, app.ID)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A B", got.ApplicantName)

	// mutating the returned copy does not touch the store
	got.Data["nested"] = "changed"
	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"k": "v"}, again.Data["nested"])

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMemoryApplicationRepository_UpdateFields(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	ctx := context.Background()
	ids := seed(t, repo, models.Application{Type: "DIN Application", ApplicantName: "A", UserID: "u1", Status: models.ApplicationStatusPending, Date: time.Now()})

	require.NoError(t, repo.UpdateFields(ctx, ids[0], map[string]interface{}{"status": models.ApplicationStatusApproved}))
	got, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, got.Status)
	assert.Equal(t, "A", got.ApplicantName)

	assert.ErrorIs(t, repo.UpdateFields(ctx, "nope", map[string]interface{}{"status": "Rejected"}), errs.ErrNotFound)
	assert.Error(t, repo.UpdateFields(ctx, ids[0], map[string]interface{}{"data": "x"}))
}

func TestMemoryApplicationRepository_Query(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(t, repo,
		models.Application{ID: "app-1", Type: "DIN Application", ApplicantName: "Chidi Okafor", UserID: "u1", Status: models.ApplicationStatusPending, Date: base},
		models.Application{ID: "app-2", Type: "Mast Installation Permit", ApplicantName: "Tower Co", UserID: "u2", Status: models.ApplicationStatusApproved, Date: base.Add(time.Hour)},
		models.Application{ID: "app-3", Type: "DIN Application", ApplicantName: "Ngozi Eze", UserID: "u1", Status: models.ApplicationStatusRejected, Date: base.Add(2 * time.Hour)},
	)
	ctx := context.Background()

	all, err := repo.Query(ctx, ApplicationFilter{}, DateDescending)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"app-3", "app-2", "app-1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.Query(ctx, ApplicationFilter{UserID: "u1"}, DateDescending)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	approved := models.ApplicationStatusApproved
	byStatus, err := repo.Query(ctx, ApplicationFilter{Status: &approved}, DateDescending)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "app-2", byStatus[0].ID)

	search, err := repo.Query(ctx, ApplicationFilter{Search: "ngozi"}, DateDescending)
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "app-3", search[0].ID)

	byID, err := repo.Query(ctx, ApplicationFilter{Search: "APP-1"}, Order{Field: "applicantName"})
	require.NoError(t, err)
	require.Len(t, byID, 1)

	byType, err := repo.Query(ctx, ApplicationFilter{Type: "DIN Application"}, Order{Field: "applicantName"})
	require.NoError(t, err)
	require.Len(t, byType, 2)
	assert.Equal(t, "Chidi Okafor", byType[0].ApplicantName)
}

func TestMemoryAuditRepository(t *testing.T) {
	repo := NewMemoryAuditRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreateAuditLog(ctx, &models.AuditLog{Action: "application.status_changed", ResourceType: "application", ResourceID: "a1"}))
	require.NoError(t, repo.CreateAuditLog(ctx, &models.AuditLog{Action: "application.status_changed", ResourceType: "application", ResourceID: "a2"}))

	logs, err := repo.ListAuditLogs(ctx, "application", "a1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.NotEqual(t, "", logs[0].ID.String())

	now := time.Now()
	require.NoError(t, repo.CreateNotification(ctx, &models.AdminNotification{Type: "status", Title: "read", ReadAt: &now}))
	require.NoError(t, repo.CreateNotification(ctx, &models.AdminNotification{Type: "status", Title: "unread"}))

	unread, err := repo.ListNotifications(ctx, true, 10)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "unread", unread[0].Title)

	all, err := repo.ListNotifications(ctx, false, 1)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryApplicationRepository_QueryBreaksTiesByID(t *testing.T) {
	repo := NewMemoryApplicationRepository()
	date := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	seed(t, repo,
		models.Application{ID: "app-c", Type: "DIN Application", ApplicantName: "Same", UserID: "u1", Status: models.ApplicationStatusPending, Date: date},
		models.Application{ID: "app-a", Type: "DIN Application", ApplicantName: "Same", UserID: "u1", Status: models.ApplicationStatusPending, Date: date},
		models.Application{ID: "app-b", Type: "DIN Application", ApplicantName: "Same", UserID: "u1", Status: models.ApplicationStatusPending, Date: date},
	)
	ctx := context.Background()
	ids := func(apps []models.Application) []string {
		out := make([]string, len(apps))
		for i, app := range apps {
			out[i] = app.ID
		}
		return out
	}

	for i := 0; i < 5; i++ {
		desc, err := repo.Query(ctx, ApplicationFilter{}, DateDescending)
		require.NoError(t, err)
		assert.Equal(t, []string{"app-c", "app-b", "app-a"}, ids(desc))

		asc, err := repo.Query(ctx, ApplicationFilter{}, Order{Field: "applicantName"})
		require.NoError(t, err)
		assert.Equal(t, []string{"app-a", "app-b", "app-c"}, ids(asc))
	}
}
