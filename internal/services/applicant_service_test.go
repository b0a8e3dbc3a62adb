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
)

func TestApplicantService_ScopedToOwner(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, app := range []models.Application{
		{ID: "a1", Type: "DIN Application", ApplicantName: "Mine", UserID: "u1", Status: models.ApplicationStatusPending, Date: base},
		{ID: "a2", Type: "DIN Application", ApplicantName: "Mine too", UserID: "u1", Status: models.ApplicationStatusApproved, Date: base.Add(time.Hour)},
		{ID: "a3", Type: "DIN Application", ApplicantName: "Theirs", UserID: "u2", Status: models.ApplicationStatusPending, Date: base},
	} {
		app := app
		_, err := store.Applications.Create(ctx, &app)
		require.NoError(t, err)
	}

	svc := NewApplicantService(store.Applications)

	mine, err := svc.ListMine(ctx, "u1", ApplicantFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a2", mine[0].ID)

	approved := models.ApplicationStatusApproved
	onlyApproved, err := svc.ListMine(ctx, "u1", ApplicantFilter{Status: &approved})
	require.NoError(t, err)
	assert.Len(t, onlyApproved, 1)

	_, err = svc.GetMine(ctx, "u1", "a3")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	got, err := svc.GetMine(ctx, "u2", "a3")
	require.NoError(t, err)
	assert.Equal(t, "Theirs", got.ApplicantName)

	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Approved)

	_, err = svc.ListMine(ctx, "", ApplicantFilter{})
	assert.ErrorIs(t, err, errs.ErrForbidden)
}
