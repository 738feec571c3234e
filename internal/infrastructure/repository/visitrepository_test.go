package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
)

func newTestVisit(t *testing.T, agreementID string, number int, scheduled time.Time) *visit.Visit {
	t.Helper()
	v, err := visit.NewVisit(agreementID, "tech_1", number, scheduled, nil, vo.VisitTypeRoutine, "")
	require.NoError(t, err)
	return v
}

func TestVisitRepository_RoundTrip(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewVisitRepository(gdb, testLogger())
	ctx := context.Background()

	scheduled := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	v := newTestVisit(t, "agr_1", 1, scheduled)
	require.NoError(t, repo.Create(ctx, v))

	started := scheduled.Add(10 * time.Minute)
	require.NoError(t, v.Start(started))
	require.NoError(t, v.RecordSignature("data:image/png;base64,AAAA", started.Add(time.Hour)))
	require.NoError(t, repo.Update(ctx, v))
	require.NoError(t, v.Complete(0, started.Add(95*time.Minute)))
	require.NoError(t, repo.Update(ctx, v))
	assert.Equal(t, 3, v.Version())

	found, err := repo.GetByIDForUpdate(ctx, v.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.VisitStatusCompleted, found.Status())
	assert.Equal(t, vo.VisitTypeRoutine, found.VisitType())
	require.NotNil(t, found.DurationMinutes())
	assert.Equal(t, 95, *found.DurationMinutes())
	require.NotNil(t, found.CustomerSignature())
	require.NotNil(t, found.ScheduledEndDate())
	assert.True(t, found.ScheduledEndDate().Equal(scheduled.Add(2*time.Hour)))
	assert.Equal(t, 3, found.Version())
}

func TestVisitRepository_UpdateConflict(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewVisitRepository(gdb, testLogger())
	ctx := context.Background()

	v := newTestVisit(t, "agr_1", 1, time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, v))

	a, err := repo.GetByID(ctx, v.ID())
	require.NoError(t, err)
	b, err := repo.GetByID(ctx, v.ID())
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, a.Start(now))
	require.NoError(t, repo.Update(ctx, a))

	require.NoError(t, b.Cancel("customer not home", now))
	err = repo.Update(ctx, b)
	assert.True(t, errors.Is(err, visit.ErrConcurrentModification))
}

func TestVisitRepository_ListAndNumbers(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewVisitRepository(gdb, testLogger())
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, newTestVisit(t, "agr_1", i, base.AddDate(0, i, 0))))
	}
	require.NoError(t, repo.Create(ctx, newTestVisit(t, "agr_2", 1, base)))

	t.Run("max visit number per agreement", func(t *testing.T) {
		n, err := repo.MaxVisitNumber(ctx, "agr_1")
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = repo.MaxVisitNumber(ctx, "agr_none")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("duplicate visit number is rejected", func(t *testing.T) {
		err := repo.Create(ctx, newTestVisit(t, "agr_2", 1, base))
		assert.Error(t, err)
	})

	t.Run("date window ordered by schedule", func(t *testing.T) {
		from := base.AddDate(0, 1, 0)
		to := base.AddDate(0, 2, 0)
		list, total, err := repo.List(ctx, visit.ListFilter{AgreementID: "agr_1", From: &from, To: &to, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, list, 2)
		assert.Equal(t, 1, list[0].VisitNumber())
		assert.Equal(t, 2, list[1].VisitNumber())
	})

	t.Run("status filter", func(t *testing.T) {
		status := vo.VisitStatusCompleted
		list, total, err := repo.List(ctx, visit.ListFilter{Status: &status})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, list)
	})
}

func TestPhotoRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewPhotoRepository(gdb, testLogger())
	ctx := context.Background()

	later := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)
	p1, err := visit.NewPhoto("vis_1", "https://cdn.example.com/a.jpg", "inverter", &later)
	require.NoError(t, err)
	p2, err := visit.NewPhoto("vis_1", "https://cdn.example.com/b.jpg", "roof", &earlier)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))

	photos, err := repo.ListByVisit(ctx, "vis_1")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "roof", photos[0].Caption())
	assert.Equal(t, "https://cdn.example.com/a.jpg", photos[1].URL())
}
