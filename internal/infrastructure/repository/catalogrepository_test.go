package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/domain/installation"
)

func TestInstallationRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewInstallationRepository(gdb, testLogger())
	ctx := context.Background()

	inst, err := installation.NewInstallation("Kari Nordmann", "Storgata 1, Oslo", installation.SystemTypeHybrid, decimal.RequireFromString("9.6"), "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, inst))

	found, err := repo.GetByID(ctx, inst.ID())
	require.NoError(t, err)
	assert.Equal(t, installation.SystemTypeHybrid, found.SystemType())
	assert.True(t, found.CapacityKw().Equal(decimal.RequireFromString("9.6")))

	ok, err := repo.Exists(ctx, inst.ID())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "inst_missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByID(ctx, "inst_missing")
	assert.True(t, errors.Is(err, installation.ErrInstallationNotFound))

	list, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestAddonProductRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAddonProductRepository(gdb, testLogger())
	ctx := context.Background()

	wash, err := agreement.NewAddonProduct("Panel cleaning", "", vo.AddonCategoryMaintenance, vo.AddonFrequencyPerVisit, decimal.NewFromInt(1200), "visit", 2)
	require.NoError(t, err)
	monitor, err := agreement.NewAddonProduct("Remote monitoring", "", vo.AddonCategoryMonitoring, vo.AddonFrequencyAnnual, decimal.NewFromInt(990), "year", 1)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, wash))
	require.NoError(t, repo.Create(ctx, monitor))

	wash.Deactivate()
	require.NoError(t, repo.Update(ctx, wash))

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, monitor.ID(), active[0].ID())

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Remote monitoring", all[0].Name())

	byIDs, err := repo.GetByIDs(ctx, []string{wash.ID(), "addon_missing"})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.False(t, byIDs[0].IsActive())
	assert.Equal(t, vo.AddonFrequencyPerVisit, byIDs[0].Frequency())
}

func TestServicePlanRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewServicePlanRepository(gdb, testLogger())
	ctx := context.Background()

	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	plan, err := agreement.NewServicePlan("agr_1", 2, start, false)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, plan))

	plan.Advance(start.AddDate(0, 1, 0))
	require.NoError(t, repo.Update(ctx, plan))

	found, err := repo.GetByAgreementID(ctx, "agr_1")
	require.NoError(t, err)
	assert.True(t, found.NextVisitDate().Equal(plan.NextVisitDate()))
	assert.Equal(t, 2, found.VisitFrequency())

	_, err = repo.GetByAgreementID(ctx, "agr_none")
	assert.True(t, errors.Is(err, agreement.ErrServicePlanNotFound))
}
