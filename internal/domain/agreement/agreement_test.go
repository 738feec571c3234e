package agreement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/shared/biztime"
)

func newTestAgreement(t *testing.T) *Agreement {
	t.Helper()
	a, err := NewAgreement(NewAgreementParams{
		InstallationID: "inst_1",
		AgreementType:  vo.AgreementTypeStandard,
		StartDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		BasePrice:      decPtr("8500"),
	})
	require.NoError(t, err)
	return a
}

func reconstructWithStatus(t *testing.T, status vo.AgreementStatus) *Agreement {
	t.Helper()
	a, err := ReconstructAgreement(
		"agr_1", "SA-00001-2026", "inst_1",
		vo.AgreementTypeStandard, status, vo.SLALevelStandard,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil,
		dec("8500"), nil, nil,
		false, 2, "", "", "",
		nil, nil, nil, nil,
		3, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return a
}

func TestNewAgreement_Defaults(t *testing.T) {
	a, err := NewAgreement(NewAgreementParams{
		InstallationID: "inst_1",
		AgreementType:  vo.AgreementTypePremium,
		StartDate:      biztime.NowUTC(),
	})
	require.NoError(t, err)

	assert.Equal(t, vo.AgreementStatusDraft, a.Status())
	assert.Nil(t, a.SignedAt())
	assert.Equal(t, 4, a.VisitFrequency())
	assert.True(t, a.BasePrice().Equal(dec("14500")))
	assert.Equal(t, vo.SLALevelStandard, a.SLALevel())
	assert.Equal(t, 1, a.Version())
	assert.Empty(t, a.AgreementNumber())
}

func TestNewAgreement_Validation(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)

	tests := []struct {
		name    string
		params  NewAgreementParams
		wantErr error
	}{
		{"negative price", NewAgreementParams{InstallationID: "i", AgreementType: vo.AgreementTypeBasic, StartDate: start, BasePrice: decPtr("-1")}, ErrInvalidPrice},
		{"explicit zero price", NewAgreementParams{InstallationID: "i", AgreementType: vo.AgreementTypeBasic, StartDate: start, BasePrice: decPtr("0")}, ErrInvalidPrice},
		{"discount out of range", NewAgreementParams{InstallationID: "i", AgreementType: vo.AgreementTypeBasic, StartDate: start, DiscountPercent: decPtr("101")}, ErrInvalidDiscount},
		{"frequency out of range", NewAgreementParams{InstallationID: "i", AgreementType: vo.AgreementTypeBasic, StartDate: start, VisitFrequency: 13}, ErrInvalidVisitFrequency},
		{"end before start", NewAgreementParams{InstallationID: "i", AgreementType: vo.AgreementTypeBasic, StartDate: start, EndDate: &before}, ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAgreement(tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := NewAgreement(NewAgreementParams{AgreementType: vo.AgreementTypeBasic, StartDate: start})
	assert.Error(t, err)
}

func TestAgreement_AssignNumberOnce(t *testing.T) {
	a := newTestAgreement(t)

	require.NoError(t, a.AssignNumber("SA-00007-2026"))
	assert.Equal(t, "SA-00007-2026", a.AgreementNumber())
	assert.ErrorIs(t, a.AssignNumber("SA-00008-2026"), ErrNumberAlreadyAssigned)

	evs := a.GetEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, EventAgreementCreated, evs[0].GetEventType())
	assert.Empty(t, a.GetEvents())
}

func TestAgreement_Activate(t *testing.T) {
	now := biztime.NowUTC()
	tests := []struct {
		from    vo.AgreementStatus
		wantErr bool
	}{
		{vo.AgreementStatusDraft, false},
		{vo.AgreementStatusPendingApproval, false},
		{vo.AgreementStatusActive, true},
		{vo.AgreementStatusSuspended, true},
		{vo.AgreementStatusExpired, true},
		{vo.AgreementStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			a := reconstructWithStatus(t, tt.from)
			err := a.Activate(now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
				assert.Equal(t, tt.from, a.Status())
				assert.Nil(t, a.SignedAt())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.AgreementStatusActive, a.Status())
			require.NotNil(t, a.SignedAt())
			assert.Equal(t, now, *a.SignedAt())
		})
	}
}

func TestAgreement_Cancel(t *testing.T) {
	now := biztime.NowUTC()
	for _, from := range []vo.AgreementStatus{
		vo.AgreementStatusDraft,
		vo.AgreementStatusPendingApproval,
		vo.AgreementStatusActive,
		vo.AgreementStatusSuspended,
		vo.AgreementStatusExpired,
	} {
		t.Run(string(from), func(t *testing.T) {
			a := reconstructWithStatus(t, from)
			require.NoError(t, a.Cancel("  customer sold the house ", now))
			assert.Equal(t, vo.AgreementStatusCancelled, a.Status())
			assert.Equal(t, "customer sold the house", *a.CancellationReason())
			assert.Equal(t, now, *a.CancelledAt())
		})
	}

	t.Run("already cancelled", func(t *testing.T) {
		a := reconstructWithStatus(t, vo.AgreementStatusCancelled)
		assert.ErrorIs(t, a.Cancel("again", now), ErrInvalidStatusTransition)
	})

	t.Run("empty reason", func(t *testing.T) {
		a := reconstructWithStatus(t, vo.AgreementStatusActive)
		assert.ErrorIs(t, a.Cancel("   ", now), ErrCancellationReason)
		assert.Equal(t, vo.AgreementStatusActive, a.Status())
	})
}

func TestAgreement_SuspendResume(t *testing.T) {
	a := reconstructWithStatus(t, vo.AgreementStatusActive)
	require.NoError(t, a.Suspend())
	assert.ErrorIs(t, a.Suspend(), ErrInvalidStatusTransition)
	require.NoError(t, a.Resume())
	assert.Equal(t, vo.AgreementStatusActive, a.Status())

	draft := reconstructWithStatus(t, vo.AgreementStatusDraft)
	require.NoError(t, draft.SubmitForApproval())
	assert.Equal(t, vo.AgreementStatusPendingApproval, draft.Status())
}

func TestAgreement_UpdateReportsReprice(t *testing.T) {
	a := newTestAgreement(t)

	res, err := a.Update(AgreementPatch{Notes: strPtr("gate code 1234")})
	require.NoError(t, err)
	assert.False(t, res.RepriceNeeded)

	same := dec("8500")
	res, err = a.Update(AgreementPatch{BasePrice: &same})
	require.NoError(t, err)
	assert.False(t, res.RepriceNeeded)

	res, err = a.Update(AgreementPatch{BasePrice: decPtr("9000"), DiscountPercent: decPtr("10")})
	require.NoError(t, err)
	assert.True(t, res.RepriceNeeded)

	res, err = a.Update(AgreementPatch{ClearDiscount: true})
	require.NoError(t, err)
	assert.True(t, res.RepriceNeeded)
	assert.Nil(t, a.DiscountPercent())

	freq := 4
	res, err = a.Update(AgreementPatch{VisitFrequency: &freq})
	require.NoError(t, err)
	assert.True(t, res.FrequencyChanged)
}

func TestAgreement_UpdateIsAtomicOnValidationFailure(t *testing.T) {
	a := newTestAgreement(t)
	_, err := a.Update(AgreementPatch{Notes: strPtr("changed"), DiscountPercent: decPtr("150")})
	assert.ErrorIs(t, err, ErrInvalidDiscount)
	assert.Empty(t, a.Notes())
}

func TestAgreement_UpdateRejectedWhenTerminal(t *testing.T) {
	a := reconstructWithStatus(t, vo.AgreementStatusCancelled)
	_, err := a.Update(AgreementPatch{Notes: strPtr("x")})
	assert.ErrorIs(t, err, ErrAgreementNotEditable)
	assert.ErrorIs(t, a.ReplaceAddons(nil), ErrAgreementNotEditable)
}

func TestAgreement_RepriceCachesTotal(t *testing.T) {
	a := newTestAgreement(t)
	p := newProduct(t, "Monitoring", vo.AddonFrequencyAnnual, "5000")
	addon, err := NewAgreementAddon(p.ID(), 1, nil, "")
	require.NoError(t, err)
	require.NoError(t, a.ReplaceAddons([]*AgreementAddon{addon}))

	breakdown := a.Reprice(products(p))

	require.NotNil(t, a.CalculatedPrice())
	assert.True(t, a.CalculatedPrice().Equal(dec("13500")))
	assert.True(t, breakdown.GrandTotal.Equal(dec("16875")))
	assert.Equal(t, a.ID(), a.Addons()[0].AgreementID())
	assert.Equal(t, []string{p.ID()}, a.AddonIDs())
}

func TestAgreement_Lapse(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("auto renew extends by a year", func(t *testing.T) {
		a := reconstructWithStatus(t, vo.AgreementStatusActive)
		a.endDate = &end
		a.autoRenew = true

		renewed, err := a.Lapse(now)
		require.NoError(t, err)
		assert.True(t, renewed)
		assert.Equal(t, vo.AgreementStatusActive, a.Status())
		assert.Equal(t, time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC), *a.EndDate())
	})

	t.Run("suspended agreement expires even with auto renew", func(t *testing.T) {
		a := reconstructWithStatus(t, vo.AgreementStatusSuspended)
		a.endDate = &end
		a.autoRenew = true

		renewed, err := a.Lapse(now)
		require.NoError(t, err)
		assert.False(t, renewed)
		assert.Equal(t, vo.AgreementStatusExpired, a.Status())
	})

	t.Run("not lapsed", func(t *testing.T) {
		a := reconstructWithStatus(t, vo.AgreementStatusActive)
		_, err := a.Lapse(now)
		assert.Error(t, err)
	})
}

func TestNewAgreementAddon_Validation(t *testing.T) {
	_, err := NewAgreementAddon("addon_1", 0, nil, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	neg := decimal.NewFromInt(-10)
	_, err = NewAgreementAddon("addon_1", 1, &neg, "")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func strPtr(s string) *string { return &s }
