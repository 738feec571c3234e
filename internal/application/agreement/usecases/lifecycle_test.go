package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/shared/errors"
)

func repoReturning(a *agreement.Agreement) *mockAgreementRepository {
	return &mockAgreementRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*agreement.Agreement, error) { return a, nil },
	}
}

func TestActivateAgreementUseCase_Execute(t *testing.T) {
	tests := []struct {
		name      string
		status    vo.AgreementStatus
		shouldErr bool
	}{
		{"from draft", vo.AgreementStatusDraft, false},
		{"from pending approval", vo.AgreementStatusPendingApproval, false},
		{"already active", vo.AgreementStatusActive, true},
		{"cancelled", vo.AgreementStatusCancelled, true},
		{"expired", vo.AgreementStatusExpired, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := existingAgreement(t, tt.status, nil)
			publisher := &mockEventPublisher{}
			uc := NewActivateAgreementUseCase(repoReturning(a), publisher, &mockLogger{})

			result, err := uc.Execute(context.Background(), ActivateAgreementCommand{AgreementID: a.ID()})
			if tt.shouldErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidStateError(err))
				assert.Empty(t, publisher.published)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ACTIVE", result.Status)
			assert.NotNil(t, result.SignedAt)
			require.Len(t, publisher.published, 1)
			assert.Equal(t, agreement.EventAgreementActivated, publisher.published[0].GetEventType())
		})
	}
}

func TestCancelAgreementUseCase_Execute(t *testing.T) {
	a := existingAgreement(t, vo.AgreementStatusActive, nil)
	uc := NewCancelAgreementUseCase(repoReturning(a), &mockEventPublisher{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), CancelAgreementCommand{AgreementID: a.ID(), Reason: "  "})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	result, err := uc.Execute(context.Background(), CancelAgreementCommand{AgreementID: a.ID(), Reason: "customer sold the house"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", result.Status)
	require.NotNil(t, result.CancellationReason)
	assert.Equal(t, "customer sold the house", *result.CancellationReason)
	assert.Empty(t, result.Notes)

	_, err = uc.Execute(context.Background(), CancelAgreementCommand{AgreementID: a.ID(), Reason: "again"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidStateError(err))
}

func TestChangeAgreementStatusUseCase_Execute(t *testing.T) {
	tests := []struct {
		name     string
		status   vo.AgreementStatus
		action   StatusAction
		expected string
		errFn    func(error) bool
	}{
		{"submit draft", vo.AgreementStatusDraft, StatusActionSubmit, "PENDING_APPROVAL", nil},
		{"suspend active", vo.AgreementStatusActive, StatusActionSuspend, "SUSPENDED", nil},
		{"resume suspended", vo.AgreementStatusSuspended, StatusActionResume, "ACTIVE", nil},
		{"suspend draft", vo.AgreementStatusDraft, StatusActionSuspend, "", errors.IsInvalidStateError},
		{"resume active", vo.AgreementStatusActive, StatusActionResume, "", errors.IsInvalidStateError},
		{"unknown action", vo.AgreementStatusActive, StatusAction("archive"), "", errors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := existingAgreement(t, tt.status, nil)
			uc := NewChangeAgreementStatusUseCase(repoReturning(a), &mockLogger{})

			result, err := uc.Execute(context.Background(), ChangeAgreementStatusCommand{AgreementID: a.ID(), Action: tt.action})
			if tt.errFn != nil {
				require.Error(t, err)
				assert.True(t, tt.errFn(err), "unexpected error kind: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Status)
		})
	}
}

func TestMaintainAgreementsUseCase_Execute(t *testing.T) {
	past := time.Now().UTC().AddDate(0, 0, -3)
	build := func(id string, status vo.AgreementStatus, autoRenew bool) *agreement.Agreement {
		a, err := agreement.ReconstructAgreement(
			id, "SA-00001-2025", "inst_1",
			vo.AgreementTypeBasic, status, vo.SLALevelStandard,
			past.AddDate(-1, 0, 0), &past,
			dec("4500"), nil, nil,
			autoRenew, 1, "", "", "",
			nil, nil, nil, nil,
			1, time.Now(), time.Now(),
		)
		require.NoError(t, err)
		return a
	}
	renewing := build("agr_renew", vo.AgreementStatusActive, true)
	expiring := build("agr_expire", vo.AgreementStatusActive, false)
	suspended := build("agr_suspended", vo.AgreementStatusSuspended, true)

	updated := map[string]*agreement.Agreement{}
	repo := &mockAgreementRepository{
		ListLapsedFunc: func(ctx context.Context, now time.Time, limit int) ([]*agreement.Agreement, error) {
			return []*agreement.Agreement{renewing, expiring, suspended}, nil
		},
		UpdateFunc: func(ctx context.Context, a *agreement.Agreement) error {
			updated[a.ID()] = a
			return nil
		},
	}
	publisher := &mockEventPublisher{}
	uc := NewMaintainAgreementsUseCase(repo, publisher, &mockLogger{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Renewed)
	assert.Equal(t, 2, result.Expired)
	assert.Equal(t, 0, result.Failed)

	assert.Equal(t, vo.AgreementStatusActive, updated["agr_renew"].Status())
	assert.True(t, updated["agr_renew"].EndDate().After(time.Now()))
	assert.Equal(t, vo.AgreementStatusExpired, updated["agr_expire"].Status())
	assert.Equal(t, vo.AgreementStatusExpired, updated["agr_suspended"].Status())
	assert.Len(t, publisher.published, 3)
}

func TestCalculatePriceUseCase_Execute(t *testing.T) {
	annual := newProduct(t, "Remote monitoring", vo.AddonFrequencyAnnual, "1000")
	monthly := newProduct(t, "Data plan", vo.AddonFrequencyMonthly, "99")
	uc := NewCalculatePriceUseCase(newAddonRepo(annual, monthly), &mockLogger{})

	result, err := uc.Execute(context.Background(), CalculatePriceCommand{
		AgreementType:   "PREMIUM",
		DiscountPercent: decPtr("12.5"),
		Addons: []AddonInput{
			{AddonID: annual.ID(), Quantity: 1, CustomPrice: decPtr("1033.33")},
			{AddonID: monthly.ID(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	// (14500 + 1033.33) * 0.875 = 13591.66375, rounded for presentation.
	assert.Equal(t, "13591.66", result.Total.StringFixed(2))
	assert.Equal(t, "1033.33", result.AddonsTotal.StringFixed(2))
	assert.Len(t, result.Lines, 2)

	_, err = uc.Execute(context.Background(), CalculatePriceCommand{})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CalculatePriceCommand{
		BasePrice: decPtr("5000"),
		Addons:    []AddonInput{{AddonID: annual.ID(), Quantity: 0}},
	})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CalculatePriceCommand{AgreementType: "BASIC", BasePrice: decPtr("0")})
	assert.True(t, errors.IsValidationError(err))
}
