package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgreementStatus_Transitions(t *testing.T) {
	tests := []struct {
		from AgreementStatus
		to   AgreementStatus
		want bool
	}{
		{AgreementStatusDraft, AgreementStatusActive, true},
		{AgreementStatusDraft, AgreementStatusPendingApproval, true},
		{AgreementStatusPendingApproval, AgreementStatusActive, true},
		{AgreementStatusActive, AgreementStatusActive, false},
		{AgreementStatusActive, AgreementStatusSuspended, true},
		{AgreementStatusSuspended, AgreementStatusActive, true},
		{AgreementStatusExpired, AgreementStatusCancelled, true},
		{AgreementStatusExpired, AgreementStatusActive, false},
		{AgreementStatusCancelled, AgreementStatusCancelled, false},
		{AgreementStatusCancelled, AgreementStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAgreementStatus_EveryNonCancelledStatusCanCancel(t *testing.T) {
	for status := range validAgreementStatuses {
		if status == AgreementStatusCancelled {
			continue
		}
		assert.True(t, status.CanTransitionTo(AgreementStatusCancelled), status)
	}
}

func TestAgreementType_Defaults(t *testing.T) {
	assert.Equal(t, 1, AgreementTypeBasic.DefaultVisitFrequency())
	assert.Equal(t, 2, AgreementTypeStandard.DefaultVisitFrequency())
	assert.Equal(t, "8500", AgreementTypeStandard.DefaultBasePrice().String())

	_, err := NewAgreementType("GOLD")
	assert.Error(t, err)
}

func TestSLALevel_ResponseTime(t *testing.T) {
	assert.Equal(t, 72, SLALevelStandard.ResponseTimeHours())
	assert.Equal(t, 4, SLALevelCritical.ResponseTimeHours())

	_, err := NewSLALevel("URGENT")
	assert.Error(t, err)
}

func TestAddonFrequency(t *testing.T) {
	assert.True(t, AddonFrequencyAnnual.IsAnnual())
	assert.False(t, AddonFrequencyPerVisit.IsAnnual())

	f, err := NewAddonFrequency("MONTHLY")
	assert.NoError(t, err)
	assert.Equal(t, AddonFrequencyMonthly, f)

	_, err = NewAddonCategory("SOFTWARE")
	assert.Error(t, err)
}
