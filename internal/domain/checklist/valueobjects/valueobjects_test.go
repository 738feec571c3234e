package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemOutcome_NormalizesAliases(t *testing.T) {
	tests := []struct {
		input string
		want  ItemOutcome
	}{
		{"", OutcomePending},
		{"pending", OutcomePending},
		{"OK", OutcomePassed},
		{"passed", OutcomePassed},
		{" Pass ", OutcomePassed},
		{"NOT_OK", OutcomeFailed},
		{"not-ok", OutcomeFailed},
		{"FAILED", OutcomeFailed},
		{"N/A", OutcomeNotApplicable},
		{"not applicable", OutcomeNotApplicable},
		{"NOT_APPLICABLE", OutcomeNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseItemOutcome(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseItemOutcome("MAYBE")
	assert.Error(t, err)
}

func TestItemOutcome_Predicates(t *testing.T) {
	assert.False(t, OutcomePending.IsAnswered())
	assert.True(t, OutcomeNotApplicable.IsAnswered())
	assert.True(t, OutcomeFailed.IsFailed())
	assert.False(t, OutcomePassed.IsFailed())
}

func TestSeverity(t *testing.T) {
	got, err := ParseSeverity("serious")
	require.NoError(t, err)
	assert.Equal(t, SeveritySerious, got)
	assert.Equal(t, 0, SeverityCritical.Rank())
	assert.Equal(t, 4, SeverityInfo.Rank())
	assert.Equal(t, -1, Severity("HIGH").Rank())

	_, err = ParseSeverity("HIGH")
	assert.Error(t, err)
}

func TestChecklistStatus_Transitions(t *testing.T) {
	assert.True(t, ChecklistStatusPending.CanTransitionTo(ChecklistStatusInProgress))
	assert.True(t, ChecklistStatusInProgress.CanTransitionTo(ChecklistStatusCompleted))
	assert.False(t, ChecklistStatusCompleted.CanTransitionTo(ChecklistStatusInProgress))
	assert.False(t, ChecklistStatusInProgress.CanTransitionTo(ChecklistStatusPending))
}

func TestGPS_Validate(t *testing.T) {
	assert.NoError(t, GPS{Latitude: 59.91, Longitude: 10.75}.Validate())
	assert.Error(t, GPS{Latitude: 91}.Validate())
	assert.Error(t, GPS{Longitude: -181}.Validate())
}

func TestInputType(t *testing.T) {
	assert.True(t, InputTypeTemperature.IsNumeric())
	assert.False(t, InputTypeChoice.IsNumeric())
	_, err := NewInputType("SLIDER")
	assert.Error(t, err)
}
