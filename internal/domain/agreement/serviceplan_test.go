package agreement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/shared/biztime"
)

func TestNewServicePlan_NextVisitDate(t *testing.T) {
	start, err := biztime.ParseDate("2026-04-10")
	require.NoError(t, err)

	tests := []struct {
		frequency int
		want      string
	}{
		{1, "2027-04-10"},
		{2, "2026-10-10"},
		{4, "2026-07-10"},
		{5, "2026-06-10"}, // 12/5 months, integer division
		{12, "2026-05-10"},
	}

	for _, tt := range tests {
		t.Run(biztime.FormatDate(start)+"/"+tt.want, func(t *testing.T) {
			plan, err := NewServicePlan("agr_1", tt.frequency, start, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, biztime.FormatDate(plan.NextVisitDate()))
		})
	}
}

func TestNewServicePlan_RejectsFrequencyOutOfRange(t *testing.T) {
	_, err := NewServicePlan("agr_1", 0, biztime.NowUTC(), false)
	assert.ErrorIs(t, err, ErrInvalidVisitFrequency)

	_, err = NewServicePlan("agr_1", 13, biztime.NowUTC(), false)
	assert.ErrorIs(t, err, ErrInvalidVisitFrequency)
}

func TestServicePlan_SeasonalAdjustSkipsWinter(t *testing.T) {
	tests := []struct {
		start string
		want  string
	}{
		{"2026-09-15", "2027-03-01"}, // lands on 2026-12-15
		{"2026-10-15", "2027-03-01"}, // lands on 2027-01-15
		{"2026-11-20", "2027-03-01"}, // lands in February
		{"2026-03-01", "2026-06-01"}, // summer, unchanged
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			start, err := biztime.ParseDate(tt.start)
			require.NoError(t, err)

			plan, err := NewServicePlan("agr_1", 4, start, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, biztime.FormatDate(plan.NextVisitDate()))
		})
	}
}

func TestServicePlan_AdvanceAndChangeFrequency(t *testing.T) {
	start, _ := biztime.ParseDate("2026-01-05")
	plan, err := NewServicePlan("agr_1", 2, start, false)
	require.NoError(t, err)

	completed, _ := biztime.ParseDate("2026-07-20")
	plan.Advance(completed)
	assert.Equal(t, "2027-01-20", biztime.FormatDate(plan.NextVisitDate()))

	require.NoError(t, plan.ChangeFrequency(12, completed))
	assert.Equal(t, 12, plan.VisitFrequency())
	assert.Equal(t, "2026-08-20", biztime.FormatDate(plan.NextVisitDate()))

	assert.ErrorIs(t, plan.ChangeFrequency(20, completed), ErrInvalidVisitFrequency)
}
