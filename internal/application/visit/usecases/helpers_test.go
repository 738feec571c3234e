package usecases

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"solarops/internal/domain/agreement"
	agreementvo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
)

const (
	testAgreementID = "agr_visit_tests"
	testVisitID     = "vis_existing"
)

func existingAgreement(t *testing.T, status agreementvo.AgreementStatus, addons []*agreement.AgreementAddon) *agreement.Agreement {
	t.Helper()
	price := decimal.RequireFromString("8500")
	a, err := agreement.ReconstructAgreement(
		testAgreementID, "SA-00012-2026", "inst_1",
		agreementvo.AgreementTypeStandard, status, agreementvo.SLALevelStandard,
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), nil,
		price, &price, nil,
		false, 2, "", "", "",
		addons, nil, nil, nil,
		1, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return a
}

// existingVisit builds visit number n in the given status. Started visits began
// 90 minutes ago.
func existingVisit(t *testing.T, status vo.VisitStatus, n int) *visit.Visit {
	t.Helper()
	scheduled := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Minute)
	end := scheduled.Add(2 * time.Hour)
	var started, completed *time.Time
	if status == vo.VisitStatusInProgress || status == vo.VisitStatusCompleted {
		s := time.Now().UTC().Add(-90 * time.Minute)
		started = &s
	}
	if status == vo.VisitStatusCompleted {
		c := time.Now().UTC()
		completed = &c
	}
	v, err := visit.ReconstructVisit(
		testVisitID, testAgreementID, "tech_1",
		n, scheduled, &end,
		status, vo.VisitTypeRoutine,
		started, completed, nil,
		"", nil,
		nil, completed, nil, nil,
		3, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return v
}
