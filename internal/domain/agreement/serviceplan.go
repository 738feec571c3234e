package agreement

import (
	"fmt"
	"time"

	"solarops/internal/shared/biztime"
	"solarops/internal/shared/id"
)

// ServicePlan is the scheduling state derived from an agreement's visit frequency.
type ServicePlan struct {
	id             string
	agreementID    string
	visitFrequency int
	nextVisitDate  time.Time
	seasonalAdjust bool
	createdAt      time.Time
	updatedAt      time.Time
}

// NewServicePlan schedules the first visit one interval after startDate.
func NewServicePlan(agreementID string, visitFrequency int, startDate time.Time, seasonalAdjust bool) (*ServicePlan, error) {
	if err := validateFrequency(visitFrequency); err != nil {
		return nil, err
	}

	planID, err := id.New(id.PrefixServicePlan)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	p := &ServicePlan{
		id:             planID,
		agreementID:    agreementID,
		visitFrequency: visitFrequency,
		seasonalAdjust: seasonalAdjust,
		createdAt:      now,
		updatedAt:      now,
	}
	p.nextVisitDate = p.nextAfter(startDate)
	return p, nil
}

// ReconstructServicePlan reconstructs a service plan from persistence
func ReconstructServicePlan(
	planID, agreementID string,
	visitFrequency int,
	nextVisitDate time.Time,
	seasonalAdjust bool,
	createdAt, updatedAt time.Time,
) (*ServicePlan, error) {
	if planID == "" {
		return nil, fmt.Errorf("service plan ID is required")
	}
	return &ServicePlan{
		id:             planID,
		agreementID:    agreementID,
		visitFrequency: visitFrequency,
		nextVisitDate:  nextVisitDate,
		seasonalAdjust: seasonalAdjust,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (p *ServicePlan) ID() string               { return p.id }
func (p *ServicePlan) AgreementID() string      { return p.agreementID }
func (p *ServicePlan) VisitFrequency() int      { return p.visitFrequency }
func (p *ServicePlan) NextVisitDate() time.Time { return p.nextVisitDate }
func (p *ServicePlan) SeasonalAdjust() bool     { return p.seasonalAdjust }
func (p *ServicePlan) CreatedAt() time.Time     { return p.createdAt }
func (p *ServicePlan) UpdatedAt() time.Time     { return p.updatedAt }

// IntervalMonths is the whole number of months between visits.
func IntervalMonths(visitFrequency int) int {
	if visitFrequency < 1 {
		return 12
	}
	return 12 / visitFrequency
}

// Advance moves the next visit one interval past from, usually the completion
// date of the visit that just finished.
func (p *ServicePlan) Advance(from time.Time) {
	p.nextVisitDate = p.nextAfter(from)
	p.updatedAt = biztime.NowUTC()
}

// ChangeFrequency re-plans the next visit from anchor with the new interval.
func (p *ServicePlan) ChangeFrequency(visitFrequency int, anchor time.Time) error {
	if err := validateFrequency(visitFrequency); err != nil {
		return err
	}
	p.visitFrequency = visitFrequency
	p.nextVisitDate = p.nextAfter(anchor)
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *ServicePlan) nextAfter(from time.Time) time.Time {
	next := biztime.AddMonths(from, IntervalMonths(p.visitFrequency))
	if p.seasonalAdjust {
		next = skipWinter(next)
	}
	return next
}

// skipWinter moves dates in December to February onto 1 March, when panels are
// reachable again.
func skipWinter(t time.Time) time.Time {
	local := t.In(biztime.Location())
	year := local.Year()
	switch local.Month() {
	case time.December:
		year++
	case time.January, time.February:
	default:
		return t
	}
	return time.Date(year, time.March, 1, local.Hour(), local.Minute(), 0, 0, biztime.Location()).UTC()
}

func validateFrequency(f int) error {
	if f < 1 || f > 12 {
		return ErrInvalidVisitFrequency
	}
	return nil
}
