package agreement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/id"
)

// Agreement is the service agreement aggregate root. It owns its add-ons;
// the service plan and visits are separate aggregates keyed by agreement ID.
type Agreement struct {
	id                 string
	agreementNumber    string
	installationID     string
	agreementType      vo.AgreementType
	status             vo.AgreementStatus
	slaLevel           vo.SLALevel
	startDate          time.Time
	endDate            *time.Time
	basePrice          decimal.Decimal
	calculatedPrice    *decimal.Decimal
	discountPercent    *decimal.Decimal
	autoRenew          bool
	visitFrequency     int
	preferredVisitDay  string
	preferredVisitTime string
	notes              string
	addons             []*AgreementAddon
	signedAt           *time.Time
	cancelledAt        *time.Time
	cancellationReason *string
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	events             []events.DomainEvent
}

// NewAgreementParams are the inputs of a new agreement. A nil BasePrice and a
// zero VisitFrequency fall back to the agreement type's defaults. An explicit
// base price must be positive.
type NewAgreementParams struct {
	InstallationID     string
	AgreementType      vo.AgreementType
	SLALevel           vo.SLALevel
	StartDate          time.Time
	EndDate            *time.Time
	BasePrice          *decimal.Decimal
	DiscountPercent    *decimal.Decimal
	AutoRenew          bool
	VisitFrequency     int
	PreferredVisitDay  string
	PreferredVisitTime string
	Notes              string
}

// NewAgreement creates a DRAFT agreement. The number is assigned separately once
// a sequence value has been allocated.
func NewAgreement(p NewAgreementParams) (*Agreement, error) {
	if p.InstallationID == "" {
		return nil, fmt.Errorf("installation ID is required")
	}
	if !p.AgreementType.IsValid() {
		return nil, fmt.Errorf("invalid agreement type: %s", p.AgreementType)
	}
	if p.SLALevel == "" {
		p.SLALevel = vo.SLALevelStandard
	}
	if !p.SLALevel.IsValid() {
		return nil, fmt.Errorf("invalid SLA level: %s", p.SLALevel)
	}
	if p.StartDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}
	if p.EndDate != nil && !p.EndDate.After(p.StartDate) {
		return nil, ErrInvalidDateRange
	}
	basePrice := p.AgreementType.DefaultBasePrice()
	if p.BasePrice != nil {
		basePrice = *p.BasePrice
	}
	if !basePrice.IsPositive() {
		return nil, fmt.Errorf("%w: base price must be positive", ErrInvalidPrice)
	}
	if err := validateDiscount(p.DiscountPercent); err != nil {
		return nil, err
	}
	if p.VisitFrequency == 0 {
		p.VisitFrequency = p.AgreementType.DefaultVisitFrequency()
	}
	if err := validateFrequency(p.VisitFrequency); err != nil {
		return nil, err
	}

	agreementID, err := id.New(id.PrefixAgreement)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Agreement{
		id:                 agreementID,
		installationID:     p.InstallationID,
		agreementType:      p.AgreementType,
		status:             vo.AgreementStatusDraft,
		slaLevel:           p.SLALevel,
		startDate:          p.StartDate,
		endDate:            p.EndDate,
		basePrice:          basePrice,
		discountPercent:    p.DiscountPercent,
		autoRenew:          p.AutoRenew,
		visitFrequency:     p.VisitFrequency,
		preferredVisitDay:  p.PreferredVisitDay,
		preferredVisitTime: p.PreferredVisitTime,
		notes:              p.Notes,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructAgreement rebuilds an agreement from persistence.
func ReconstructAgreement(
	agreementID, agreementNumber, installationID string,
	agreementType vo.AgreementType,
	status vo.AgreementStatus,
	slaLevel vo.SLALevel,
	startDate time.Time,
	endDate *time.Time,
	basePrice decimal.Decimal,
	calculatedPrice, discountPercent *decimal.Decimal,
	autoRenew bool,
	visitFrequency int,
	preferredVisitDay, preferredVisitTime, notes string,
	addons []*AgreementAddon,
	signedAt, cancelledAt *time.Time,
	cancellationReason *string,
	version int,
	createdAt, updatedAt time.Time,
) (*Agreement, error) {
	if agreementID == "" {
		return nil, fmt.Errorf("agreement ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid agreement status: %s", status)
	}
	return &Agreement{
		id:                 agreementID,
		agreementNumber:    agreementNumber,
		installationID:     installationID,
		agreementType:      agreementType,
		status:             status,
		slaLevel:           slaLevel,
		startDate:          startDate,
		endDate:            endDate,
		basePrice:          basePrice,
		calculatedPrice:    calculatedPrice,
		discountPercent:    discountPercent,
		autoRenew:          autoRenew,
		visitFrequency:     visitFrequency,
		preferredVisitDay:  preferredVisitDay,
		preferredVisitTime: preferredVisitTime,
		notes:              notes,
		addons:             addons,
		signedAt:           signedAt,
		cancelledAt:        cancelledAt,
		cancellationReason: cancellationReason,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (a *Agreement) ID() string                        { return a.id }
func (a *Agreement) AgreementNumber() string           { return a.agreementNumber }
func (a *Agreement) InstallationID() string            { return a.installationID }
func (a *Agreement) AgreementType() vo.AgreementType   { return a.agreementType }
func (a *Agreement) Status() vo.AgreementStatus        { return a.status }
func (a *Agreement) SLALevel() vo.SLALevel             { return a.slaLevel }
func (a *Agreement) StartDate() time.Time              { return a.startDate }
func (a *Agreement) EndDate() *time.Time               { return a.endDate }
func (a *Agreement) BasePrice() decimal.Decimal        { return a.basePrice }
func (a *Agreement) CalculatedPrice() *decimal.Decimal { return a.calculatedPrice }
func (a *Agreement) DiscountPercent() *decimal.Decimal { return a.discountPercent }
func (a *Agreement) AutoRenew() bool                   { return a.autoRenew }
func (a *Agreement) VisitFrequency() int               { return a.visitFrequency }
func (a *Agreement) PreferredVisitDay() string         { return a.preferredVisitDay }
func (a *Agreement) PreferredVisitTime() string        { return a.preferredVisitTime }
func (a *Agreement) Notes() string                     { return a.notes }
func (a *Agreement) Addons() []*AgreementAddon         { return a.addons }
func (a *Agreement) SignedAt() *time.Time              { return a.signedAt }
func (a *Agreement) CancelledAt() *time.Time           { return a.cancelledAt }
func (a *Agreement) CancellationReason() *string       { return a.cancellationReason }
func (a *Agreement) Version() int                      { return a.version }
func (a *Agreement) CreatedAt() time.Time              { return a.createdAt }
func (a *Agreement) UpdatedAt() time.Time              { return a.updatedAt }

// AssignNumber sets the agreement number once.
func (a *Agreement) AssignNumber(number string) error {
	if a.agreementNumber != "" {
		return ErrNumberAlreadyAssigned
	}
	if _, err := ParseAgreementSequence(number); err != nil {
		return err
	}
	a.agreementNumber = number
	a.recordEvent(&AgreementCreatedEvent{
		BaseEvent:       events.NewBaseEvent(EventAgreementCreated, a.id, biztime.NowUTC()),
		AgreementNumber: number,
		InstallationID:  a.installationID,
	})
	return nil
}

// AddonSelections returns the pricing view of the agreement's add-ons.
func (a *Agreement) AddonSelections() []AddonSelection {
	out := make([]AddonSelection, len(a.addons))
	for i, addon := range a.addons {
		out[i] = addon.Selection()
	}
	return out
}

// AddonIDs returns the distinct catalog IDs referenced by the agreement.
func (a *Agreement) AddonIDs() []string {
	seen := make(map[string]bool, len(a.addons))
	ids := make([]string, 0, len(a.addons))
	for _, addon := range a.addons {
		if !seen[addon.addonID] {
			seen[addon.addonID] = true
			ids = append(ids, addon.addonID)
		}
	}
	return ids
}

// PriceInput builds the pricing input for the agreement's current parameters.
func (a *Agreement) PriceInput(products map[string]*AddonProduct) PriceInput {
	return PriceInput{
		BasePrice:       a.basePrice,
		DiscountPercent: a.discountPercent,
		Addons:          a.AddonSelections(),
		Products:        products,
	}
}

// Reprice recomputes and caches the annual price excluding VAT.
func (a *Agreement) Reprice(products map[string]*AddonProduct) PriceBreakdown {
	breakdown := CalculatePrice(a.PriceInput(products))
	total := breakdown.Total
	a.calculatedPrice = &total
	a.updatedAt = biztime.NowUTC()
	return breakdown
}

// ReplaceAddons swaps the full add-on set. There is no merge with the previous set.
func (a *Agreement) ReplaceAddons(addons []*AgreementAddon) error {
	if a.status.IsTerminal() {
		return fmt.Errorf("%w: status is %s", ErrAgreementNotEditable, a.status)
	}
	for _, addon := range addons {
		addon.agreementID = a.id
	}
	a.addons = addons
	a.updatedAt = biztime.NowUTC()
	return nil
}

// AgreementPatch is a partial update. Nil fields are left unchanged.
type AgreementPatch struct {
	AgreementType      *vo.AgreementType
	SLALevel           *vo.SLALevel
	StartDate          *time.Time
	EndDate            *time.Time
	ClearEndDate       bool
	BasePrice          *decimal.Decimal
	DiscountPercent    *decimal.Decimal
	ClearDiscount      bool
	AutoRenew          *bool
	VisitFrequency     *int
	PreferredVisitDay  *string
	PreferredVisitTime *string
	Notes              *string
}

// PatchResult tells the caller which derived state must be recomputed.
type PatchResult struct {
	RepriceNeeded    bool
	FrequencyChanged bool
}

// Update applies a partial update. Validation happens before any field changes.
func (a *Agreement) Update(p AgreementPatch) (PatchResult, error) {
	var res PatchResult
	if a.status.IsTerminal() {
		return res, fmt.Errorf("%w: status is %s", ErrAgreementNotEditable, a.status)
	}
	if p.AgreementType != nil && !p.AgreementType.IsValid() {
		return res, fmt.Errorf("invalid agreement type: %s", *p.AgreementType)
	}
	if p.SLALevel != nil && !p.SLALevel.IsValid() {
		return res, fmt.Errorf("invalid SLA level: %s", *p.SLALevel)
	}
	if p.BasePrice != nil && !p.BasePrice.IsPositive() {
		return res, fmt.Errorf("%w: base price must be positive", ErrInvalidPrice)
	}
	if err := validateDiscount(p.DiscountPercent); err != nil {
		return res, err
	}
	if p.VisitFrequency != nil {
		if err := validateFrequency(*p.VisitFrequency); err != nil {
			return res, err
		}
	}
	start := a.startDate
	if p.StartDate != nil {
		start = *p.StartDate
	}
	end := a.endDate
	if p.ClearEndDate {
		end = nil
	} else if p.EndDate != nil {
		end = p.EndDate
	}
	if end != nil && !end.After(start) {
		return res, ErrInvalidDateRange
	}

	if p.AgreementType != nil {
		a.agreementType = *p.AgreementType
	}
	if p.SLALevel != nil {
		a.slaLevel = *p.SLALevel
	}
	a.startDate = start
	a.endDate = end
	if p.BasePrice != nil && !p.BasePrice.Equal(a.basePrice) {
		a.basePrice = *p.BasePrice
		res.RepriceNeeded = true
	}
	if p.ClearDiscount {
		res.RepriceNeeded = res.RepriceNeeded || a.discountPercent != nil
		a.discountPercent = nil
	} else if p.DiscountPercent != nil {
		if a.discountPercent == nil || !a.discountPercent.Equal(*p.DiscountPercent) {
			res.RepriceNeeded = true
		}
		a.discountPercent = p.DiscountPercent
	}
	if p.AutoRenew != nil {
		a.autoRenew = *p.AutoRenew
	}
	if p.VisitFrequency != nil && *p.VisitFrequency != a.visitFrequency {
		a.visitFrequency = *p.VisitFrequency
		res.FrequencyChanged = true
	}
	if p.PreferredVisitDay != nil {
		a.preferredVisitDay = *p.PreferredVisitDay
	}
	if p.PreferredVisitTime != nil {
		a.preferredVisitTime = *p.PreferredVisitTime
	}
	if p.Notes != nil {
		a.notes = *p.Notes
	}
	a.updatedAt = biztime.NowUTC()
	return res, nil
}

func (a *Agreement) transitionTo(next vo.AgreementStatus) error {
	if !a.status.CanTransitionTo(next) {
		return ErrInvalidTransition(a.status.String(), next.String())
	}
	a.status = next
	a.updatedAt = biztime.NowUTC()
	return nil
}

// SubmitForApproval moves a draft to PENDING_APPROVAL.
func (a *Agreement) SubmitForApproval() error {
	return a.transitionTo(vo.AgreementStatusPendingApproval)
}

// Activate is legal from DRAFT or PENDING_APPROVAL and stamps signedAt.
func (a *Agreement) Activate(now time.Time) error {
	if a.status != vo.AgreementStatusDraft && a.status != vo.AgreementStatusPendingApproval {
		return ErrInvalidTransition(a.status.String(), vo.AgreementStatusActive.String())
	}
	if err := a.transitionTo(vo.AgreementStatusActive); err != nil {
		return err
	}
	a.signedAt = &now
	a.recordEvent(&AgreementActivatedEvent{
		BaseEvent:       events.NewBaseEvent(EventAgreementActivated, a.id, now),
		AgreementNumber: a.agreementNumber,
		SignedAt:        now,
	})
	return nil
}

// Cancel is legal from any status other than CANCELLED. The reason is required.
func (a *Agreement) Cancel(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancellationReason
	}
	if err := a.transitionTo(vo.AgreementStatusCancelled); err != nil {
		return err
	}
	a.cancelledAt = &now
	a.cancellationReason = &reason
	a.recordEvent(&AgreementCancelledEvent{
		BaseEvent:       events.NewBaseEvent(EventAgreementCancelled, a.id, now),
		AgreementNumber: a.agreementNumber,
		Reason:          reason,
	})
	return nil
}

// Suspend pauses an ACTIVE agreement.
func (a *Agreement) Suspend() error {
	if a.status != vo.AgreementStatusActive {
		return ErrInvalidTransition(a.status.String(), vo.AgreementStatusSuspended.String())
	}
	return a.transitionTo(vo.AgreementStatusSuspended)
}

// Resume returns a SUSPENDED agreement to ACTIVE.
func (a *Agreement) Resume() error {
	if a.status != vo.AgreementStatusSuspended {
		return ErrInvalidTransition(a.status.String(), vo.AgreementStatusActive.String())
	}
	return a.transitionTo(vo.AgreementStatusActive)
}

// IsLapsed reports whether an ACTIVE or SUSPENDED agreement has passed its end date.
func (a *Agreement) IsLapsed(now time.Time) bool {
	if a.endDate == nil || a.endDate.After(now) {
		return false
	}
	return a.status == vo.AgreementStatusActive || a.status == vo.AgreementStatusSuspended
}

// Lapse handles an agreement past its end date: an ACTIVE agreement with autoRenew
// is extended by one year, anything else expires. It reports whether it renewed.
func (a *Agreement) Lapse(now time.Time) (bool, error) {
	if !a.IsLapsed(now) {
		return false, fmt.Errorf("agreement %s has not lapsed", a.agreementNumber)
	}
	if a.autoRenew && a.status == vo.AgreementStatusActive {
		next := a.endDate.AddDate(1, 0, 0)
		for !next.After(now) {
			next = next.AddDate(1, 0, 0)
		}
		a.endDate = &next
		a.updatedAt = now
		a.recordEvent(&AgreementLapsedEvent{
			BaseEvent:       events.NewBaseEvent(EventAgreementRenewed, a.id, now),
			AgreementNumber: a.agreementNumber,
			NewEndDate:      &next,
		})
		return true, nil
	}
	if err := a.transitionTo(vo.AgreementStatusExpired); err != nil {
		return false, err
	}
	a.recordEvent(&AgreementLapsedEvent{
		BaseEvent:       events.NewBaseEvent(EventAgreementExpired, a.id, now),
		AgreementNumber: a.agreementNumber,
	})
	return false, nil
}

// IncrementVersion is called by the repository after a successful optimistic update.
func (a *Agreement) IncrementVersion() {
	a.version++
}

func (a *Agreement) recordEvent(e events.DomainEvent) {
	a.events = append(a.events, e)
}

// GetEvents returns and clears the recorded domain events.
func (a *Agreement) GetEvents() []events.DomainEvent {
	out := a.events
	a.events = nil
	return out
}
