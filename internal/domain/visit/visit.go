package visit

import (
	"fmt"
	"math"
	"strings"
	"time"

	"solarops/internal/domain/shared/events"
	vo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/id"
)

// Visit is one maintenance appointment under an agreement.
type Visit struct {
	id                 string
	agreementID        string
	technicianID       string
	visitNumber        int
	scheduledDate      time.Time
	scheduledEndDate   *time.Time
	status             vo.VisitStatus
	visitType          vo.VisitType
	actualStartDate    *time.Time
	actualEndDate      *time.Time
	durationMinutes    *int
	notes              string
	customerSignature  *string
	signedAt           *time.Time
	completedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason *string
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	events             []events.DomainEvent
}

// NewVisit creates a SCHEDULED visit. A missing scheduled end is derived from the
// visit type's expected duration.
func NewVisit(
	agreementID, technicianID string,
	visitNumber int,
	scheduledDate time.Time,
	scheduledEndDate *time.Time,
	visitType vo.VisitType,
	notes string,
) (*Visit, error) {
	if agreementID == "" {
		return nil, fmt.Errorf("agreement ID is required")
	}
	if technicianID == "" {
		return nil, fmt.Errorf("technician ID is required")
	}
	if visitNumber < 1 {
		return nil, fmt.Errorf("visit number must be at least 1")
	}
	if !visitType.IsValid() {
		return nil, fmt.Errorf("invalid visit type: %s", visitType)
	}
	end, err := scheduleWindow(scheduledDate, scheduledEndDate, visitType.ExpectedDuration())
	if err != nil {
		return nil, err
	}

	visitID, err := id.New(id.PrefixVisit)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Visit{
		id:               visitID,
		agreementID:      agreementID,
		technicianID:     technicianID,
		visitNumber:      visitNumber,
		scheduledDate:    scheduledDate,
		scheduledEndDate: end,
		status:           vo.VisitStatusScheduled,
		visitType:        visitType,
		notes:            notes,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func scheduleWindow(start time.Time, end *time.Time, fallback time.Duration) (*time.Time, error) {
	if start.IsZero() {
		return nil, fmt.Errorf("%w: scheduled date is required", ErrInvalidSchedule)
	}
	if end == nil {
		e := start.Add(fallback)
		return &e, nil
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: scheduled end must be after scheduled start", ErrInvalidSchedule)
	}
	return end, nil
}

// ReconstructVisit rebuilds a visit from persistence.
func ReconstructVisit(
	visitID, agreementID, technicianID string,
	visitNumber int,
	scheduledDate time.Time,
	scheduledEndDate *time.Time,
	status vo.VisitStatus,
	visitType vo.VisitType,
	actualStartDate, actualEndDate *time.Time,
	durationMinutes *int,
	notes string,
	customerSignature *string,
	signedAt, completedAt, cancelledAt *time.Time,
	cancellationReason *string,
	version int,
	createdAt, updatedAt time.Time,
) (*Visit, error) {
	if visitID == "" {
		return nil, fmt.Errorf("visit ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid visit status: %s", status)
	}
	return &Visit{
		id:                 visitID,
		agreementID:        agreementID,
		technicianID:       technicianID,
		visitNumber:        visitNumber,
		scheduledDate:      scheduledDate,
		scheduledEndDate:   scheduledEndDate,
		status:             status,
		visitType:          visitType,
		actualStartDate:    actualStartDate,
		actualEndDate:      actualEndDate,
		durationMinutes:    durationMinutes,
		notes:              notes,
		customerSignature:  customerSignature,
		signedAt:           signedAt,
		completedAt:        completedAt,
		cancelledAt:        cancelledAt,
		cancellationReason: cancellationReason,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (v *Visit) ID() string                   { return v.id }
func (v *Visit) AgreementID() string          { return v.agreementID }
func (v *Visit) TechnicianID() string         { return v.technicianID }
func (v *Visit) VisitNumber() int             { return v.visitNumber }
func (v *Visit) ScheduledDate() time.Time     { return v.scheduledDate }
func (v *Visit) ScheduledEndDate() *time.Time { return v.scheduledEndDate }
func (v *Visit) Status() vo.VisitStatus       { return v.status }
func (v *Visit) VisitType() vo.VisitType      { return v.visitType }
func (v *Visit) ActualStartDate() *time.Time  { return v.actualStartDate }
func (v *Visit) ActualEndDate() *time.Time    { return v.actualEndDate }
func (v *Visit) DurationMinutes() *int        { return v.durationMinutes }
func (v *Visit) Notes() string                { return v.notes }
func (v *Visit) CustomerSignature() *string   { return v.customerSignature }
func (v *Visit) SignedAt() *time.Time         { return v.signedAt }
func (v *Visit) CompletedAt() *time.Time      { return v.completedAt }
func (v *Visit) CancelledAt() *time.Time      { return v.cancelledAt }
func (v *Visit) CancellationReason() *string  { return v.cancellationReason }
func (v *Visit) Version() int                 { return v.version }
func (v *Visit) CreatedAt() time.Time         { return v.createdAt }
func (v *Visit) UpdatedAt() time.Time         { return v.updatedAt }

// AcceptsChecklists reports whether new checklists may be attached.
func (v *Visit) AcceptsChecklists() bool {
	return !v.status.IsTerminal()
}

func (v *Visit) transitionTo(next vo.VisitStatus, now time.Time) error {
	if !v.status.CanTransitionTo(next) {
		return ErrInvalidTransition(v.status.String(), next.String())
	}
	v.status = next
	v.updatedAt = now
	return nil
}

// Start moves a planned visit to IN_PROGRESS and records the actual start.
func (v *Visit) Start(now time.Time) error {
	if err := v.transitionTo(vo.VisitStatusInProgress, now); err != nil {
		return err
	}
	v.actualStartDate = &now
	return nil
}

// Complete closes an IN_PROGRESS visit. openChecklists is the number of the
// visit's checklists that are not COMPLETED; any open checklist blocks completion.
func (v *Visit) Complete(openChecklists int, now time.Time) error {
	if !v.status.CanTransitionTo(vo.VisitStatusCompleted) {
		return ErrInvalidTransition(v.status.String(), vo.VisitStatusCompleted.String())
	}
	if openChecklists > 0 {
		return ErrOpenChecklists(openChecklists)
	}
	if err := v.transitionTo(vo.VisitStatusCompleted, now); err != nil {
		return err
	}
	v.actualEndDate = &now
	v.completedAt = &now
	if v.actualStartDate != nil {
		minutes := DurationMinutes(*v.actualStartDate, now)
		v.durationMinutes = &minutes
	}
	v.recordEvent(&VisitCompletedEvent{
		BaseEvent:       events.NewBaseEvent(EventVisitCompleted, v.id, now),
		AgreementID:     v.agreementID,
		VisitNumber:     v.visitNumber,
		TechnicianID:    v.technicianID,
		CompletedAt:     now,
		DurationMinutes: derefInt(v.durationMinutes),
	})
	return nil
}

// DurationMinutes is the elapsed time rounded to the nearest whole minute.
func DurationMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// Cancel is legal from SCHEDULED, IN_PROGRESS and RESCHEDULED. The reason is
// kept in its own field, separate from notes.
func (v *Visit) Cancel(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancellationReason
	}
	if err := v.transitionTo(vo.VisitStatusCancelled, now); err != nil {
		return err
	}
	v.cancelledAt = &now
	v.cancellationReason = &reason
	v.recordEvent(&VisitCancelledEvent{
		BaseEvent:   events.NewBaseEvent(EventVisitCancelled, v.id, now),
		AgreementID: v.agreementID,
		Reason:      reason,
	})
	return nil
}

// Reschedule moves a planned visit to a new date and leaves it RESCHEDULED.
// Without an explicit end the previous window length is kept.
func (v *Visit) Reschedule(newDate time.Time, newEnd *time.Time, now time.Time) error {
	if !v.status.CanTransitionTo(vo.VisitStatusRescheduled) {
		return ErrInvalidTransition(v.status.String(), vo.VisitStatusRescheduled.String())
	}
	window := v.visitType.ExpectedDuration()
	if v.scheduledEndDate != nil {
		window = v.scheduledEndDate.Sub(v.scheduledDate)
	}
	end, err := scheduleWindow(newDate, newEnd, window)
	if err != nil {
		return err
	}
	if err := v.transitionTo(vo.VisitStatusRescheduled, now); err != nil {
		return err
	}
	v.scheduledDate = newDate
	v.scheduledEndDate = end
	return nil
}

// Reassign hands a planned visit to another technician.
func (v *Visit) Reassign(technicianID string, now time.Time) error {
	if technicianID == "" {
		return fmt.Errorf("technician ID is required")
	}
	if !v.status.IsPlanned() {
		return fmt.Errorf("%w: cannot reassign a visit that is %s", ErrInvalidStatusTransition, v.status)
	}
	v.technicianID = technicianID
	v.updatedAt = now
	return nil
}

// RecordSignature stores the customer's sign-off on a started or completed visit.
func (v *Visit) RecordSignature(signature string, now time.Time) error {
	if strings.TrimSpace(signature) == "" {
		return fmt.Errorf("signature is required")
	}
	if v.status != vo.VisitStatusInProgress && v.status != vo.VisitStatusCompleted {
		return ErrSignatureNotAllowed
	}
	v.customerSignature = &signature
	v.signedAt = &now
	v.updatedAt = now
	return nil
}

// UpdateNotes replaces the visit notes while the visit is not cancelled.
func (v *Visit) UpdateNotes(notes string, now time.Time) error {
	if v.status == vo.VisitStatusCancelled {
		return ErrVisitClosed
	}
	v.notes = notes
	v.updatedAt = now
	return nil
}

// IncrementVersion is called by the repository after a successful optimistic update.
func (v *Visit) IncrementVersion() {
	v.version++
}

func (v *Visit) recordEvent(e events.DomainEvent) {
	v.events = append(v.events, e)
}

// GetEvents returns and clears the recorded domain events.
func (v *Visit) GetEvents() []events.DomainEvent {
	out := v.events
	v.events = nil
	return out
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
