package valueobjects

import "fmt"

type VisitStatus string

const (
	VisitStatusScheduled   VisitStatus = "SCHEDULED"
	VisitStatusInProgress  VisitStatus = "IN_PROGRESS"
	VisitStatusCompleted   VisitStatus = "COMPLETED"
	VisitStatusCancelled   VisitStatus = "CANCELLED"
	VisitStatusRescheduled VisitStatus = "RESCHEDULED"
)

var validVisitStatuses = map[VisitStatus]bool{
	VisitStatusScheduled:   true,
	VisitStatusInProgress:  true,
	VisitStatusCompleted:   true,
	VisitStatusCancelled:   true,
	VisitStatusRescheduled: true,
}

// RESCHEDULED is both the result of the reschedule action and a resting state
// that can be rescheduled again. A visit must be started before it can complete.
var visitStatusTransitions = map[VisitStatus][]VisitStatus{
	VisitStatusScheduled: {
		VisitStatusInProgress,
		VisitStatusCancelled,
		VisitStatusRescheduled,
	},
	VisitStatusInProgress: {
		VisitStatusCompleted,
		VisitStatusCancelled,
	},
	VisitStatusRescheduled: {
		VisitStatusInProgress,
		VisitStatusCancelled,
		VisitStatusRescheduled,
	},
	VisitStatusCompleted: {},
	VisitStatusCancelled: {},
}

func (s VisitStatus) String() string {
	return string(s)
}

func (s VisitStatus) IsValid() bool {
	return validVisitStatuses[s]
}

func (s VisitStatus) CanTransitionTo(next VisitStatus) bool {
	for _, allowed := range visitStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s VisitStatus) IsTerminal() bool {
	return s == VisitStatusCompleted || s == VisitStatusCancelled
}

// IsPlanned reports whether the visit has not started yet.
func (s VisitStatus) IsPlanned() bool {
	return s == VisitStatusScheduled || s == VisitStatusRescheduled
}

func NewVisitStatus(s string) (VisitStatus, error) {
	status := VisitStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid visit status: %s", s)
	}
	return status, nil
}
