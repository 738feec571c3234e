package visit

import (
	"errors"
	"fmt"
)

var (
	ErrVisitNotFound           = errors.New("visit not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrChecklistsIncomplete    = errors.New("visit has checklists that are not completed")
	ErrCancellationReason      = errors.New("cancellation reason is required")
	ErrSignatureNotAllowed     = errors.New("customer signature can only be recorded on a started visit")
	ErrInvalidSchedule         = errors.New("invalid schedule")
	ErrVisitClosed             = errors.New("visit is closed")
	ErrConcurrentModification  = errors.New("visit was modified concurrently")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}

// ErrOpenChecklists reports how many checklists block completion.
func ErrOpenChecklists(count int) error {
	noun := "checklists are"
	if count == 1 {
		noun = "checklist is"
	}
	return fmt.Errorf("%w: %d %s not completed", ErrChecklistsIncomplete, count, noun)
}
