package checklist

import (
	"errors"
	"fmt"
)

var (
	ErrChecklistNotFound         = errors.New("checklist not found")
	ErrTemplateNotFound          = errors.New("checklist template not found")
	ErrTemplateInactive          = errors.New("checklist template is not active")
	ErrTemplateSuperseded        = errors.New("checklist template has been superseded by a newer version")
	ErrInvalidTemplate           = errors.New("invalid checklist template")
	ErrItemNotFound              = errors.New("checklist item not found")
	ErrInvalidItemUpdate         = errors.New("invalid checklist item update")
	ErrInvalidStatusTransition   = errors.New("invalid status transition")
	ErrChecklistCompleted        = errors.New("checklist is already completed")
	ErrMandatoryItemsOutstanding = errors.New("mandatory checklist items are not answered")
	ErrConcurrentModification    = errors.New("checklist was modified concurrently")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}

// ErrOutstandingMandatory reports how many mandatory items block completion.
func ErrOutstandingMandatory(count int) error {
	noun := "items remain"
	if count == 1 {
		noun = "item remains"
	}
	return fmt.Errorf("%w: %d mandatory %s", ErrMandatoryItemsOutstanding, count, noun)
}
