package agreement

import (
	"errors"
	"fmt"
)

var (
	ErrAgreementNotFound       = errors.New("agreement not found")
	ErrAddonProductNotFound    = errors.New("add-on product not found")
	ErrAddonProductInactive    = errors.New("add-on product inactive")
	ErrServicePlanNotFound     = errors.New("service plan not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrAgreementNotEditable    = errors.New("agreement is not editable")
	ErrNumberAlreadyAssigned   = errors.New("agreement number already assigned")
	ErrInvalidAgreementNumber  = errors.New("invalid agreement number")
	ErrInvalidPrice            = errors.New("invalid price")
	ErrInvalidDiscount         = errors.New("discount must be between 0 and 100")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrInvalidVisitFrequency   = errors.New("visit frequency must be between 1 and 12")
	ErrInvalidDateRange        = errors.New("end date must be after start date")
	ErrCancellationReason      = errors.New("cancellation reason is required")
	ErrConcurrentModification  = errors.New("agreement was modified concurrently")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}
