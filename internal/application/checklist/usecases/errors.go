package usecases

import (
	stderrors "errors"

	"solarops/internal/domain/checklist"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/errors"
)

func mapDomainError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	switch {
	case stderrors.Is(err, checklist.ErrChecklistNotFound),
		stderrors.Is(err, checklist.ErrTemplateNotFound),
		stderrors.Is(err, checklist.ErrItemNotFound),
		stderrors.Is(err, visit.ErrVisitNotFound):
		return errors.NewNotFoundError(err.Error())
	case stderrors.Is(err, checklist.ErrInvalidStatusTransition),
		stderrors.Is(err, checklist.ErrChecklistCompleted),
		stderrors.Is(err, checklist.ErrMandatoryItemsOutstanding),
		stderrors.Is(err, checklist.ErrTemplateInactive),
		stderrors.Is(err, checklist.ErrTemplateSuperseded),
		stderrors.Is(err, visit.ErrVisitClosed):
		return errors.NewInvalidStateError(err.Error())
	case stderrors.Is(err, checklist.ErrInvalidTemplate),
		stderrors.Is(err, checklist.ErrInvalidItemUpdate):
		return errors.NewValidationError(err.Error())
	case stderrors.Is(err, checklist.ErrConcurrentModification):
		return errors.NewConflictError("checklist was modified concurrently, please retry")
	case errors.IsDuplicateError(err):
		return errors.NewConflictError("record already exists")
	}
	return errors.NewInternalError(fallback)
}
