package usecases

import (
	stderrors "errors"

	"solarops/internal/domain/agreement"
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
	case stderrors.Is(err, visit.ErrVisitNotFound),
		stderrors.Is(err, agreement.ErrAgreementNotFound):
		return errors.NewNotFoundError(err.Error())
	case stderrors.Is(err, visit.ErrInvalidStatusTransition),
		stderrors.Is(err, visit.ErrChecklistsIncomplete),
		stderrors.Is(err, visit.ErrSignatureNotAllowed),
		stderrors.Is(err, visit.ErrVisitClosed):
		return errors.NewInvalidStateError(err.Error())
	case stderrors.Is(err, visit.ErrCancellationReason),
		stderrors.Is(err, visit.ErrInvalidSchedule):
		return errors.NewValidationError(err.Error())
	case stderrors.Is(err, visit.ErrConcurrentModification),
		errors.IsDuplicateError(err):
		return errors.NewConflictError("visit was modified concurrently, please retry")
	}
	return errors.NewInternalError(fallback)
}
