package usecases

import (
	stderrors "errors"

	"solarops/internal/domain/agreement"
	"solarops/internal/domain/installation"
	"solarops/internal/shared/errors"
)

// mapDomainError translates agreement domain failures into application errors.
// Anything unrecognized becomes an internal error with a generic message.
func mapDomainError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	switch {
	case stderrors.Is(err, agreement.ErrAgreementNotFound),
		stderrors.Is(err, agreement.ErrAddonProductNotFound),
		stderrors.Is(err, agreement.ErrServicePlanNotFound),
		stderrors.Is(err, installation.ErrInstallationNotFound):
		return errors.NewNotFoundError(err.Error())
	case stderrors.Is(err, agreement.ErrInvalidStatusTransition),
		stderrors.Is(err, agreement.ErrAgreementNotEditable):
		return errors.NewInvalidStateError(err.Error())
	case stderrors.Is(err, agreement.ErrConcurrentModification),
		stderrors.Is(err, agreement.ErrNumberAlreadyAssigned),
		errors.IsDuplicateError(err):
		return errors.NewConflictError("agreement was modified concurrently, please retry")
	case stderrors.Is(err, agreement.ErrAddonProductInactive),
		stderrors.Is(err, agreement.ErrInvalidPrice),
		stderrors.Is(err, agreement.ErrInvalidDiscount),
		stderrors.Is(err, agreement.ErrInvalidQuantity),
		stderrors.Is(err, agreement.ErrInvalidVisitFrequency),
		stderrors.Is(err, agreement.ErrInvalidDateRange),
		stderrors.Is(err, agreement.ErrCancellationReason):
		return errors.NewValidationError(err.Error())
	}
	return errors.NewInternalError(fallback)
}
