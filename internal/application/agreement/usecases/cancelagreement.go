package usecases

import (
	"context"
	"strings"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type CancelAgreementCommand struct {
	AgreementID string
	Reason      string
}

type CancelAgreementUseCase struct {
	agreementRepo agreement.Repository
	publisher     events.EventPublisher
	logger        logger.Interface
}

func NewCancelAgreementUseCase(
	agreementRepo agreement.Repository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CancelAgreementUseCase {
	return &CancelAgreementUseCase{
		agreementRepo: agreementRepo,
		publisher:     publisher,
		logger:        logger,
	}
}

func (uc *CancelAgreementUseCase) Execute(ctx context.Context, cmd CancelAgreementCommand) (*dto.AgreementDTO, error) {
	uc.logger.Infow("executing cancel agreement use case", "agreement_id", cmd.AgreementID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid cancel agreement command", "error", err)
		return nil, err
	}

	a, err := uc.agreementRepo.GetByID(ctx, cmd.AgreementID)
	if err != nil {
		uc.logger.Errorw("failed to get agreement", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to get agreement")
	}

	if err := a.Cancel(cmd.Reason, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("agreement cannot be cancelled", "agreement_id", cmd.AgreementID, "status", a.Status(), "error", err)
		return nil, mapDomainError(err, "failed to cancel agreement")
	}

	if err := uc.agreementRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to update agreement", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to update agreement")
	}

	if err := uc.publisher.PublishAll(a.GetEvents()); err != nil {
		uc.logger.Warnw("failed to publish agreement events", "agreement_id", a.ID(), "error", err)
	}

	uc.logger.Infow("agreement cancelled successfully", "agreement_id", a.ID())
	return dto.ToAgreementDTO(a, nil), nil
}

func (uc *CancelAgreementUseCase) validateCommand(cmd CancelAgreementCommand) error {
	if cmd.AgreementID == "" {
		return errors.NewValidationError("agreement ID is required")
	}
	if strings.TrimSpace(cmd.Reason) == "" {
		return errors.NewValidationError("cancellation reason is required")
	}
	return nil
}
