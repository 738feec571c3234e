package usecases

import (
	"context"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type ActivateAgreementCommand struct {
	AgreementID string
}

type ActivateAgreementUseCase struct {
	agreementRepo agreement.Repository
	publisher     events.EventPublisher
	logger        logger.Interface
}

func NewActivateAgreementUseCase(
	agreementRepo agreement.Repository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ActivateAgreementUseCase {
	return &ActivateAgreementUseCase{
		agreementRepo: agreementRepo,
		publisher:     publisher,
		logger:        logger,
	}
}

func (uc *ActivateAgreementUseCase) Execute(ctx context.Context, cmd ActivateAgreementCommand) (*dto.AgreementDTO, error) {
	uc.logger.Infow("executing activate agreement use case", "agreement_id", cmd.AgreementID)

	if cmd.AgreementID == "" {
		return nil, errors.NewValidationError("agreement ID is required")
	}

	a, err := uc.agreementRepo.GetByID(ctx, cmd.AgreementID)
	if err != nil {
		uc.logger.Errorw("failed to get agreement", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to get agreement")
	}

	if err := a.Activate(biztime.NowUTC()); err != nil {
		uc.logger.Warnw("agreement cannot be activated", "agreement_id", cmd.AgreementID, "status", a.Status(), "error", err)
		return nil, mapDomainError(err, "failed to activate agreement")
	}

	if err := uc.agreementRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to update agreement", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to update agreement")
	}

	if err := uc.publisher.PublishAll(a.GetEvents()); err != nil {
		uc.logger.Warnw("failed to publish agreement events", "agreement_id", a.ID(), "error", err)
	}

	uc.logger.Infow("agreement activated successfully", "agreement_id", a.ID(), "agreement_number", a.AgreementNumber())
	return dto.ToAgreementDTO(a, nil), nil
}
