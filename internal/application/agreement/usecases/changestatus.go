package usecases

import (
	"context"
	"fmt"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

// StatusAction names the reversible lifecycle moves that carry no extra input.
type StatusAction string

const (
	StatusActionSubmit  StatusAction = "submit"
	StatusActionSuspend StatusAction = "suspend"
	StatusActionResume  StatusAction = "resume"
)

type ChangeAgreementStatusCommand struct {
	AgreementID string
	Action      StatusAction
}

type ChangeAgreementStatusUseCase struct {
	agreementRepo agreement.Repository
	logger        logger.Interface
}

func NewChangeAgreementStatusUseCase(
	agreementRepo agreement.Repository,
	logger logger.Interface,
) *ChangeAgreementStatusUseCase {
	return &ChangeAgreementStatusUseCase{
		agreementRepo: agreementRepo,
		logger:        logger,
	}
}

func (uc *ChangeAgreementStatusUseCase) Execute(ctx context.Context, cmd ChangeAgreementStatusCommand) (*dto.AgreementDTO, error) {
	uc.logger.Infow("executing change agreement status use case", "agreement_id", cmd.AgreementID, "action", cmd.Action)

	apply, err := uc.resolveAction(cmd)
	if err != nil {
		return nil, err
	}

	a, err := uc.agreementRepo.GetByID(ctx, cmd.AgreementID)
	if err != nil {
		uc.logger.Errorw("failed to get agreement", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to get agreement")
	}

	oldStatus := a.Status()
	if err := apply(a); err != nil {
		uc.logger.Warnw("agreement status change rejected", "agreement_id", cmd.AgreementID, "action", cmd.Action, "error", err)
		return nil, mapDomainError(err, "failed to change agreement status")
	}

	if err := uc.agreementRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to update agreement", "agreement_id", cmd.AgreementID, "error", err)
		return nil, mapDomainError(err, "failed to update agreement")
	}

	uc.logger.Infow("agreement status changed successfully", "agreement_id", a.ID(), "old_status", oldStatus, "new_status", a.Status())
	return dto.ToAgreementDTO(a, nil), nil
}

func (uc *ChangeAgreementStatusUseCase) resolveAction(cmd ChangeAgreementStatusCommand) (func(*agreement.Agreement) error, error) {
	if cmd.AgreementID == "" {
		return nil, errors.NewValidationError("agreement ID is required")
	}
	switch cmd.Action {
	case StatusActionSubmit:
		return (*agreement.Agreement).SubmitForApproval, nil
	case StatusActionSuspend:
		return (*agreement.Agreement).Suspend, nil
	case StatusActionResume:
		return (*agreement.Agreement).Resume, nil
	}
	return nil, errors.NewValidationError(fmt.Sprintf("unknown status action: %s", cmd.Action))
}
