package usecases

import (
	"context"
	stderrors "errors"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

// GetAgreementQuery looks an agreement up by ID or, when ID is empty, by number.
type GetAgreementQuery struct {
	AgreementID     string
	AgreementNumber string
}

type GetAgreementUseCase struct {
	agreementRepo agreement.Repository
	planRepo      agreement.ServicePlanRepository
	logger        logger.Interface
}

func NewGetAgreementUseCase(
	agreementRepo agreement.Repository,
	planRepo agreement.ServicePlanRepository,
	logger logger.Interface,
) *GetAgreementUseCase {
	return &GetAgreementUseCase{
		agreementRepo: agreementRepo,
		planRepo:      planRepo,
		logger:        logger,
	}
}

func (uc *GetAgreementUseCase) Execute(ctx context.Context, query GetAgreementQuery) (*dto.AgreementDTO, error) {
	var (
		a   *agreement.Agreement
		err error
	)
	switch {
	case query.AgreementID != "":
		a, err = uc.agreementRepo.GetByID(ctx, query.AgreementID)
	case query.AgreementNumber != "":
		a, err = uc.agreementRepo.GetByNumber(ctx, query.AgreementNumber)
	default:
		return nil, errors.NewValidationError("agreement ID or number is required")
	}
	if err != nil {
		if !stderrors.Is(err, agreement.ErrAgreementNotFound) {
			uc.logger.Errorw("failed to get agreement", "agreement_id", query.AgreementID, "error", err)
		}
		return nil, mapDomainError(err, "failed to get agreement")
	}

	plan, err := uc.planRepo.GetByAgreementID(ctx, a.ID())
	if err != nil && !stderrors.Is(err, agreement.ErrServicePlanNotFound) {
		uc.logger.Errorw("failed to get service plan", "agreement_id", a.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get service plan")
	}

	return dto.ToAgreementDTO(a, plan), nil
}
