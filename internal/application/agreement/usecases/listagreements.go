package usecases

import (
	"context"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

type ListAgreementsQuery struct {
	InstallationID string
	Status         string
	AgreementType  string
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

type ListAgreementsResult struct {
	Agreements []*dto.AgreementDTO `json:"agreements"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

type ListAgreementsUseCase struct {
	agreementRepo agreement.Repository
	logger        logger.Interface
}

func NewListAgreementsUseCase(agreementRepo agreement.Repository, logger logger.Interface) *ListAgreementsUseCase {
	return &ListAgreementsUseCase{
		agreementRepo: agreementRepo,
		logger:        logger,
	}
}

func (uc *ListAgreementsUseCase) Execute(ctx context.Context, query ListAgreementsQuery) (*ListAgreementsResult, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)
	filter := agreement.ListFilter{
		InstallationID: query.InstallationID,
		Page:           p.Page,
		PageSize:       p.PageSize,
		SortBy:         query.SortBy,
		SortOrder:      query.SortOrder,
	}
	if query.Status != "" {
		status, err := vo.NewAgreementStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.AgreementType != "" {
		t, err := vo.NewAgreementType(query.AgreementType)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.AgreementType = &t
	}

	agreements, total, err := uc.agreementRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list agreements", "error", err)
		return nil, errors.NewInternalError("failed to list agreements")
	}

	return &ListAgreementsResult{
		Agreements: dto.ToAgreementDTOList(agreements),
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}, nil
}
