package usecases

import (
	"context"
	"time"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

type ListVisitsQuery struct {
	AgreementID  string
	TechnicianID string
	Status       string
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListVisitsResult struct {
	Visits   []*dto.VisitDTO `json:"visits"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ListVisitsUseCase struct {
	visitRepo visit.Repository
	logger    logger.Interface
}

func NewListVisitsUseCase(visitRepo visit.Repository, logger logger.Interface) *ListVisitsUseCase {
	return &ListVisitsUseCase{
		visitRepo: visitRepo,
		logger:    logger,
	}
}

func (uc *ListVisitsUseCase) Execute(ctx context.Context, query ListVisitsQuery) (*ListVisitsResult, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)
	filter := visit.ListFilter{
		AgreementID:  query.AgreementID,
		TechnicianID: query.TechnicianID,
		From:         query.From,
		To:           query.To,
		Page:         p.Page,
		PageSize:     p.PageSize,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	}
	if query.Status != "" {
		status, err := vo.NewVisitStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.From != nil && query.To != nil && query.To.Before(*query.From) {
		return nil, errors.NewValidationError("to must not be before from")
	}

	visits, total, err := uc.visitRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list visits", "error", err)
		return nil, errors.NewInternalError("failed to list visits")
	}

	return &ListVisitsResult{
		Visits:   dto.ToVisitDTOList(visits),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
