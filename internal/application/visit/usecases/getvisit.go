package usecases

import (
	"context"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type GetVisitUseCase struct {
	visitRepo visit.Repository
	photoRepo visit.PhotoRepository
	logger    logger.Interface
}

func NewGetVisitUseCase(visitRepo visit.Repository, photoRepo visit.PhotoRepository, logger logger.Interface) *GetVisitUseCase {
	return &GetVisitUseCase{
		visitRepo: visitRepo,
		photoRepo: photoRepo,
		logger:    logger,
	}
}

func (uc *GetVisitUseCase) Execute(ctx context.Context, visitID string) (*dto.VisitDTO, error) {
	if visitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}

	v, err := uc.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", visitID, "error", err)
		return nil, mapDomainError(err, "failed to get visit")
	}

	photos, err := uc.photoRepo.ListByVisit(ctx, visitID)
	if err != nil {
		uc.logger.Errorw("failed to list visit photos", "visit_id", visitID, "error", err)
		return nil, errors.NewInternalError("failed to list visit photos")
	}

	return dto.ToVisitDTO(v, photos), nil
}
