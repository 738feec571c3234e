package usecases

import (
	"context"
	"time"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type AddPhotoCommand struct {
	VisitID string
	URL     string
	Caption string
	TakenAt *time.Time
}

type AddPhotoUseCase struct {
	visitRepo visit.Repository
	photoRepo visit.PhotoRepository
	logger    logger.Interface
}

func NewAddPhotoUseCase(visitRepo visit.Repository, photoRepo visit.PhotoRepository, logger logger.Interface) *AddPhotoUseCase {
	return &AddPhotoUseCase{
		visitRepo: visitRepo,
		photoRepo: photoRepo,
		logger:    logger,
	}
}

func (uc *AddPhotoUseCase) Execute(ctx context.Context, cmd AddPhotoCommand) (*dto.PhotoDTO, error) {
	uc.logger.Infow("executing add photo use case", "visit_id", cmd.VisitID)

	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}

	v, err := uc.visitRepo.GetByID(ctx, cmd.VisitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to get visit")
	}
	if v.Status() == vo.VisitStatusCancelled {
		return nil, mapDomainError(visit.ErrVisitClosed, "failed to add photo")
	}

	p, err := visit.NewPhoto(v.ID(), cmd.URL, cmd.Caption, cmd.TakenAt)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.photoRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to save photo", "visit_id", cmd.VisitID, "error", err)
		return nil, errors.NewInternalError("failed to save photo")
	}

	uc.logger.Infow("visit photo added", "visit_id", v.ID(), "photo_id", p.ID())
	photo := dto.ToPhotoDTO(p)
	return &photo, nil
}
