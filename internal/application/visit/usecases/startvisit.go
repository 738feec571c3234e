package usecases

import (
	"context"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type StartVisitCommand struct {
	VisitID string
}

type StartVisitUseCase struct {
	visitRepo visit.Repository
	logger    logger.Interface
}

func NewStartVisitUseCase(visitRepo visit.Repository, logger logger.Interface) *StartVisitUseCase {
	return &StartVisitUseCase{
		visitRepo: visitRepo,
		logger:    logger,
	}
}

func (uc *StartVisitUseCase) Execute(ctx context.Context, cmd StartVisitCommand) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing start visit use case", "visit_id", cmd.VisitID)

	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}

	v, err := uc.visitRepo.GetByID(ctx, cmd.VisitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to get visit")
	}

	if err := v.Start(biztime.NowUTC()); err != nil {
		uc.logger.Warnw("visit cannot be started", "visit_id", cmd.VisitID, "status", v.Status(), "error", err)
		return nil, mapDomainError(err, "failed to start visit")
	}

	if err := uc.visitRepo.Update(ctx, v); err != nil {
		uc.logger.Errorw("failed to update visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to update visit")
	}

	uc.logger.Infow("visit started", "visit_id", v.ID())
	return dto.ToVisitDTO(v, nil), nil
}
