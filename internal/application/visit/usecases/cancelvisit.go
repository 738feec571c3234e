package usecases

import (
	"context"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/shared/events"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type CancelVisitCommand struct {
	VisitID string
	Reason  string
}

type CancelVisitUseCase struct {
	visitRepo visit.Repository
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewCancelVisitUseCase(visitRepo visit.Repository, publisher events.EventPublisher, logger logger.Interface) *CancelVisitUseCase {
	return &CancelVisitUseCase{
		visitRepo: visitRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *CancelVisitUseCase) Execute(ctx context.Context, cmd CancelVisitCommand) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing cancel visit use case", "visit_id", cmd.VisitID)

	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}

	v, err := uc.visitRepo.GetByID(ctx, cmd.VisitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to get visit")
	}

	if err := v.Cancel(cmd.Reason, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("visit cannot be cancelled", "visit_id", cmd.VisitID, "status", v.Status(), "error", err)
		return nil, mapDomainError(err, "failed to cancel visit")
	}

	if err := uc.visitRepo.Update(ctx, v); err != nil {
		uc.logger.Errorw("failed to update visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to update visit")
	}

	if err := uc.publisher.PublishAll(v.GetEvents()); err != nil {
		uc.logger.Warnw("failed to publish visit events", "visit_id", v.ID(), "error", err)
	}

	uc.logger.Infow("visit cancelled", "visit_id", v.ID())
	return dto.ToVisitDTO(v, nil), nil
}
