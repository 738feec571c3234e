package usecases

import (
	"context"
	"time"

	"solarops/internal/application/visit/dto"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type RescheduleVisitCommand struct {
	VisitID          string
	ScheduledDate    time.Time
	ScheduledEndDate *time.Time
}

type RescheduleVisitUseCase struct {
	visitRepo visit.Repository
	logger    logger.Interface
}

func NewRescheduleVisitUseCase(visitRepo visit.Repository, logger logger.Interface) *RescheduleVisitUseCase {
	return &RescheduleVisitUseCase{
		visitRepo: visitRepo,
		logger:    logger,
	}
}

func (uc *RescheduleVisitUseCase) Execute(ctx context.Context, cmd RescheduleVisitCommand) (*dto.VisitDTO, error) {
	uc.logger.Infow("executing reschedule visit use case", "visit_id", cmd.VisitID, "scheduled_date", cmd.ScheduledDate)

	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}
	if cmd.ScheduledDate.IsZero() {
		return nil, errors.NewValidationError("scheduled date is required")
	}

	v, err := uc.visitRepo.GetByID(ctx, cmd.VisitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to get visit")
	}

	if err := v.Reschedule(cmd.ScheduledDate, cmd.ScheduledEndDate, biztime.NowUTC()); err != nil {
		uc.logger.Warnw("visit cannot be rescheduled", "visit_id", cmd.VisitID, "status", v.Status(), "error", err)
		return nil, mapDomainError(err, "failed to reschedule visit")
	}

	if err := uc.visitRepo.Update(ctx, v); err != nil {
		uc.logger.Errorw("failed to update visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to update visit")
	}

	uc.logger.Infow("visit rescheduled", "visit_id", v.ID(), "scheduled_date", v.ScheduledDate())
	return dto.ToVisitDTO(v, nil), nil
}
