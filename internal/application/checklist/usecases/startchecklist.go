package usecases

import (
	"context"

	"solarops/internal/application/checklist/dto"
	"solarops/internal/domain/checklist"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type StartChecklistCommand struct {
	ChecklistID string
}

type StartChecklistUseCase struct {
	checklistRepo checklist.Repository
	logger        logger.Interface
}

func NewStartChecklistUseCase(checklistRepo checklist.Repository, logger logger.Interface) *StartChecklistUseCase {
	return &StartChecklistUseCase{
		checklistRepo: checklistRepo,
		logger:        logger,
	}
}

func (uc *StartChecklistUseCase) Execute(ctx context.Context, cmd StartChecklistCommand) (*dto.ChecklistDTO, error) {
	uc.logger.Infow("executing start checklist use case", "checklist_id", cmd.ChecklistID)

	if cmd.ChecklistID == "" {
		return nil, errors.NewValidationError("checklist ID is required")
	}

	c, err := uc.checklistRepo.GetByID(ctx, cmd.ChecklistID)
	if err != nil {
		uc.logger.Errorw("failed to get checklist", "checklist_id", cmd.ChecklistID, "error", err)
		return nil, mapDomainError(err, "failed to get checklist")
	}

	if err := c.Start(biztime.NowUTC()); err != nil {
		uc.logger.Warnw("checklist cannot be started", "checklist_id", cmd.ChecklistID, "status", c.Status(), "error", err)
		return nil, mapDomainError(err, "failed to start checklist")
	}

	if err := uc.checklistRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update checklist", "checklist_id", cmd.ChecklistID, "error", err)
		return nil, mapDomainError(err, "failed to update checklist")
	}

	return dto.ToChecklistDTO(c, true), nil
}
