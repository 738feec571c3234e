package usecases

import (
	"context"

	"solarops/internal/application/checklist/dto"
	"solarops/internal/domain/checklist"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type GetChecklistUseCase struct {
	checklistRepo checklist.Repository
	logger        logger.Interface
}

func NewGetChecklistUseCase(checklistRepo checklist.Repository, logger logger.Interface) *GetChecklistUseCase {
	return &GetChecklistUseCase{
		checklistRepo: checklistRepo,
		logger:        logger,
	}
}

func (uc *GetChecklistUseCase) Execute(ctx context.Context, checklistID string) (*dto.ChecklistDTO, error) {
	if checklistID == "" {
		return nil, errors.NewValidationError("checklist ID is required")
	}
	c, err := uc.checklistRepo.GetByID(ctx, checklistID)
	if err != nil {
		uc.logger.Errorw("failed to get checklist", "checklist_id", checklistID, "error", err)
		return nil, mapDomainError(err, "failed to get checklist")
	}
	return dto.ToChecklistDTO(c, true), nil
}

type ListVisitChecklistsUseCase struct {
	checklistRepo checklist.Repository
	logger        logger.Interface
}

func NewListVisitChecklistsUseCase(checklistRepo checklist.Repository, logger logger.Interface) *ListVisitChecklistsUseCase {
	return &ListVisitChecklistsUseCase{
		checklistRepo: checklistRepo,
		logger:        logger,
	}
}

func (uc *ListVisitChecklistsUseCase) Execute(ctx context.Context, visitID string) ([]*dto.ChecklistDTO, error) {
	if visitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}
	list, err := uc.checklistRepo.ListByVisit(ctx, visitID)
	if err != nil {
		uc.logger.Errorw("failed to list checklists", "visit_id", visitID, "error", err)
		return nil, errors.NewInternalError("failed to list checklists")
	}
	return dto.ToChecklistDTOList(list), nil
}
