package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"solarops/internal/application/checklist/dto"
	"solarops/internal/domain/checklist"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type CompleteChecklistCommand struct {
	ChecklistID string
	Notes       *string
}

type CompleteChecklistUseCase struct {
	checklistRepo checklist.Repository
	templateRepo  checklist.TemplateRepository
	txMgr         db.Transactor
	publisher     events.EventPublisher
	metrics       ChecklistMetrics
	logger        logger.Interface
}

func NewCompleteChecklistUseCase(
	checklistRepo checklist.Repository,
	templateRepo checklist.TemplateRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	metrics ChecklistMetrics,
	logger logger.Interface,
) *CompleteChecklistUseCase {
	return &CompleteChecklistUseCase{
		checklistRepo: checklistRepo,
		templateRepo:  templateRepo,
		txMgr:         txMgr,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute gates completion on the mandatory items of the template version the
// checklist was created from.
func (uc *CompleteChecklistUseCase) Execute(ctx context.Context, cmd CompleteChecklistCommand) (*dto.ChecklistDTO, error) {
	uc.logger.Infow("executing complete checklist use case", "checklist_id", cmd.ChecklistID)

	if cmd.ChecklistID == "" {
		return nil, errors.NewValidationError("checklist ID is required")
	}

	var c *checklist.Checklist
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		c, err = uc.checklistRepo.GetByID(txCtx, cmd.ChecklistID)
		if err != nil {
			return err
		}
		tpl, err := uc.templateRepo.GetByID(txCtx, c.TemplateID())
		if err != nil {
			return fmt.Errorf("failed to load originating template: %w", err)
		}
		if err := c.Complete(tpl.MandatoryItemIDs(), cmd.Notes, biztime.NowUTC()); err != nil {
			return err
		}
		return uc.checklistRepo.Update(txCtx, c)
	})
	if err != nil {
		if stderrors.Is(err, checklist.ErrMandatoryItemsOutstanding) {
			uc.metrics.ChecklistCompletionRejected()
			uc.logger.Warnw("checklist completion rejected", "checklist_id", cmd.ChecklistID, "error", err)
		} else {
			uc.logger.Errorw("failed to complete checklist", "checklist_id", cmd.ChecklistID, "error", err)
		}
		return nil, mapDomainError(err, "failed to complete checklist")
	}

	uc.metrics.ChecklistCompleted()
	if err := uc.publisher.PublishAll(c.GetEvents()); err != nil {
		uc.logger.Warnw("failed to publish checklist events", "checklist_id", c.ID(), "error", err)
	}

	uc.logger.Infow("checklist completed successfully", "checklist_id", c.ID(), "visit_id", c.VisitID())
	return dto.ToChecklistDTO(c, true), nil
}
