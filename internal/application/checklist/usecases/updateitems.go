package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"solarops/internal/application/checklist/dto"
	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

// ItemInput is a partial item update as received from a client. Status and
// severity are free-form strings normalized here.
type ItemInput struct {
	ItemID        string
	Status        *string
	Value         *string
	NumericValue  *float64
	Notes         *string
	Severity      *string
	ClearSeverity bool
	PhotoURLs     []string
	GPS           *vo.GPS
}

func (in ItemInput) toUpdate() (checklist.ItemUpdate, error) {
	u := checklist.ItemUpdate{ItemID: in.ItemID}
	if in.ItemID == "" {
		return u, errors.NewValidationError("item ID is required")
	}
	if in.Status != nil {
		status, err := vo.ParseItemOutcome(*in.Status)
		if err != nil {
			return u, errors.NewValidationError(err.Error(), in.ItemID)
		}
		u.Patch.Status = &status
	}
	if in.Severity != nil && *in.Severity != "" {
		sev, err := vo.ParseSeverity(*in.Severity)
		if err != nil {
			return u, errors.NewValidationError(err.Error(), in.ItemID)
		}
		u.Patch.Severity = &sev
	}
	u.Patch.Value = in.Value
	u.Patch.NumericValue = in.NumericValue
	u.Patch.Notes = in.Notes
	u.Patch.ClearSeverity = in.ClearSeverity
	u.Patch.PhotoURLs = in.PhotoURLs
	u.Patch.GPS = in.GPS
	return u, nil
}

type UpdateItemsCommand struct {
	ChecklistID string
	Items       []ItemInput
}

// UpdateItemsUseCase applies a batch of item updates atomically: either every
// item changes or none does. Answers are checked against the template version
// the checklist was created from.
type UpdateItemsUseCase struct {
	checklistRepo checklist.Repository
	templateRepo  checklist.TemplateRepository
	txMgr         db.Transactor
	logger        logger.Interface
}

func NewUpdateItemsUseCase(
	checklistRepo checklist.Repository,
	templateRepo checklist.TemplateRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateItemsUseCase {
	return &UpdateItemsUseCase{
		checklistRepo: checklistRepo,
		templateRepo:  templateRepo,
		txMgr:         txMgr,
		logger:        logger,
	}
}

func (uc *UpdateItemsUseCase) Execute(ctx context.Context, cmd UpdateItemsCommand) (*dto.ChecklistDTO, error) {
	uc.logger.Infow("executing update checklist items use case", "checklist_id", cmd.ChecklistID, "count", len(cmd.Items))

	c, err := uc.apply(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return dto.ToChecklistDTO(c, true), nil
}

func (uc *UpdateItemsUseCase) apply(ctx context.Context, cmd UpdateItemsCommand) (*checklist.Checklist, error) {
	if cmd.ChecklistID == "" {
		return nil, errors.NewValidationError("checklist ID is required")
	}
	if len(cmd.Items) == 0 {
		return nil, errors.NewValidationError("at least one item update is required")
	}
	updates := make([]checklist.ItemUpdate, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		u, err := in.toUpdate()
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}

	var c *checklist.Checklist
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		c, err = uc.checklistRepo.GetByID(txCtx, cmd.ChecklistID)
		if err != nil {
			return err
		}
		tpl, err := uc.templateRepo.GetByID(txCtx, c.TemplateID())
		switch {
		case stderrors.Is(err, checklist.ErrTemplateNotFound):
			uc.logger.Warnw("checklist template missing, answers not checked", "checklist_id", c.ID(), "template_id", c.TemplateID())
			tpl = nil
		case err != nil:
			return fmt.Errorf("failed to load checklist template: %w", err)
		}
		if err := c.CheckAnswers(updates, tpl); err != nil {
			return err
		}
		if err := c.UpdateItems(updates, biztime.NowUTC()); err != nil {
			return err
		}
		if err := uc.checklistRepo.Update(txCtx, c); err != nil {
			return fmt.Errorf("failed to save checklist items: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to update checklist items", "checklist_id", cmd.ChecklistID, "error", err)
		return nil, mapDomainError(err, "failed to update checklist items")
	}
	return c, nil
}

type UpdateItemCommand struct {
	ChecklistID string
	Item        ItemInput
}

type UpdateItemUseCase struct {
	batch *UpdateItemsUseCase
}

func NewUpdateItemUseCase(
	checklistRepo checklist.Repository,
	templateRepo checklist.TemplateRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateItemUseCase {
	return &UpdateItemUseCase{batch: NewUpdateItemsUseCase(checklistRepo, templateRepo, txMgr, logger)}
}

func (uc *UpdateItemUseCase) Execute(ctx context.Context, cmd UpdateItemCommand) (*dto.ItemDTO, error) {
	uc.batch.logger.Infow("executing update checklist item use case", "checklist_id", cmd.ChecklistID, "item_id", cmd.Item.ItemID)

	c, err := uc.batch.apply(ctx, UpdateItemsCommand{ChecklistID: cmd.ChecklistID, Items: []ItemInput{cmd.Item}})
	if err != nil {
		return nil, err
	}
	item, err := c.Item(cmd.Item.ItemID)
	if err != nil {
		return nil, mapDomainError(err, "failed to read updated item")
	}
	out := dto.ToItemDTO(item)
	return &out, nil
}
