package usecases

import (
	"context"
	"fmt"

	"solarops/internal/application/checklist/dto"
	"solarops/internal/domain/checklist"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type CreateChecklistCommand struct {
	VisitID    string
	TemplateID string
	// TechnicianID defaults to the visit's technician.
	TechnicianID string
}

type CreateChecklistUseCase struct {
	checklistRepo checklist.Repository
	templateRepo  checklist.TemplateRepository
	visitRepo     visit.Repository
	txMgr         db.Transactor
	logger        logger.Interface
}

func NewCreateChecklistUseCase(
	checklistRepo checklist.Repository,
	templateRepo checklist.TemplateRepository,
	visitRepo visit.Repository,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreateChecklistUseCase {
	return &CreateChecklistUseCase{
		checklistRepo: checklistRepo,
		templateRepo:  templateRepo,
		visitRepo:     visitRepo,
		txMgr:         txMgr,
		logger:        logger,
	}
}

// Execute attaches a checklist while holding the visit's row lock, the same lock
// visit completion takes before counting open checklists.
func (uc *CreateChecklistUseCase) Execute(ctx context.Context, cmd CreateChecklistCommand) (*dto.ChecklistDTO, error) {
	uc.logger.Infow("executing create checklist use case", "visit_id", cmd.VisitID, "template_id", cmd.TemplateID)

	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}
	if cmd.TemplateID == "" {
		return nil, errors.NewValidationError("template ID is required")
	}

	tpl, err := uc.templateRepo.GetByID(ctx, cmd.TemplateID)
	if err != nil {
		uc.logger.Errorw("failed to get template", "template_id", cmd.TemplateID, "error", err)
		return nil, mapDomainError(err, "failed to get template")
	}
	if !tpl.IsActive() {
		return nil, errors.NewInvalidStateError("checklist template is not active", fmt.Sprintf("%s version %d", tpl.Name(), tpl.Version()))
	}

	var c *checklist.Checklist
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		v, err := uc.visitRepo.GetByIDForUpdate(txCtx, cmd.VisitID)
		if err != nil {
			return err
		}
		if !v.AcceptsChecklists() {
			return errors.NewInvalidStateError("checklists cannot be added to a closed visit", v.Status().String())
		}

		technicianID := cmd.TechnicianID
		if technicianID == "" {
			technicianID = v.TechnicianID()
		}
		c, err = checklist.NewFromTemplate(v.ID(), technicianID, tpl)
		if err != nil {
			return err
		}
		if err := uc.checklistRepo.Create(txCtx, c); err != nil {
			return fmt.Errorf("failed to save checklist: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create checklist", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to create checklist")
	}

	uc.logger.Infow("checklist created successfully", "checklist_id", c.ID(), "items", len(c.Items()))
	return dto.ToChecklistDTO(c, true), nil
}
