package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"solarops/internal/application/checklist/dto"
	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/db"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

// TemplateItemInput is one item of a template command.
type TemplateItemInput struct {
	Category      string
	SortOrder     int
	Description   string
	InputType     string
	MinValue      *float64
	MaxValue      *float64
	Options       []string
	IsMandatory   bool
	PhotoRequired bool
	HelpText      string
}

type TemplateInput struct {
	Name        string
	Description string
	SystemType  string
	VisitType   string
	Items       []TemplateItemInput
}

func (in TemplateInput) definition() (checklist.TemplateDefinition, error) {
	def := checklist.TemplateDefinition{
		Name:        in.Name,
		Description: in.Description,
		SystemType:  in.SystemType,
		VisitType:   in.VisitType,
		Items:       make([]checklist.TemplateItemSpec, 0, len(in.Items)),
	}
	for i, item := range in.Items {
		inputType := vo.InputTypeYesNo
		if item.InputType != "" {
			t, err := vo.NewInputType(item.InputType)
			if err != nil {
				return def, errors.NewValidationError(err.Error(), fmt.Sprintf("item %d", i+1))
			}
			inputType = t
		}
		def.Items = append(def.Items, checklist.TemplateItemSpec{
			Category:      item.Category,
			SortOrder:     item.SortOrder,
			Description:   item.Description,
			InputType:     inputType,
			MinValue:      item.MinValue,
			MaxValue:      item.MaxValue,
			Options:       item.Options,
			IsMandatory:   item.IsMandatory,
			PhotoRequired: item.PhotoRequired,
			HelpText:      item.HelpText,
		})
	}
	return def, nil
}

type CreateTemplateCommand struct {
	TemplateInput
}

type CreateTemplateUseCase struct {
	templateRepo checklist.TemplateRepository
	logger       logger.Interface
}

func NewCreateTemplateUseCase(templateRepo checklist.TemplateRepository, logger logger.Interface) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (uc *CreateTemplateUseCase) Execute(ctx context.Context, cmd CreateTemplateCommand) (*dto.TemplateDTO, error) {
	uc.logger.Infow("executing create template use case", "name", cmd.Name)

	def, err := cmd.definition()
	if err != nil {
		return nil, err
	}
	tpl, err := checklist.NewTemplate(def)
	if err != nil {
		return nil, mapDomainError(err, "failed to build template")
	}

	_, err = uc.templateRepo.GetByName(ctx, tpl.Name())
	switch {
	case err == nil:
		return nil, errors.NewConflictError("template name already exists", tpl.Name())
	case !stderrors.Is(err, checklist.ErrTemplateNotFound):
		uc.logger.Errorw("failed to check template name", "name", tpl.Name(), "error", err)
		return nil, errors.NewInternalError("failed to check template name")
	}

	if err := uc.templateRepo.Create(ctx, tpl); err != nil {
		uc.logger.Errorw("failed to save template", "name", cmd.Name, "error", err)
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("template name already exists", cmd.Name)
		}
		return nil, errors.NewInternalError("failed to save template")
	}

	uc.logger.Infow("template created successfully", "template_id", tpl.ID(), "items", len(tpl.Items()))
	return dto.ToTemplateDTO(tpl, true), nil
}

type ReviseTemplateCommand struct {
	TemplateID string
	TemplateInput
}

// ReviseTemplateUseCase stores a new version of a template. Checklists created
// from earlier versions keep their own item snapshots.
type ReviseTemplateUseCase struct {
	templateRepo checklist.TemplateRepository
	txMgr        db.Transactor
	publisher    events.EventPublisher
	logger       logger.Interface
}

func NewReviseTemplateUseCase(
	templateRepo checklist.TemplateRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ReviseTemplateUseCase {
	return &ReviseTemplateUseCase{
		templateRepo: templateRepo,
		txMgr:        txMgr,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *ReviseTemplateUseCase) Execute(ctx context.Context, cmd ReviseTemplateCommand) (*dto.TemplateDTO, error) {
	uc.logger.Infow("executing revise template use case", "template_id", cmd.TemplateID)

	if cmd.TemplateID == "" {
		return nil, errors.NewValidationError("template ID is required")
	}
	def, err := cmd.definition()
	if err != nil {
		return nil, err
	}

	var next *checklist.Template
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		current, err := uc.templateRepo.GetByIDForUpdate(txCtx, cmd.TemplateID)
		if err != nil {
			return err
		}
		next, err = current.Revise(def, biztime.NowUTC())
		if err != nil {
			return err
		}
		if err := uc.templateRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to deactivate previous version: %w", err)
		}
		if err := uc.templateRepo.Create(txCtx, next); err != nil {
			return fmt.Errorf("failed to save new version: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to revise template", "template_id", cmd.TemplateID, "error", err)
		return nil, mapDomainError(err, "failed to revise template")
	}

	if err := uc.publisher.PublishAll(next.GetEvents()); err != nil {
		uc.logger.Warnw("failed to publish template events", "template_id", next.ID(), "error", err)
	}

	uc.logger.Infow("template revised successfully", "template_id", next.ID(), "family_id", next.FamilyID(), "version", next.Version())
	return dto.ToTemplateDTO(next, true), nil
}

type GetTemplateUseCase struct {
	templateRepo checklist.TemplateRepository
	logger       logger.Interface
}

func NewGetTemplateUseCase(templateRepo checklist.TemplateRepository, logger logger.Interface) *GetTemplateUseCase {
	return &GetTemplateUseCase{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (uc *GetTemplateUseCase) Execute(ctx context.Context, templateID string) (*dto.TemplateDTO, error) {
	if templateID == "" {
		return nil, errors.NewValidationError("template ID is required")
	}
	tpl, err := uc.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		uc.logger.Errorw("failed to get template", "template_id", templateID, "error", err)
		return nil, mapDomainError(err, "failed to get template")
	}
	return dto.ToTemplateDTO(tpl, true), nil
}

type ListTemplatesQuery struct {
	SystemType string
	VisitType  string
	// IncludeInactive lists superseded versions as well.
	IncludeInactive bool
	Page            int
	PageSize        int
}

type ListTemplatesResult struct {
	Templates []*dto.TemplateDTO `json:"templates"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

type ListTemplatesUseCase struct {
	templateRepo checklist.TemplateRepository
	logger       logger.Interface
}

func NewListTemplatesUseCase(templateRepo checklist.TemplateRepository, logger logger.Interface) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (uc *ListTemplatesUseCase) Execute(ctx context.Context, query ListTemplatesQuery) (*ListTemplatesResult, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)
	templates, total, err := uc.templateRepo.List(ctx, checklist.TemplateFilter{
		SystemType: query.SystemType,
		VisitType:  query.VisitType,
		ActiveOnly: !query.IncludeInactive,
		Page:       p.Page,
		PageSize:   p.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list templates", "error", err)
		return nil, errors.NewInternalError("failed to list templates")
	}
	return &ListTemplatesResult{
		Templates: dto.ToTemplateDTOList(templates),
		Total:     total,
		Page:      p.Page,
		PageSize:  p.PageSize,
	}, nil
}
