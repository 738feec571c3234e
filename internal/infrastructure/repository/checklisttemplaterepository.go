package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"solarops/internal/domain/checklist"
	"solarops/internal/infrastructure/persistence/mappers"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

type ChecklistTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TemplateMapper
	logger logger.Interface
}

func NewChecklistTemplateRepository(db *gorm.DB, logger logger.Interface) checklist.TemplateRepository {
	return &ChecklistTemplateRepositoryImpl{
		db:     db,
		mapper: mappers.NewTemplateMapper(),
		logger: logger,
	}
}

func (r *ChecklistTemplateRepositoryImpl) Create(ctx context.Context, t *checklist.Template) error {
	model := r.mapper.ToModel(t)
	items := r.mapper.ItemsToModels(t)

	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create checklist template: %w", err)
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to create template items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to create checklist template", "id", model.ID, "name", model.Name, "error", err)
		return err
	}
	return nil
}

func (r *ChecklistTemplateRepositoryImpl) Update(ctx context.Context, t *checklist.Template) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.ChecklistTemplateModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]interface{}{
			"is_active":  t.IsActive(),
			"updated_at": t.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update checklist template", "id", t.ID(), "error", result.Error)
		return fmt.Errorf("failed to update checklist template: %w", result.Error)
	}
	return nil
}

func (r *ChecklistTemplateRepositoryImpl) GetByID(ctx context.Context, id string) (*checklist.Template, error) {
	return r.getOne(ctx, db.GetTxFromContext(ctx, r.db).Where("id = ?", id), id)
}

func (r *ChecklistTemplateRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (*checklist.Template, error) {
	return r.getOne(ctx, db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()).Where("id = ?", id), id)
}

// GetByName returns the active version of the named template.
func (r *ChecklistTemplateRepositoryImpl) GetByName(ctx context.Context, name string) (*checklist.Template, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("name = ? AND is_active = ?", name, true).
		Order("version DESC")
	return r.getOne(ctx, query, name)
}

func (r *ChecklistTemplateRepositoryImpl) getOne(ctx context.Context, query *gorm.DB, key string) (*checklist.Template, error) {
	var model models.ChecklistTemplateModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", checklist.ErrTemplateNotFound, key)
		}
		return nil, fmt.Errorf("failed to get checklist template: %w", err)
	}
	templates, err := r.hydrate(ctx, []*models.ChecklistTemplateModel{&model})
	if err != nil {
		return nil, err
	}
	return templates[0], nil
}

func (r *ChecklistTemplateRepositoryImpl) List(ctx context.Context, filter checklist.TemplateFilter) ([]*checklist.Template, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ChecklistTemplateModel{})
	if filter.SystemType != "" {
		query = query.Where("system_type = ?", filter.SystemType)
	}
	if filter.VisitType != "" {
		query = query.Where("visit_type = ?", filter.VisitType)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count checklist templates: %w", err)
	}

	var rows []*models.ChecklistTemplateModel
	if err := query.Order("name ASC, version DESC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list checklist templates", "error", err)
		return nil, 0, fmt.Errorf("failed to list checklist templates: %w", err)
	}

	templates, err := r.hydrate(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

func (r *ChecklistTemplateRepositoryImpl) ListVersions(ctx context.Context, familyID string) ([]*checklist.Template, error) {
	var rows []*models.ChecklistTemplateModel
	if err := db.GetTxFromContext(ctx, r.db).Where("family_id = ?", familyID).Order("version ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list template versions: %w", err)
	}
	return r.hydrate(ctx, rows)
}

func (r *ChecklistTemplateRepositoryImpl) hydrate(ctx context.Context, rows []*models.ChecklistTemplateModel) ([]*checklist.Template, error) {
	if len(rows) == 0 {
		return []*checklist.Template{}, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var itemRows []*models.TemplateItemModel
	if err := db.GetTxFromContext(ctx, r.db).Where("template_id IN ?", ids).Order("sort_order ASC").Find(&itemRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load template items: %w", err)
	}
	byTemplate := make(map[string][]*models.TemplateItemModel, len(rows))
	for _, row := range itemRows {
		byTemplate[row.TemplateID] = append(byTemplate[row.TemplateID], row)
	}

	templates := make([]*checklist.Template, 0, len(rows))
	for _, row := range rows {
		t, err := r.mapper.ToEntity(row, byTemplate[row.ID])
		if err != nil {
			r.logger.Errorw("failed to map checklist template", "id", row.ID, "error", err)
			return nil, fmt.Errorf("failed to map checklist template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}
