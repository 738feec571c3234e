package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/infrastructure/persistence/mappers"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

type ChecklistRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ChecklistMapper
	logger logger.Interface
}

func NewChecklistRepository(db *gorm.DB, logger logger.Interface) checklist.Repository {
	return &ChecklistRepositoryImpl{
		db:     db,
		mapper: mappers.NewChecklistMapper(),
		logger: logger,
	}
}

func (r *ChecklistRepositoryImpl) Create(ctx context.Context, c *checklist.Checklist) error {
	model := r.mapper.ToModel(c)
	items, err := r.mapper.ItemsToModels(c.Items())
	if err != nil {
		return err
	}

	err = withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create checklist: %w", err)
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to create checklist items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to create checklist", "id", model.ID, "visit_id", model.VisitID, "error", err)
		return err
	}
	c.ClearDirty()
	return nil
}

func (r *ChecklistRepositoryImpl) Update(ctx context.Context, c *checklist.Checklist) error {
	model := r.mapper.ToModel(c)
	dirty, err := r.mapper.ItemsToModels(c.DirtyItems())
	if err != nil {
		return err
	}

	err = withTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&models.ChecklistModel{}).
			Where("id = ? AND version = ?", model.ID, model.Version).
			Updates(map[string]interface{}{
				"technician_id": model.TechnicianID,
				"status":        model.Status,
				"started_at":    model.StartedAt,
				"completed_at":  model.CompletedAt,
				"notes":         model.Notes,
				"version":       model.Version + 1,
				"updated_at":    model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update checklist: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s at version %d", checklist.ErrConcurrentModification, model.ID, model.Version)
		}

		for _, item := range dirty {
			err := tx.Model(&models.ChecklistItemModel{}).
				Where("id = ? AND checklist_id = ?", item.ID, model.ID).
				Updates(map[string]interface{}{
					"status":        item.Status,
					"value":         item.Value,
					"numeric_value": item.NumericValue,
					"notes":         item.Notes,
					"severity":      item.Severity,
					"photo_urls":    item.PhotoURLs,
					"gps":           item.GPS,
					"completed_at":  item.CompletedAt,
					"updated_at":    item.UpdatedAt,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to update checklist item %s: %w", item.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to update checklist", "id", model.ID, "version", model.Version, "error", err)
		return err
	}

	c.ClearDirty()
	c.IncrementVersion()
	return nil
}

func (r *ChecklistRepositoryImpl) GetByID(ctx context.Context, id string) (*checklist.Checklist, error) {
	var model models.ChecklistModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", checklist.ErrChecklistNotFound, id)
		}
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}
	list, err := r.hydrate(ctx, []*models.ChecklistModel{&model})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (r *ChecklistRepositoryImpl) ListByVisit(ctx context.Context, visitID string) ([]*checklist.Checklist, error) {
	var rows []*models.ChecklistModel
	if err := db.GetTxFromContext(ctx, r.db).Where("visit_id = ?", visitID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	return r.hydrate(ctx, rows)
}

func (r *ChecklistRepositoryImpl) CountByVisitExcludingStatus(ctx context.Context, visitID string, status vo.ChecklistStatus) (int, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.ChecklistModel{}).
		Where("visit_id = ? AND status <> ?", visitID, status.String()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count checklists: %w", err)
	}
	return int(count), nil
}

func (r *ChecklistRepositoryImpl) hydrate(ctx context.Context, rows []*models.ChecklistModel) ([]*checklist.Checklist, error) {
	if len(rows) == 0 {
		return []*checklist.Checklist{}, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var itemRows []*models.ChecklistItemModel
	if err := db.GetTxFromContext(ctx, r.db).Where("checklist_id IN ?", ids).Order("sort_order ASC").Find(&itemRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load checklist items: %w", err)
	}
	byChecklist := make(map[string][]*models.ChecklistItemModel, len(rows))
	for _, row := range itemRows {
		byChecklist[row.ChecklistID] = append(byChecklist[row.ChecklistID], row)
	}

	list := make([]*checklist.Checklist, 0, len(rows))
	for _, row := range rows {
		c, err := r.mapper.ToEntity(row, byChecklist[row.ID])
		if err != nil {
			r.logger.Errorw("failed to map checklist", "id", row.ID, "error", err)
			return nil, fmt.Errorf("failed to map checklist: %w", err)
		}
		list = append(list, c)
	}
	return list, nil
}
