package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"solarops/internal/domain/agreement"
	"solarops/internal/infrastructure/persistence/mappers"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

type AddonProductRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AddonProductMapper
	logger logger.Interface
}

func NewAddonProductRepository(db *gorm.DB, logger logger.Interface) agreement.AddonProductRepository {
	return &AddonProductRepositoryImpl{
		db:     db,
		mapper: mappers.NewAddonProductMapper(),
		logger: logger,
	}
}

func (r *AddonProductRepositoryImpl) Create(ctx context.Context, p *agreement.AddonProduct) error {
	model := r.mapper.ToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create add-on product", "id", model.ID, "error", err)
		return fmt.Errorf("failed to create add-on product: %w", err)
	}
	return nil
}

func (r *AddonProductRepositoryImpl) Update(ctx context.Context, p *agreement.AddonProduct) error {
	model := r.mapper.ToModel(p)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.AddonProductModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"category":    model.Category,
			"frequency":   model.Frequency,
			"base_price":  model.BasePrice,
			"unit":        model.Unit,
			"is_active":   model.IsActive,
			"sort_order":  model.SortOrder,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update add-on product", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update add-on product: %w", result.Error)
	}
	return nil
}

func (r *AddonProductRepositoryImpl) GetByID(ctx context.Context, id string) (*agreement.AddonProduct, error) {
	var model models.AddonProductModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", agreement.ErrAddonProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get add-on product: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByIDs returns the products that exist; unknown ids are silently absent.
func (r *AddonProductRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]*agreement.AddonProduct, error) {
	if len(ids) == 0 {
		return []*agreement.AddonProduct{}, nil
	}
	var rows []*models.AddonProductModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get add-on products: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

func (r *AddonProductRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]*agreement.AddonProduct, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.AddonProductModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []*models.AddonProductModel
	if err := query.Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list add-on products: %w", err)
	}
	return r.mapper.ToEntities(rows)
}
