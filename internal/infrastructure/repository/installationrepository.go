package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"solarops/internal/domain/installation"
	"solarops/internal/infrastructure/persistence/mappers"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

type InstallationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.InstallationMapper
	logger logger.Interface
}

func NewInstallationRepository(db *gorm.DB, logger logger.Interface) installation.Repository {
	return &InstallationRepositoryImpl{
		db:     db,
		mapper: mappers.NewInstallationMapper(),
		logger: logger,
	}
}

func (r *InstallationRepositoryImpl) Create(ctx context.Context, inst *installation.Installation) error {
	model := r.mapper.ToModel(inst)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create installation", "id", model.ID, "error", err)
		return fmt.Errorf("failed to create installation: %w", err)
	}
	return nil
}

func (r *InstallationRepositoryImpl) GetByID(ctx context.Context, id string) (*installation.Installation, error) {
	var model models.InstallationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", installation.ErrInstallationNotFound, id)
		}
		return nil, fmt.Errorf("failed to get installation: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InstallationRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.InstallationModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check installation: %w", err)
	}
	return count > 0, nil
}

func (r *InstallationRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*installation.Installation, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.InstallationModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count installations: %w", err)
	}

	var rows []*models.InstallationModel
	if err := query.Order("created_at DESC").Scopes(db.Paginate(page, pageSize)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list installations: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
