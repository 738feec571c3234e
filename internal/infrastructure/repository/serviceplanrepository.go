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

type ServicePlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ServicePlanMapper
	logger logger.Interface
}

func NewServicePlanRepository(db *gorm.DB, logger logger.Interface) agreement.ServicePlanRepository {
	return &ServicePlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewServicePlanMapper(),
		logger: logger,
	}
}

func (r *ServicePlanRepositoryImpl) Create(ctx context.Context, p *agreement.ServicePlan) error {
	model := r.mapper.ToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create service plan", "agreement_id", model.AgreementID, "error", err)
		return fmt.Errorf("failed to create service plan: %w", err)
	}
	return nil
}

func (r *ServicePlanRepositoryImpl) Update(ctx context.Context, p *agreement.ServicePlan) error {
	model := r.mapper.ToModel(p)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.ServicePlanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"visit_frequency": model.VisitFrequency,
			"next_visit_date": model.NextVisitDate,
			"seasonal_adjust": model.SeasonalAdjust,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update service plan", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update service plan: %w", result.Error)
	}
	return nil
}

func (r *ServicePlanRepositoryImpl) GetByAgreementID(ctx context.Context, agreementID string) (*agreement.ServicePlan, error) {
	var model models.ServicePlanModel
	if err := db.GetTxFromContext(ctx, r.db).Where("agreement_id = ?", agreementID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: agreement %s", agreement.ErrServicePlanNotFound, agreementID)
		}
		return nil, fmt.Errorf("failed to get service plan: %w", err)
	}
	return r.mapper.ToEntity(&model)
}
