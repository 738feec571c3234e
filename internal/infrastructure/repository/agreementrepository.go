package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/infrastructure/persistence/mappers"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

// allowedAgreementSortByFields is the ORDER BY whitelist for List.
var allowedAgreementSortByFields = map[string]bool{
	"agreement_number": true,
	"status":           true,
	"start_date":       true,
	"end_date":         true,
	"created_at":       true,
	"updated_at":       true,
}

type AgreementRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AgreementMapper
	logger logger.Interface
}

func NewAgreementRepository(db *gorm.DB, logger logger.Interface) agreement.Repository {
	return &AgreementRepositoryImpl{
		db:     db,
		mapper: mappers.NewAgreementMapper(),
		logger: logger,
	}
}

func (r *AgreementRepositoryImpl) Create(ctx context.Context, a *agreement.Agreement) error {
	model := r.mapper.ToModel(a)
	addons := r.mapper.ToAddonModels(a)

	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create agreement: %w", err)
		}
		if len(addons) > 0 {
			if err := tx.Create(&addons).Error; err != nil {
				return fmt.Errorf("failed to create agreement add-ons: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to create agreement", "id", model.ID, "number", model.AgreementNumber, "error", err)
		return err
	}
	return nil
}

func (r *AgreementRepositoryImpl) Update(ctx context.Context, a *agreement.Agreement) error {
	model := r.mapper.ToModel(a)
	addons := r.mapper.ToAddonModels(a)

	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&models.AgreementModel{}).
			Where("id = ? AND version = ?", model.ID, model.Version).
			Updates(map[string]interface{}{
				"agreement_number":     model.AgreementNumber,
				"status":               model.Status,
				"agreement_type":       model.AgreementType,
				"sla_level":            model.SLALevel,
				"start_date":           model.StartDate,
				"end_date":             model.EndDate,
				"base_price":           model.BasePrice,
				"calculated_price":     model.CalculatedPrice,
				"discount_percent":     model.DiscountPercent,
				"auto_renew":           model.AutoRenew,
				"visit_frequency":      model.VisitFrequency,
				"preferred_visit_day":  model.PreferredVisitDay,
				"preferred_visit_time": model.PreferredVisitTime,
				"notes":                model.Notes,
				"signed_at":            model.SignedAt,
				"cancelled_at":         model.CancelledAt,
				"cancellation_reason":  model.CancellationReason,
				"version":              model.Version + 1,
				"updated_at":           model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update agreement: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s at version %d", agreement.ErrConcurrentModification, model.ID, model.Version)
		}

		if err := tx.Where("agreement_id = ?", model.ID).Delete(&models.AgreementAddonModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear agreement add-ons: %w", err)
		}
		if len(addons) > 0 {
			if err := tx.Create(&addons).Error; err != nil {
				return fmt.Errorf("failed to write agreement add-ons: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to update agreement", "id", model.ID, "version", model.Version, "error", err)
		return err
	}

	a.IncrementVersion()
	return nil
}

func (r *AgreementRepositoryImpl) GetByID(ctx context.Context, id string) (*agreement.Agreement, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *AgreementRepositoryImpl) GetByNumber(ctx context.Context, number string) (*agreement.Agreement, error) {
	return r.getOne(ctx, "agreement_number = ?", number)
}

func (r *AgreementRepositoryImpl) getOne(ctx context.Context, cond string, arg string) (*agreement.Agreement, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.AgreementModel
	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", agreement.ErrAgreementNotFound, arg)
		}
		return nil, fmt.Errorf("failed to get agreement: %w", err)
	}

	entities, err := r.hydrate(ctx, []*models.AgreementModel{&model})
	if err != nil {
		return nil, err
	}
	return entities[0], nil
}

func (r *AgreementRepositoryImpl) List(ctx context.Context, filter agreement.ListFilter) ([]*agreement.Agreement, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.AgreementModel{})
	if filter.InstallationID != "" {
		query = query.Where("installation_id = ?", filter.InstallationID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.AgreementType != nil {
		query = query.Where("agreement_type = ?", filter.AgreementType.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count agreements", "error", err)
		return nil, 0, fmt.Errorf("failed to count agreements: %w", err)
	}

	var rows []*models.AgreementModel
	err := query.
		Scopes(
			db.OrderBy(filter.SortBy, filter.SortOrder, allowedAgreementSortByFields, "created_at"),
			db.Paginate(filter.Page, filter.PageSize),
		).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list agreements", "error", err)
		return nil, 0, fmt.Errorf("failed to list agreements: %w", err)
	}

	entities, err := r.hydrate(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *AgreementRepositoryImpl) ListLapsed(ctx context.Context, now time.Time, limit int) ([]*agreement.Agreement, error) {
	var rows []*models.AgreementModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("status IN ?", []string{vo.AgreementStatusActive.String(), vo.AgreementStatusSuspended.String()}).
		Where("end_date IS NOT NULL AND end_date <= ?", now).
		Order("end_date ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lapsed agreements: %w", err)
	}
	return r.hydrate(ctx, rows)
}

func (r *AgreementRepositoryImpl) MaxSequence(ctx context.Context) (int64, error) {
	var numbers []string
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.AgreementModel{}).Pluck("agreement_number", &numbers).Error; err != nil {
		return 0, fmt.Errorf("failed to read agreement numbers: %w", err)
	}

	var highest int64
	for _, n := range numbers {
		seq, err := agreement.ParseAgreementSequence(n)
		if err != nil {
			r.logger.Warnw("skipping malformed agreement number", "number", n)
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return highest, nil
}

// hydrate loads add-on rows for the given agreements in one query.
func (r *AgreementRepositoryImpl) hydrate(ctx context.Context, rows []*models.AgreementModel) ([]*agreement.Agreement, error) {
	if len(rows) == 0 {
		return []*agreement.Agreement{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var addonRows []*models.AgreementAddonModel
	if err := db.GetTxFromContext(ctx, r.db).Where("agreement_id IN ?", ids).Order("id ASC").Find(&addonRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load agreement add-ons: %w", err)
	}
	byAgreement := make(map[string][]*models.AgreementAddonModel, len(rows))
	for _, row := range addonRows {
		byAgreement[row.AgreementID] = append(byAgreement[row.AgreementID], row)
	}

	entities := make([]*agreement.Agreement, 0, len(rows))
	for _, row := range rows {
		entity, err := r.mapper.ToEntity(row, byAgreement[row.ID])
		if err != nil {
			r.logger.Errorw("failed to map agreement", "id", row.ID, "error", err)
			return nil, fmt.Errorf("failed to map agreement: %w", err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
