package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"solarops/internal/domain/visit"
	"solarops/internal/infrastructure/persistence/mappers"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

var allowedVisitSortByFields = map[string]bool{
	"scheduled_date": true,
	"visit_number":   true,
	"status":         true,
	"created_at":     true,
	"completed_at":   true,
}

type VisitRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.VisitMapper
	logger logger.Interface
}

func NewVisitRepository(db *gorm.DB, logger logger.Interface) visit.Repository {
	return &VisitRepositoryImpl{
		db:     db,
		mapper: mappers.NewVisitMapper(),
		logger: logger,
	}
}

func (r *VisitRepositoryImpl) Create(ctx context.Context, v *visit.Visit) error {
	model := r.mapper.ToModel(v)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create visit", "id", model.ID, "agreement_id", model.AgreementID, "error", err)
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *VisitRepositoryImpl) Update(ctx context.Context, v *visit.Visit) error {
	model := r.mapper.ToModel(v)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.VisitModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"technician_id":       model.TechnicianID,
			"scheduled_date":      model.ScheduledDate,
			"scheduled_end_date":  model.ScheduledEndDate,
			"status":              model.Status,
			"visit_type":          model.VisitType,
			"actual_start_date":   model.ActualStartDate,
			"actual_end_date":     model.ActualEndDate,
			"duration_minutes":    model.DurationMinutes,
			"notes":               model.Notes,
			"customer_signature":  model.CustomerSignature,
			"signed_at":           model.SignedAt,
			"completed_at":        model.CompletedAt,
			"cancelled_at":        model.CancelledAt,
			"cancellation_reason": model.CancellationReason,
			"version":             model.Version + 1,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update visit", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update visit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("visit version conflict", "id", model.ID, "version", model.Version)
		return fmt.Errorf("%w: %s at version %d", visit.ErrConcurrentModification, model.ID, model.Version)
	}

	v.IncrementVersion()
	return nil
}

func (r *VisitRepositoryImpl) GetByID(ctx context.Context, id string) (*visit.Visit, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

func (r *VisitRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (*visit.Visit, error) {
	return r.get(db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()), id)
}

func (r *VisitRepositoryImpl) get(tx *gorm.DB, id string) (*visit.Visit, error) {
	var model models.VisitModel
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", visit.ErrVisitNotFound, id)
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *VisitRepositoryImpl) List(ctx context.Context, filter visit.ListFilter) ([]*visit.Visit, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.VisitModel{})
	if filter.AgreementID != "" {
		query = query.Where("agreement_id = ?", filter.AgreementID)
	}
	if filter.TechnicianID != "" {
		query = query.Where("technician_id = ?", filter.TechnicianID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.From != nil {
		query = query.Where("scheduled_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count visits", "error", err)
		return nil, 0, fmt.Errorf("failed to count visits: %w", err)
	}

	sortOrder := filter.SortOrder
	if filter.SortBy == "" && sortOrder == "" {
		sortOrder = "asc"
	}
	var rows []*models.VisitModel
	err := query.
		Scopes(
			db.OrderBy(filter.SortBy, sortOrder, allowedVisitSortByFields, "scheduled_date"),
			db.Paginate(filter.Page, filter.PageSize),
		).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list visits", "error", err)
		return nil, 0, fmt.Errorf("failed to list visits: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *VisitRepositoryImpl) MaxVisitNumber(ctx context.Context, agreementID string) (int, error) {
	var highest int
	err := db.GetTxFromContext(ctx, r.db).Model(&models.VisitModel{}).
		Where("agreement_id = ?", agreementID).
		Select("COALESCE(MAX(visit_number), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read highest visit number: %w", err)
	}
	return highest, nil
}

type PhotoRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.VisitMapper
	logger logger.Interface
}

func NewPhotoRepository(db *gorm.DB, logger logger.Interface) visit.PhotoRepository {
	return &PhotoRepositoryImpl{
		db:     db,
		mapper: mappers.NewVisitMapper(),
		logger: logger,
	}
}

func (r *PhotoRepositoryImpl) Create(ctx context.Context, p *visit.Photo) error {
	model := r.mapper.PhotoToModel(p)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create visit photo", "visit_id", model.VisitID, "error", err)
		return fmt.Errorf("failed to create visit photo: %w", err)
	}
	return nil
}

func (r *PhotoRepositoryImpl) ListByVisit(ctx context.Context, visitID string) ([]*visit.Photo, error) {
	var rows []*models.VisitPhotoModel
	if err := db.GetTxFromContext(ctx, r.db).Where("visit_id = ?", visitID).Order("taken_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list visit photos: %w", err)
	}
	photos := make([]*visit.Photo, 0, len(rows))
	for _, row := range rows {
		photos = append(photos, r.mapper.PhotoToEntity(row))
	}
	return photos, nil
}
