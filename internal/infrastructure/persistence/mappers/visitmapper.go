package mappers

import (
	"fmt"

	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/mapper"
)

type VisitMapper interface {
	ToEntity(model *models.VisitModel) (*visit.Visit, error)
	ToModel(entity *visit.Visit) *models.VisitModel
	ToEntities(models []*models.VisitModel) ([]*visit.Visit, error)
	PhotoToEntity(model *models.VisitPhotoModel) *visit.Photo
	PhotoToModel(entity *visit.Photo) *models.VisitPhotoModel
}

type VisitMapperImpl struct{}

func NewVisitMapper() VisitMapper {
	return &VisitMapperImpl{}
}

func (m *VisitMapperImpl) ToEntity(model *models.VisitModel) (*visit.Visit, error) {
	if model == nil {
		return nil, nil
	}
	visitType, err := vo.NewVisitType(model.VisitType)
	if err != nil {
		return nil, fmt.Errorf("visit %s: %w", model.ID, err)
	}
	return visit.ReconstructVisit(
		model.ID,
		model.AgreementID,
		model.TechnicianID,
		model.VisitNumber,
		model.ScheduledDate,
		model.ScheduledEndDate,
		vo.VisitStatus(model.Status),
		visitType,
		model.ActualStartDate,
		model.ActualEndDate,
		model.DurationMinutes,
		model.Notes,
		model.CustomerSignature,
		model.SignedAt,
		model.CompletedAt,
		model.CancelledAt,
		model.CancellationReason,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *VisitMapperImpl) ToModel(entity *visit.Visit) *models.VisitModel {
	if entity == nil {
		return nil
	}
	return &models.VisitModel{
		ID:                 entity.ID(),
		AgreementID:        entity.AgreementID(),
		TechnicianID:       entity.TechnicianID(),
		VisitNumber:        entity.VisitNumber(),
		ScheduledDate:      entity.ScheduledDate(),
		ScheduledEndDate:   entity.ScheduledEndDate(),
		Status:             entity.Status().String(),
		VisitType:          entity.VisitType().String(),
		ActualStartDate:    entity.ActualStartDate(),
		ActualEndDate:      entity.ActualEndDate(),
		DurationMinutes:    entity.DurationMinutes(),
		Notes:              entity.Notes(),
		CustomerSignature:  entity.CustomerSignature(),
		SignedAt:           entity.SignedAt(),
		CompletedAt:        entity.CompletedAt(),
		CancelledAt:        entity.CancelledAt(),
		CancellationReason: entity.CancellationReason(),
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *VisitMapperImpl) ToEntities(list []*models.VisitModel) ([]*visit.Visit, error) {
	return mapper.ToEntities(list, m.ToEntity, func(model *models.VisitModel) string { return model.ID })
}

func (m *VisitMapperImpl) PhotoToEntity(model *models.VisitPhotoModel) *visit.Photo {
	return visit.ReconstructPhoto(model.ID, model.VisitID, model.URL, model.Caption, model.TakenAt, model.CreatedAt)
}

func (m *VisitMapperImpl) PhotoToModel(entity *visit.Photo) *models.VisitPhotoModel {
	return &models.VisitPhotoModel{
		ID:        entity.ID(),
		VisitID:   entity.VisitID(),
		URL:       entity.URL(),
		Caption:   entity.Caption(),
		TakenAt:   entity.TakenAt(),
		CreatedAt: entity.CreatedAt(),
	}
}
