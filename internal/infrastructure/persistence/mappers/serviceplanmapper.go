package mappers

import (
	"solarops/internal/domain/agreement"
	"solarops/internal/infrastructure/persistence/models"
)

type ServicePlanMapper interface {
	ToEntity(model *models.ServicePlanModel) (*agreement.ServicePlan, error)
	ToModel(entity *agreement.ServicePlan) *models.ServicePlanModel
}

type ServicePlanMapperImpl struct{}

func NewServicePlanMapper() ServicePlanMapper {
	return &ServicePlanMapperImpl{}
}

func (m *ServicePlanMapperImpl) ToEntity(model *models.ServicePlanModel) (*agreement.ServicePlan, error) {
	if model == nil {
		return nil, nil
	}
	return agreement.ReconstructServicePlan(
		model.ID,
		model.AgreementID,
		model.VisitFrequency,
		model.NextVisitDate,
		model.SeasonalAdjust,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ServicePlanMapperImpl) ToModel(entity *agreement.ServicePlan) *models.ServicePlanModel {
	if entity == nil {
		return nil
	}
	return &models.ServicePlanModel{
		ID:             entity.ID(),
		AgreementID:    entity.AgreementID(),
		VisitFrequency: entity.VisitFrequency(),
		NextVisitDate:  entity.NextVisitDate(),
		SeasonalAdjust: entity.SeasonalAdjust(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
}
