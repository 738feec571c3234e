package mappers

import (
	"fmt"

	"solarops/internal/domain/installation"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/mapper"
)

type InstallationMapper interface {
	ToEntity(model *models.InstallationModel) (*installation.Installation, error)
	ToModel(entity *installation.Installation) *models.InstallationModel
	ToEntities(models []*models.InstallationModel) ([]*installation.Installation, error)
}

type InstallationMapperImpl struct{}

func NewInstallationMapper() InstallationMapper {
	return &InstallationMapperImpl{}
}

func (m *InstallationMapperImpl) ToEntity(model *models.InstallationModel) (*installation.Installation, error) {
	if model == nil {
		return nil, nil
	}
	systemType := installation.SystemType(model.SystemType)
	if !systemType.IsValid() {
		return nil, fmt.Errorf("invalid system type: %s", model.SystemType)
	}
	return installation.ReconstructInstallation(
		model.ID,
		model.CustomerName,
		model.Address,
		systemType,
		model.CapacityKw,
		model.Notes,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *InstallationMapperImpl) ToModel(entity *installation.Installation) *models.InstallationModel {
	if entity == nil {
		return nil
	}
	return &models.InstallationModel{
		ID:           entity.ID(),
		CustomerName: entity.CustomerName(),
		Address:      entity.Address(),
		SystemType:   entity.SystemType().String(),
		CapacityKw:   entity.CapacityKw(),
		Notes:        entity.Notes(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *InstallationMapperImpl) ToEntities(list []*models.InstallationModel) ([]*installation.Installation, error) {
	return mapper.ToEntities(list, m.ToEntity, func(model *models.InstallationModel) string { return model.ID })
}
