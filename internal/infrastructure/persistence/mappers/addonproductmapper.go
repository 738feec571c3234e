package mappers

import (
	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/mapper"
)

type AddonProductMapper interface {
	ToEntity(model *models.AddonProductModel) (*agreement.AddonProduct, error)
	ToModel(entity *agreement.AddonProduct) *models.AddonProductModel
	ToEntities(models []*models.AddonProductModel) ([]*agreement.AddonProduct, error)
}

type AddonProductMapperImpl struct{}

func NewAddonProductMapper() AddonProductMapper {
	return &AddonProductMapperImpl{}
}

func (m *AddonProductMapperImpl) ToEntity(model *models.AddonProductModel) (*agreement.AddonProduct, error) {
	if model == nil {
		return nil, nil
	}
	return agreement.ReconstructAddonProduct(
		model.ID,
		model.Name,
		model.Description,
		vo.AddonCategory(model.Category),
		vo.AddonFrequency(model.Frequency),
		model.BasePrice,
		model.Unit,
		model.IsActive,
		model.SortOrder,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *AddonProductMapperImpl) ToModel(entity *agreement.AddonProduct) *models.AddonProductModel {
	if entity == nil {
		return nil
	}
	return &models.AddonProductModel{
		ID:          entity.ID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		Category:    entity.Category().String(),
		Frequency:   entity.Frequency().String(),
		BasePrice:   entity.BasePrice(),
		Unit:        entity.Unit(),
		IsActive:    entity.IsActive(),
		SortOrder:   entity.SortOrder(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *AddonProductMapperImpl) ToEntities(list []*models.AddonProductModel) ([]*agreement.AddonProduct, error) {
	return mapper.ToEntities(list, m.ToEntity, func(model *models.AddonProductModel) string { return model.ID })
}
