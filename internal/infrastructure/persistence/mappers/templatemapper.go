package mappers

import (
	"gorm.io/datatypes"

	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/infrastructure/persistence/models"
)

type TemplateMapper interface {
	ToEntity(model *models.ChecklistTemplateModel, items []*models.TemplateItemModel) (*checklist.Template, error)
	ToModel(entity *checklist.Template) *models.ChecklistTemplateModel
	ItemsToModels(entity *checklist.Template) []*models.TemplateItemModel
}

type TemplateMapperImpl struct{}

func NewTemplateMapper() TemplateMapper {
	return &TemplateMapperImpl{}
}

func (m *TemplateMapperImpl) ToEntity(model *models.ChecklistTemplateModel, items []*models.TemplateItemModel) (*checklist.Template, error) {
	if model == nil {
		return nil, nil
	}
	entities := make([]*checklist.TemplateItem, 0, len(items))
	for _, row := range items {
		entities = append(entities, checklist.ReconstructTemplateItem(
			row.ID,
			row.TemplateID,
			row.Category,
			row.SortOrder,
			row.Description,
			vo.InputType(row.InputType),
			row.MinValue,
			row.MaxValue,
			[]string(row.Options),
			row.IsMandatory,
			row.PhotoRequired,
			row.HelpText,
		))
	}
	return checklist.ReconstructTemplate(
		model.ID,
		model.FamilyID,
		model.Name,
		model.Description,
		model.SystemType,
		model.VisitType,
		model.Version,
		model.IsActive,
		entities,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TemplateMapperImpl) ToModel(entity *checklist.Template) *models.ChecklistTemplateModel {
	if entity == nil {
		return nil
	}
	return &models.ChecklistTemplateModel{
		ID:          entity.ID(),
		FamilyID:    entity.FamilyID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		SystemType:  entity.SystemType(),
		VisitType:   entity.VisitType(),
		Version:     entity.Version(),
		IsActive:    entity.IsActive(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func (m *TemplateMapperImpl) ItemsToModels(entity *checklist.Template) []*models.TemplateItemModel {
	rows := make([]*models.TemplateItemModel, 0, len(entity.Items()))
	for _, item := range entity.Items() {
		rows = append(rows, &models.TemplateItemModel{
			ID:            item.ID(),
			TemplateID:    entity.ID(),
			Category:      item.Category(),
			SortOrder:     item.SortOrder(),
			Description:   item.Description(),
			InputType:     item.InputType().String(),
			MinValue:      item.MinValue(),
			MaxValue:      item.MaxValue(),
			Options:       datatypes.JSONSlice[string](item.Options()),
			IsMandatory:   item.IsMandatory(),
			PhotoRequired: item.PhotoRequired(),
			HelpText:      item.HelpText(),
		})
	}
	return rows
}
