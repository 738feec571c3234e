package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/infrastructure/persistence/models"
)

type ChecklistMapper interface {
	ToEntity(model *models.ChecklistModel, items []*models.ChecklistItemModel) (*checklist.Checklist, error)
	ToModel(entity *checklist.Checklist) *models.ChecklistModel
	ItemToModel(item *checklist.Item) (*models.ChecklistItemModel, error)
	ItemsToModels(items []*checklist.Item) ([]*models.ChecklistItemModel, error)
}

type ChecklistMapperImpl struct{}

func NewChecklistMapper() ChecklistMapper {
	return &ChecklistMapperImpl{}
}

func (m *ChecklistMapperImpl) ToEntity(model *models.ChecklistModel, items []*models.ChecklistItemModel) (*checklist.Checklist, error) {
	if model == nil {
		return nil, nil
	}

	entities := make([]*checklist.Item, 0, len(items))
	for _, row := range items {
		item, err := m.itemToEntity(row)
		if err != nil {
			return nil, fmt.Errorf("checklist %s: %w", model.ID, err)
		}
		entities = append(entities, item)
	}

	return checklist.ReconstructChecklist(
		model.ID,
		model.VisitID,
		model.TemplateID,
		model.TechnicianID,
		vo.ChecklistStatus(model.Status),
		model.StartedAt,
		model.CompletedAt,
		model.Notes,
		entities,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *ChecklistMapperImpl) itemToEntity(row *models.ChecklistItemModel) (*checklist.Item, error) {
	var severity *vo.Severity
	if row.Severity != nil {
		s, err := vo.ParseSeverity(*row.Severity)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", row.ID, err)
		}
		severity = &s
	}

	var gps *vo.GPS
	if len(row.GPS) > 0 && string(row.GPS) != "null" {
		gps = &vo.GPS{}
		if err := json.Unmarshal(row.GPS, gps); err != nil {
			return nil, fmt.Errorf("item %s: failed to unmarshal gps: %w", row.ID, err)
		}
	}

	return checklist.ReconstructItem(
		row.ID,
		row.ChecklistID,
		row.TemplateItemID,
		row.SortOrder,
		row.Category,
		row.Description,
		vo.InputType(row.InputType),
		vo.ItemOutcome(row.Status),
		row.Value,
		row.NumericValue,
		row.Notes,
		severity,
		[]string(row.PhotoURLs),
		gps,
		row.CompletedAt,
		row.UpdatedAt,
	)
}

func (m *ChecklistMapperImpl) ToModel(entity *checklist.Checklist) *models.ChecklistModel {
	if entity == nil {
		return nil
	}
	return &models.ChecklistModel{
		ID:           entity.ID(),
		VisitID:      entity.VisitID(),
		TemplateID:   entity.TemplateID(),
		TechnicianID: entity.TechnicianID(),
		Status:       entity.Status().String(),
		StartedAt:    entity.StartedAt(),
		CompletedAt:  entity.CompletedAt(),
		Notes:        entity.Notes(),
		Version:      entity.Version(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *ChecklistMapperImpl) ItemToModel(item *checklist.Item) (*models.ChecklistItemModel, error) {
	var severity *string
	if item.Severity() != nil {
		s := item.Severity().String()
		severity = &s
	}

	var gps datatypes.JSON
	if item.GPS() != nil {
		raw, err := json.Marshal(item.GPS())
		if err != nil {
			return nil, fmt.Errorf("item %s: failed to marshal gps: %w", item.ID(), err)
		}
		gps = raw
	}

	return &models.ChecklistItemModel{
		ID:             item.ID(),
		ChecklistID:    item.ChecklistID(),
		TemplateItemID: item.TemplateItemID(),
		SortOrder:      item.SortOrder(),
		Category:       item.Category(),
		Description:    item.Description(),
		InputType:      item.InputType().String(),
		Status:         item.Status().String(),
		Value:          item.Value(),
		NumericValue:   item.NumericValue(),
		Notes:          item.Notes(),
		Severity:       severity,
		PhotoURLs:      datatypes.JSONSlice[string](item.PhotoURLs()),
		GPS:            gps,
		CompletedAt:    item.CompletedAt(),
		UpdatedAt:      item.UpdatedAt(),
	}, nil
}

func (m *ChecklistMapperImpl) ItemsToModels(items []*checklist.Item) ([]*models.ChecklistItemModel, error) {
	rows := make([]*models.ChecklistItemModel, 0, len(items))
	for _, item := range items {
		row, err := m.ItemToModel(item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
