package mappers

import (
	"fmt"

	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/infrastructure/persistence/models"
)

type AgreementMapper interface {
	// ToEntity rebuilds an agreement from its row and its add-on rows.
	ToEntity(model *models.AgreementModel, addons []*models.AgreementAddonModel) (*agreement.Agreement, error)
	ToModel(entity *agreement.Agreement) *models.AgreementModel
	ToAddonModels(entity *agreement.Agreement) []*models.AgreementAddonModel
}

type AgreementMapperImpl struct{}

func NewAgreementMapper() AgreementMapper {
	return &AgreementMapperImpl{}
}

func (m *AgreementMapperImpl) ToEntity(model *models.AgreementModel, addons []*models.AgreementAddonModel) (*agreement.Agreement, error) {
	if model == nil {
		return nil, nil
	}

	agreementType, err := vo.NewAgreementType(model.AgreementType)
	if err != nil {
		return nil, fmt.Errorf("agreement %s: %w", model.ID, err)
	}
	slaLevel, err := vo.NewSLALevel(model.SLALevel)
	if err != nil {
		return nil, fmt.Errorf("agreement %s: %w", model.ID, err)
	}

	rows := make([]*agreement.AgreementAddon, 0, len(addons))
	for _, row := range addons {
		rows = append(rows, agreement.ReconstructAgreementAddon(
			row.ID,
			row.AgreementID,
			row.AddonID,
			row.Quantity,
			row.CustomPrice,
			row.Notes,
		))
	}

	return agreement.ReconstructAgreement(
		model.ID,
		model.AgreementNumber,
		model.InstallationID,
		agreementType,
		vo.AgreementStatus(model.Status),
		slaLevel,
		model.StartDate,
		model.EndDate,
		model.BasePrice,
		model.CalculatedPrice,
		model.DiscountPercent,
		model.AutoRenew,
		model.VisitFrequency,
		model.PreferredVisitDay,
		model.PreferredVisitTime,
		model.Notes,
		rows,
		model.SignedAt,
		model.CancelledAt,
		model.CancellationReason,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *AgreementMapperImpl) ToModel(entity *agreement.Agreement) *models.AgreementModel {
	if entity == nil {
		return nil
	}
	return &models.AgreementModel{
		ID:                 entity.ID(),
		AgreementNumber:    entity.AgreementNumber(),
		InstallationID:     entity.InstallationID(),
		AgreementType:      entity.AgreementType().String(),
		Status:             entity.Status().String(),
		SLALevel:           entity.SLALevel().String(),
		StartDate:          entity.StartDate(),
		EndDate:            entity.EndDate(),
		BasePrice:          entity.BasePrice(),
		CalculatedPrice:    entity.CalculatedPrice(),
		DiscountPercent:    entity.DiscountPercent(),
		AutoRenew:          entity.AutoRenew(),
		VisitFrequency:     entity.VisitFrequency(),
		PreferredVisitDay:  entity.PreferredVisitDay(),
		PreferredVisitTime: entity.PreferredVisitTime(),
		Notes:              entity.Notes(),
		SignedAt:           entity.SignedAt(),
		CancelledAt:        entity.CancelledAt(),
		CancellationReason: entity.CancellationReason(),
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *AgreementMapperImpl) ToAddonModels(entity *agreement.Agreement) []*models.AgreementAddonModel {
	rows := make([]*models.AgreementAddonModel, 0, len(entity.Addons()))
	for _, a := range entity.Addons() {
		rows = append(rows, &models.AgreementAddonModel{
			ID:          a.ID(),
			AgreementID: entity.ID(),
			AddonID:     a.AddonID(),
			Quantity:    a.Quantity(),
			CustomPrice: a.CustomPrice(),
			Notes:       a.Notes(),
		})
	}
	return rows
}
