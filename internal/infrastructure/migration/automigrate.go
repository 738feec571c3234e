package migration

import (
	"solarops/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []any {
	return []any{
		&models.InstallationModel{},
		&models.AddonProductModel{},
		&models.SequenceModel{},
		&models.AgreementModel{},
		&models.AgreementAddonModel{},
		&models.ServicePlanModel{},
		&models.VisitModel{},
		&models.VisitPhotoModel{},
		&models.ChecklistTemplateModel{},
		&models.TemplateItemModel{},
		&models.ChecklistModel{},
		&models.ChecklistItemModel{},
	}
}
