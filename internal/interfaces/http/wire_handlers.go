package http

import (
	"context"

	"solarops/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	installationHandler *handlers.InstallationHandler
	agreementHandler    *handlers.AgreementHandler
	addonHandler        *handlers.AddonHandler
	visitHandler        *handlers.VisitHandler
	checklistHandler    *handlers.ChecklistHandler
	templateHandler     *handlers.TemplateHandler
	healthHandler       *handlers.HealthHandler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs
	log := c.log

	return &allHandlers{
		installationHandler: handlers.NewInstallationHandler(u.createInstallationUC, u.getInstallationUC, u.listInstallationsUC, log),
		agreementHandler: handlers.NewAgreementHandler(handlers.AgreementUseCases{
			Create:   u.createAgreementUC,
			Update:   u.updateAgreementUC,
			Activate: u.activateAgreementUC,
			Cancel:   u.cancelAgreementUC,
			Status:   u.changeStatusUC,
			Price:    u.calculatePriceUC,
			Get:      u.getAgreementUC,
			List:     u.listAgreementsUC,
			Maintain: u.maintainAgreementsUC,
		}, log),
		addonHandler: handlers.NewAddonHandler(u.createAddonProductUC, u.updateAddonProductUC, u.listAddonProductsUC, log),
		visitHandler: handlers.NewVisitHandler(handlers.VisitUseCases{
			Create:          u.createVisitUC,
			Start:           u.startVisitUC,
			Complete:        u.completeVisitUC,
			Cancel:          u.cancelVisitUC,
			Reschedule:      u.rescheduleVisitUC,
			Update:          u.updateVisitUC,
			RecordSignature: u.recordSignatureUC,
			AddPhoto:        u.addPhotoUC,
			Get:             u.getVisitUC,
			List:            u.listVisitsUC,
			ExportInvoice:   u.exportInvoiceUC,
		}, log),
		checklistHandler: handlers.NewChecklistHandler(handlers.ChecklistUseCases{
			Create:      u.createChecklistUC,
			Start:       u.startChecklistUC,
			UpdateItem:  u.updateItemUC,
			UpdateItems: u.updateItemsUC,
			Complete:    u.completeChecklistUC,
			Get:         u.getChecklistUC,
			ListByVisit: u.listVisitChecklistsUC,
			Report:      u.checklistReportUC,
			Visit:       u.getVisitUC,
		}, log),
		templateHandler: handlers.NewTemplateHandler(handlers.TemplateUseCases{
			Create: u.createTemplateUC,
			Revise: u.reviseTemplateUC,
			Get:    u.getTemplateUC,
			List:   u.listTemplatesUC,
			Seed:   u.seedTemplatesUC,
		}, log),
		healthHandler: handlers.NewHealthHandler(c.healthChecks(), log),
	}
}

// healthChecks lists the dependencies reported by /health.
func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	return checks
}
