package http

import (
	agreementUsecases "solarops/internal/application/agreement/usecases"
	checklistUsecases "solarops/internal/application/checklist/usecases"
	installationUsecases "solarops/internal/application/installation/usecases"
	visitUsecases "solarops/internal/application/visit/usecases"
	"solarops/internal/infrastructure/persistence/seeds"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Installation
	createInstallationUC *installationUsecases.CreateInstallationUseCase
	getInstallationUC    *installationUsecases.GetInstallationUseCase
	listInstallationsUC  *installationUsecases.ListInstallationsUseCase

	// Agreement
	createAgreementUC    *agreementUsecases.CreateAgreementUseCase
	updateAgreementUC    *agreementUsecases.UpdateAgreementUseCase
	activateAgreementUC  *agreementUsecases.ActivateAgreementUseCase
	cancelAgreementUC    *agreementUsecases.CancelAgreementUseCase
	changeStatusUC       *agreementUsecases.ChangeAgreementStatusUseCase
	calculatePriceUC     *agreementUsecases.CalculatePriceUseCase
	getAgreementUC       *agreementUsecases.GetAgreementUseCase
	listAgreementsUC     *agreementUsecases.ListAgreementsUseCase
	maintainAgreementsUC *agreementUsecases.MaintainAgreementsUseCase
	createAddonProductUC *agreementUsecases.CreateAddonProductUseCase
	updateAddonProductUC *agreementUsecases.UpdateAddonProductUseCase
	listAddonProductsUC  *agreementUsecases.ListAddonProductsUseCase

	// Visit
	createVisitUC     *visitUsecases.CreateVisitUseCase
	startVisitUC      *visitUsecases.StartVisitUseCase
	completeVisitUC   *visitUsecases.CompleteVisitUseCase
	cancelVisitUC     *visitUsecases.CancelVisitUseCase
	rescheduleVisitUC *visitUsecases.RescheduleVisitUseCase
	updateVisitUC     *visitUsecases.UpdateVisitUseCase
	recordSignatureUC *visitUsecases.RecordSignatureUseCase
	addPhotoUC        *visitUsecases.AddPhotoUseCase
	getVisitUC        *visitUsecases.GetVisitUseCase
	listVisitsUC      *visitUsecases.ListVisitsUseCase
	exportInvoiceUC   *visitUsecases.ExportInvoiceUseCase

	// Checklist
	createChecklistUC     *checklistUsecases.CreateChecklistUseCase
	startChecklistUC      *checklistUsecases.StartChecklistUseCase
	updateItemUC          *checklistUsecases.UpdateItemUseCase
	updateItemsUC         *checklistUsecases.UpdateItemsUseCase
	completeChecklistUC   *checklistUsecases.CompleteChecklistUseCase
	getChecklistUC        *checklistUsecases.GetChecklistUseCase
	listVisitChecklistsUC *checklistUsecases.ListVisitChecklistsUseCase
	checklistReportUC     *checklistUsecases.ChecklistReportUseCase

	// Checklist templates
	createTemplateUC *checklistUsecases.CreateTemplateUseCase
	reviseTemplateUC *checklistUsecases.ReviseTemplateUseCase
	getTemplateUC    *checklistUsecases.GetTemplateUseCase
	listTemplatesUC  *checklistUsecases.ListTemplatesUseCase
	seedTemplatesUC  *checklistUsecases.SeedTemplatesUseCase
}

// newUseCases builds every use case from the repositories and shared services
// created in initInfrastructure.
func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	log := c.log

	return &allUseCases{
		createInstallationUC: installationUsecases.NewCreateInstallationUseCase(r.installationRepo, log),
		getInstallationUC:    installationUsecases.NewGetInstallationUseCase(r.installationRepo, log),
		listInstallationsUC:  installationUsecases.NewListInstallationsUseCase(r.installationRepo, log),

		createAgreementUC: agreementUsecases.NewCreateAgreementUseCase(
			r.agreementRepo, r.planRepo, r.addonRepo, r.installationRepo, r.sequences,
			c.txMgr, c.dispatcher, c.recorder, log,
		),
		updateAgreementUC:    agreementUsecases.NewUpdateAgreementUseCase(r.agreementRepo, r.planRepo, r.addonRepo, c.txMgr, log),
		activateAgreementUC:  agreementUsecases.NewActivateAgreementUseCase(r.agreementRepo, c.dispatcher, log),
		cancelAgreementUC:    agreementUsecases.NewCancelAgreementUseCase(r.agreementRepo, c.dispatcher, log),
		changeStatusUC:       agreementUsecases.NewChangeAgreementStatusUseCase(r.agreementRepo, log),
		calculatePriceUC:     agreementUsecases.NewCalculatePriceUseCase(r.addonRepo, log),
		getAgreementUC:       agreementUsecases.NewGetAgreementUseCase(r.agreementRepo, r.planRepo, log),
		listAgreementsUC:     agreementUsecases.NewListAgreementsUseCase(r.agreementRepo, log),
		maintainAgreementsUC: agreementUsecases.NewMaintainAgreementsUseCase(r.agreementRepo, c.dispatcher, log),
		createAddonProductUC: agreementUsecases.NewCreateAddonProductUseCase(r.addonRepo, log),
		updateAddonProductUC: agreementUsecases.NewUpdateAddonProductUseCase(r.addonRepo, log),
		listAddonProductsUC:  agreementUsecases.NewListAddonProductsUseCase(r.addonRepo, log),

		createVisitUC: visitUsecases.NewCreateVisitUseCase(
			r.visitRepo, r.agreementRepo, r.sequences, c.integrations.technicians, c.txMgr, log,
		),
		startVisitUC: visitUsecases.NewStartVisitUseCase(r.visitRepo, log),
		completeVisitUC: visitUsecases.NewCompleteVisitUseCase(
			r.visitRepo, r.checklistRepo, r.planRepo, c.txMgr, c.dispatcher, c.recorder, log,
		),
		cancelVisitUC:     visitUsecases.NewCancelVisitUseCase(r.visitRepo, c.dispatcher, log),
		rescheduleVisitUC: visitUsecases.NewRescheduleVisitUseCase(r.visitRepo, log),
		updateVisitUC:     visitUsecases.NewUpdateVisitUseCase(r.visitRepo, c.integrations.technicians, log),
		recordSignatureUC: visitUsecases.NewRecordSignatureUseCase(r.visitRepo, log),
		addPhotoUC:        visitUsecases.NewAddPhotoUseCase(r.visitRepo, r.photoRepo, log),
		getVisitUC:        visitUsecases.NewGetVisitUseCase(r.visitRepo, r.photoRepo, log),
		listVisitsUC:      visitUsecases.NewListVisitsUseCase(r.visitRepo, log),
		exportInvoiceUC: visitUsecases.NewExportInvoiceUseCase(
			r.visitRepo, r.agreementRepo, r.addonRepo, c.integrations.accounting, log,
		),

		createChecklistUC: checklistUsecases.NewCreateChecklistUseCase(
			r.checklistRepo, r.templateRepo, r.visitRepo, c.txMgr, log,
		),
		startChecklistUC: checklistUsecases.NewStartChecklistUseCase(r.checklistRepo, log),
		updateItemUC:     checklistUsecases.NewUpdateItemUseCase(r.checklistRepo, r.templateRepo, c.txMgr, log),
		updateItemsUC:    checklistUsecases.NewUpdateItemsUseCase(r.checklistRepo, r.templateRepo, c.txMgr, log),
		completeChecklistUC: checklistUsecases.NewCompleteChecklistUseCase(
			r.checklistRepo, r.templateRepo, c.txMgr, c.dispatcher, c.recorder, log,
		),
		getChecklistUC:        checklistUsecases.NewGetChecklistUseCase(r.checklistRepo, log),
		listVisitChecklistsUC: checklistUsecases.NewListVisitChecklistsUseCase(r.checklistRepo, log),
		checklistReportUC:     checklistUsecases.NewChecklistReportUseCase(r.checklistRepo, r.templateRepo, c.renderer, log),

		createTemplateUC: checklistUsecases.NewCreateTemplateUseCase(r.templateRepo, log),
		reviseTemplateUC: checklistUsecases.NewReviseTemplateUseCase(r.templateRepo, c.txMgr, c.dispatcher, log),
		getTemplateUC:    checklistUsecases.NewGetTemplateUseCase(r.templateRepo, log),
		listTemplatesUC:  checklistUsecases.NewListTemplatesUseCase(r.templateRepo, log),
		seedTemplatesUC:  checklistUsecases.NewSeedTemplatesUseCase(r.templateRepo, seeds.NewBuiltinTemplateSource(), c.txMgr, log),
	}
}
