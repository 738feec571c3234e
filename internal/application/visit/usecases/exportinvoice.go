package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"solarops/internal/domain/agreement"
	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type ExportInvoiceCommand struct {
	VisitID string
}

// ExportInvoiceResult carries the draft that was sent. Skipped is set when the
// visit has nothing billable and no draft was posted.
type ExportInvoiceResult struct {
	Reference string       `json:"reference,omitempty"`
	Skipped   bool         `json:"skipped"`
	Draft     InvoiceDraft `json:"draft"`
}

type ExportInvoiceUseCase struct {
	visitRepo     visit.Repository
	agreementRepo agreement.Repository
	addonRepo     agreement.AddonProductRepository
	exporter      AccountingExporter
	logger        logger.Interface
}

func NewExportInvoiceUseCase(
	visitRepo visit.Repository,
	agreementRepo agreement.Repository,
	addonRepo agreement.AddonProductRepository,
	exporter AccountingExporter,
	logger logger.Interface,
) *ExportInvoiceUseCase {
	return &ExportInvoiceUseCase{
		visitRepo:     visitRepo,
		agreementRepo: agreementRepo,
		addonRepo:     addonRepo,
		exporter:      exporter,
		logger:        logger,
	}
}

func (uc *ExportInvoiceUseCase) Execute(ctx context.Context, cmd ExportInvoiceCommand) (*ExportInvoiceResult, error) {
	uc.logger.Infow("executing export invoice use case", "visit_id", cmd.VisitID)

	if uc.exporter == nil {
		return nil, errors.NewBadRequestError("accounting integration is not configured")
	}
	if cmd.VisitID == "" {
		return nil, errors.NewValidationError("visit ID is required")
	}

	v, err := uc.visitRepo.GetByID(ctx, cmd.VisitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", cmd.VisitID, "error", err)
		return nil, mapDomainError(err, "failed to get visit")
	}
	if v.Status() != vo.VisitStatusCompleted || v.CompletedAt() == nil {
		return nil, errors.NewInvalidStateError("only completed visits can be invoiced", v.Status().String())
	}

	a, err := uc.agreementRepo.GetByID(ctx, v.AgreementID())
	if err != nil {
		uc.logger.Errorw("failed to get agreement", "agreement_id", v.AgreementID(), "error", err)
		return nil, mapDomainError(err, "failed to get agreement")
	}

	draft, err := uc.buildDraft(ctx, v, a)
	if err != nil {
		return nil, err
	}
	if len(draft.Lines) == 0 {
		uc.logger.Infow("visit has no billable add-ons, skipping export", "visit_id", v.ID())
		return &ExportInvoiceResult{Skipped: true, Draft: draft}, nil
	}

	ref, err := uc.exporter.ExportInvoice(ctx, draft)
	if err != nil {
		uc.logger.Errorw("failed to export invoice", "visit_id", v.ID(), "error", err)
		return nil, errors.NewInternalError("failed to export invoice")
	}

	uc.logger.Infow("invoice exported", "visit_id", v.ID(), "reference", ref, "total", draft.Total.String())
	return &ExportInvoiceResult{Reference: ref, Draft: draft}, nil
}

func (uc *ExportInvoiceUseCase) buildDraft(ctx context.Context, v *visit.Visit, a *agreement.Agreement) (InvoiceDraft, error) {
	draft := InvoiceDraft{
		AgreementNumber: a.AgreementNumber(),
		InstallationID:  a.InstallationID(),
		VisitID:         v.ID(),
		VisitNumber:     v.VisitNumber(),
		CompletedAt:     *v.CompletedAt(),
		Total:           decimal.Zero,
	}

	ids := a.AddonIDs()
	if len(ids) == 0 {
		return draft, nil
	}
	found, err := uc.addonRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load add-on products", "agreement_id", a.ID(), "error", err)
		return draft, errors.NewInternalError(fmt.Sprintf("failed to load add-on products for %s", a.AgreementNumber()))
	}
	products := make(map[string]*agreement.AddonProduct, len(found))
	for _, p := range found {
		products[p.ID()] = p
	}

	for _, l := range agreement.VisitChargeLines(a.AddonSelections(), products, v.VisitNumber()) {
		line := InvoiceLine{
			Description: l.Description,
			AddonID:     l.AddonID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice.Round(2),
			Total:       l.Total.Round(2),
		}
		draft.Lines = append(draft.Lines, line)
		draft.Total = draft.Total.Add(line.Total)
	}
	return draft, nil
}
