package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"solarops/internal/application/visit/dto"
)

// TechnicianDirectory looks technicians up in the external employee system.
type TechnicianDirectory interface {
	TechnicianExists(ctx context.Context, technicianID string) (bool, error)
}

// InvoiceLine is one billable row of a visit invoice.
type InvoiceLine struct {
	Description string          `json:"description"`
	AddonID     string          `json:"addon_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceDraft is what the accounting system receives for a completed visit.
type InvoiceDraft struct {
	AgreementNumber string          `json:"agreement_number"`
	InstallationID  string          `json:"installation_id"`
	VisitID         string          `json:"visit_id"`
	VisitNumber     int             `json:"visit_number"`
	CompletedAt     time.Time       `json:"completed_at"`
	Lines           []InvoiceLine   `json:"lines"`
	Total           decimal.Decimal `json:"total"`
}

// AccountingExporter posts invoice drafts and returns the accounting system's reference.
type AccountingExporter interface {
	ExportInvoice(ctx context.Context, draft InvoiceDraft) (string, error)
}

// VisitMetrics counts completion outcomes.
type VisitMetrics interface {
	VisitCompleted()
	VisitCompletionRejected()
}

type CreateVisitExecutor interface {
	Execute(ctx context.Context, cmd CreateVisitCommand) (*dto.VisitDTO, error)
}

type StartVisitExecutor interface {
	Execute(ctx context.Context, cmd StartVisitCommand) (*dto.VisitDTO, error)
}

type CompleteVisitExecutor interface {
	Execute(ctx context.Context, cmd CompleteVisitCommand) (*dto.VisitDTO, error)
}

type CancelVisitExecutor interface {
	Execute(ctx context.Context, cmd CancelVisitCommand) (*dto.VisitDTO, error)
}

type RescheduleVisitExecutor interface {
	Execute(ctx context.Context, cmd RescheduleVisitCommand) (*dto.VisitDTO, error)
}

type UpdateVisitExecutor interface {
	Execute(ctx context.Context, cmd UpdateVisitCommand) (*dto.VisitDTO, error)
}

type RecordSignatureExecutor interface {
	Execute(ctx context.Context, cmd RecordSignatureCommand) (*dto.VisitDTO, error)
}

type AddPhotoExecutor interface {
	Execute(ctx context.Context, cmd AddPhotoCommand) (*dto.PhotoDTO, error)
}

type GetVisitExecutor interface {
	Execute(ctx context.Context, visitID string) (*dto.VisitDTO, error)
}

type ListVisitsExecutor interface {
	Execute(ctx context.Context, query ListVisitsQuery) (*ListVisitsResult, error)
}

type ExportInvoiceExecutor interface {
	Execute(ctx context.Context, cmd ExportInvoiceCommand) (*ExportInvoiceResult, error)
}
