package usecases

import (
	"context"
	"time"

	chkusecases "solarops/internal/application/checklist/usecases"
	"solarops/internal/domain/agreement"
	"solarops/internal/domain/checklist"
	"solarops/internal/domain/visit"
)

type VisitReader interface {
	GetByID(ctx context.Context, id string) (*visit.Visit, error)
}

type AgreementReader interface {
	GetByID(ctx context.Context, id string) (*agreement.Agreement, error)
}

type ChecklistReader interface {
	ListByVisit(ctx context.Context, visitID string) ([]*checklist.Checklist, error)
}

type TemplateReader interface {
	GetByID(ctx context.Context, id string) (*checklist.Template, error)
}

// Message is one outgoing email. TextBody is the plain alternative of HTMLBody.
type Message struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ServiceReportData describes a completed visit and the checklists worked on it.
type ServiceReportData struct {
	AgreementNumber string
	VisitID         string
	VisitNumber     int
	VisitType       string
	TechnicianID    string
	CompletedAt     time.Time
	DurationMinutes *int
	Notes           string
	Checklists      []chkusecases.ReportData
}

type RenderedReport struct {
	HTML string
	Text string
}

type ServiceReportRenderer interface {
	RenderServiceReport(ctx context.Context, data ServiceReportData) (*RenderedReport, error)
}

type SendServiceReportExecutor interface {
	Execute(ctx context.Context, cmd SendServiceReportCommand) error
}
