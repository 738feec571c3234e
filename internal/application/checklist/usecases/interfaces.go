package usecases

import (
	"context"
	"time"

	"solarops/internal/application/checklist/dto"
	"solarops/internal/domain/checklist"
)

// ChecklistMetrics counts completion outcomes.
type ChecklistMetrics interface {
	ChecklistCompleted()
	ChecklistCompletionRejected()
}

// ReportData is everything a findings report shows.
type ReportData struct {
	ChecklistID  string
	VisitID      string
	TemplateName string
	Version      int
	TechnicianID string
	Status       string
	CompletedAt  *time.Time
	Notes        string
	Summary      checklist.Summary
	Findings     []checklist.Finding
	Deviations   []checklist.Deviation
	GeneratedAt  time.Time
}

// ReportRenderer turns report data into sanitized HTML.
type ReportRenderer interface {
	RenderHTML(ctx context.Context, data ReportData) (string, error)
}

// TemplateSource supplies the built-in template definitions.
type TemplateSource interface {
	Definitions() ([]checklist.TemplateDefinition, error)
}

type CreateTemplateExecutor interface {
	Execute(ctx context.Context, cmd CreateTemplateCommand) (*dto.TemplateDTO, error)
}

type ReviseTemplateExecutor interface {
	Execute(ctx context.Context, cmd ReviseTemplateCommand) (*dto.TemplateDTO, error)
}

type GetTemplateExecutor interface {
	Execute(ctx context.Context, templateID string) (*dto.TemplateDTO, error)
}

type ListTemplatesExecutor interface {
	Execute(ctx context.Context, query ListTemplatesQuery) (*ListTemplatesResult, error)
}

type CreateChecklistExecutor interface {
	Execute(ctx context.Context, cmd CreateChecklistCommand) (*dto.ChecklistDTO, error)
}

type StartChecklistExecutor interface {
	Execute(ctx context.Context, cmd StartChecklistCommand) (*dto.ChecklistDTO, error)
}

type UpdateItemExecutor interface {
	Execute(ctx context.Context, cmd UpdateItemCommand) (*dto.ItemDTO, error)
}

type UpdateItemsExecutor interface {
	Execute(ctx context.Context, cmd UpdateItemsCommand) (*dto.ChecklistDTO, error)
}

type CompleteChecklistExecutor interface {
	Execute(ctx context.Context, cmd CompleteChecklistCommand) (*dto.ChecklistDTO, error)
}

type GetChecklistExecutor interface {
	Execute(ctx context.Context, checklistID string) (*dto.ChecklistDTO, error)
}

type ListVisitChecklistsExecutor interface {
	Execute(ctx context.Context, visitID string) ([]*dto.ChecklistDTO, error)
}

type ChecklistReportExecutor interface {
	Execute(ctx context.Context, checklistID string) (*ChecklistReport, error)
}

type SeedTemplatesExecutor interface {
	Execute(ctx context.Context) (*SeedTemplatesResult, error)
}
