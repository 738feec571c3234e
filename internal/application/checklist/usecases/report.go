package usecases

import (
	"context"
	"time"

	"solarops/internal/domain/checklist"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type ChecklistReport struct {
	ChecklistID string `json:"checklist_id"`
	HTML        string `json:"html"`
	Findings    int    `json:"findings"`
	Deviations  int    `json:"deviations"`
}

type ChecklistReportUseCase struct {
	checklistRepo checklist.Repository
	templateRepo  checklist.TemplateRepository
	renderer      ReportRenderer
	logger        logger.Interface
}

func NewChecklistReportUseCase(
	checklistRepo checklist.Repository,
	templateRepo checklist.TemplateRepository,
	renderer ReportRenderer,
	logger logger.Interface,
) *ChecklistReportUseCase {
	return &ChecklistReportUseCase{
		checklistRepo: checklistRepo,
		templateRepo:  templateRepo,
		renderer:      renderer,
		logger:        logger,
	}
}

func (uc *ChecklistReportUseCase) Execute(ctx context.Context, checklistID string) (*ChecklistReport, error) {
	uc.logger.Infow("executing checklist report use case", "checklist_id", checklistID)

	if checklistID == "" {
		return nil, errors.NewValidationError("checklist ID is required")
	}

	c, err := uc.checklistRepo.GetByID(ctx, checklistID)
	if err != nil {
		uc.logger.Errorw("failed to get checklist", "checklist_id", checklistID, "error", err)
		return nil, mapDomainError(err, "failed to get checklist")
	}

	tpl, err := uc.templateRepo.GetByID(ctx, c.TemplateID())
	if err != nil {
		uc.logger.Warnw("report template lookup failed", "template_id", c.TemplateID(), "error", err)
		tpl = nil
	}
	data := NewReportData(c, tpl, biztime.NowUTC())

	html, err := uc.renderer.RenderHTML(ctx, data)
	if err != nil {
		uc.logger.Errorw("failed to render checklist report", "checklist_id", checklistID, "error", err)
		return nil, errors.NewInternalError("failed to render checklist report")
	}

	return &ChecklistReport{ChecklistID: c.ID(), HTML: html, Findings: len(data.Findings), Deviations: len(data.Deviations)}, nil
}

// NewReportData collects what a findings report shows for c. tpl may be nil
// when the originating template can no longer be read.
func NewReportData(c *checklist.Checklist, tpl *checklist.Template, generatedAt time.Time) ReportData {
	data := ReportData{
		ChecklistID:  c.ID(),
		VisitID:      c.VisitID(),
		TechnicianID: c.TechnicianID(),
		Status:       c.Status().String(),
		CompletedAt:  c.CompletedAt(),
		Notes:        c.Notes(),
		Summary:      c.Summary(),
		Findings:     c.Findings(),
		GeneratedAt:  generatedAt,
	}
	if tpl != nil {
		data.TemplateName = tpl.Name()
		data.Version = tpl.Version()
		data.Deviations = c.Deviations(tpl)
	}
	return data
}
