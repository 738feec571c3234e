package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	chkusecases "solarops/internal/application/checklist/usecases"
	"solarops/internal/domain/agreement"
	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type SendServiceReportCommand struct {
	VisitID string
}

// SendServiceReportUseCase emails the service report of a completed visit to
// the operations mailbox.
type SendServiceReportUseCase struct {
	visits     VisitReader
	agreements AgreementReader
	checklists ChecklistReader
	templates  TemplateReader
	renderer   ServiceReportRenderer
	mailer     Mailer
	recipient  string
	logger     logger.Interface
}

func NewSendServiceReportUseCase(
	visits VisitReader,
	agreements AgreementReader,
	checklists ChecklistReader,
	templates TemplateReader,
	renderer ServiceReportRenderer,
	mailer Mailer,
	recipient string,
	logger logger.Interface,
) *SendServiceReportUseCase {
	return &SendServiceReportUseCase{
		visits:     visits,
		agreements: agreements,
		checklists: checklists,
		templates:  templates,
		renderer:   renderer,
		mailer:     mailer,
		recipient:  recipient,
		logger:     logger,
	}
}

func (uc *SendServiceReportUseCase) Execute(ctx context.Context, cmd SendServiceReportCommand) error {
	uc.logger.Infow("executing send service report use case", "visit_id", cmd.VisitID)

	if cmd.VisitID == "" {
		return errors.NewValidationError("visit ID is required")
	}
	if uc.recipient == "" {
		return errors.NewValidationError("no report recipient configured")
	}

	v, err := uc.visits.GetByID(ctx, cmd.VisitID)
	if err != nil {
		uc.logger.Errorw("failed to get visit", "visit_id", cmd.VisitID, "error", err)
		return mapLookupError(err, "failed to get visit")
	}
	if v.Status() != vo.VisitStatusCompleted || v.CompletedAt() == nil {
		return errors.NewInvalidStateError(fmt.Sprintf("visit is %s, only completed visits have a service report", v.Status()))
	}

	data := ServiceReportData{
		VisitID:         v.ID(),
		VisitNumber:     v.VisitNumber(),
		VisitType:       v.VisitType().String(),
		TechnicianID:    v.TechnicianID(),
		CompletedAt:     *v.CompletedAt(),
		DurationMinutes: v.DurationMinutes(),
		Notes:           v.Notes(),
	}

	a, err := uc.agreements.GetByID(ctx, v.AgreementID())
	if err != nil {
		uc.logger.Errorw("failed to get agreement", "agreement_id", v.AgreementID(), "error", err)
		return mapLookupError(err, "failed to get agreement")
	}
	data.AgreementNumber = a.AgreementNumber()

	checklists, err := uc.checklists.ListByVisit(ctx, v.ID())
	if err != nil {
		uc.logger.Errorw("failed to list visit checklists", "visit_id", v.ID(), "error", err)
		return errors.NewInternalError("failed to list visit checklists")
	}
	generatedAt := biztime.NowUTC()
	for _, c := range checklists {
		tpl, err := uc.templates.GetByID(ctx, c.TemplateID())
		if err != nil {
			uc.logger.Warnw("report template lookup failed", "template_id", c.TemplateID(), "error", err)
			tpl = nil
		}
		data.Checklists = append(data.Checklists, chkusecases.NewReportData(c, tpl, generatedAt))
	}

	rendered, err := uc.renderer.RenderServiceReport(ctx, data)
	if err != nil {
		uc.logger.Errorw("failed to render service report", "visit_id", v.ID(), "error", err)
		return errors.NewInternalError("failed to render service report")
	}

	msg := Message{
		To:       []string{uc.recipient},
		Subject:  fmt.Sprintf("Service report %s visit #%d", data.AgreementNumber, data.VisitNumber),
		HTMLBody: rendered.HTML,
		TextBody: rendered.Text,
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.logger.Errorw("failed to send service report", "visit_id", v.ID(), "error", err)
		return errors.NewInternalError("failed to send service report")
	}

	uc.logger.Infow("service report sent", "visit_id", v.ID(), "agreement_number", data.AgreementNumber, "checklists", len(data.Checklists))
	return nil
}

func mapLookupError(err error, fallback string) error {
	switch {
	case stderrors.Is(err, visit.ErrVisitNotFound),
		stderrors.Is(err, agreement.ErrAgreementNotFound):
		return errors.NewNotFoundError(err.Error())
	}
	return errors.NewInternalError(fallback)
}
