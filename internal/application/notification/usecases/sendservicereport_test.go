package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/domain/agreement"
	agreementvo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/domain/checklist"
	checklistvo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/domain/visit"
	vo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (n nopLogger) With(...any) logger.Interface  { return n }
func (n nopLogger) Named(string) logger.Interface { return n }
func (nopLogger) Debugw(string, ...any)           {}
func (nopLogger) Infow(string, ...any)            {}
func (nopLogger) Warnw(string, ...any)            {}
func (nopLogger) Errorw(string, ...any)           {}

type fakeVisits struct{ v *visit.Visit }

func (f *fakeVisits) GetByID(ctx context.Context, id string) (*visit.Visit, error) {
	if f.v == nil || f.v.ID() != id {
		return nil, visit.ErrVisitNotFound
	}
	return f.v, nil
}

type fakeAgreements struct{ a *agreement.Agreement }

func (f *fakeAgreements) GetByID(ctx context.Context, id string) (*agreement.Agreement, error) {
	if f.a == nil || f.a.ID() != id {
		return nil, agreement.ErrAgreementNotFound
	}
	return f.a, nil
}

type fakeChecklists struct {
	items []*checklist.Checklist
	err   error
}

func (f *fakeChecklists) ListByVisit(ctx context.Context, visitID string) ([]*checklist.Checklist, error) {
	return f.items, f.err
}

type fakeTemplates struct{}

func (fakeTemplates) GetByID(ctx context.Context, id string) (*checklist.Template, error) {
	return nil, checklist.ErrTemplateNotFound
}

type fakeRenderer struct {
	got *ServiceReportData
	err error
}

func (f *fakeRenderer) RenderServiceReport(ctx context.Context, data ServiceReportData) (*RenderedReport, error) {
	f.got = &data
	if f.err != nil {
		return nil, f.err
	}
	return &RenderedReport{HTML: "<p>report</p>", Text: "report"}, nil
}

type fakeMailer struct {
	sent []Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testAgreement(t *testing.T) *agreement.Agreement {
	t.Helper()
	price := decimal.RequireFromString("8500")
	a, err := agreement.ReconstructAgreement(
		"agr_1", "SA-00012-2026", "inst_1",
		agreementvo.AgreementTypeStandard, agreementvo.AgreementStatusActive, agreementvo.SLALevelStandard,
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), nil,
		price, &price, nil,
		false, 2, "", "", "",
		nil, nil, nil, nil,
		1, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return a
}

func testVisit(t *testing.T, status vo.VisitStatus) *visit.Visit {
	t.Helper()
	start := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	var end, completed *time.Time
	var duration *int
	if status == vo.VisitStatusCompleted {
		e := start.Add(95 * time.Minute)
		end, completed = &e, &e
		d := 95
		duration = &d
	}
	v, err := visit.ReconstructVisit(
		"vis_1", "agr_1", "tech_1",
		3, start, nil,
		status, vo.VisitTypeRoutine,
		&start, end, duration,
		"inverter fan replaced", nil,
		nil, completed, nil, nil,
		2, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return v
}

func testChecklist(t *testing.T) *checklist.Checklist {
	t.Helper()
	sev := checklistvo.SeveritySerious
	item, err := checklist.ReconstructItem(
		"chki_1", "chk_1", "tpli_1", 10,
		"Inverter", "Fan runs quietly", checklistvo.InputTypeYesNo,
		checklistvo.OutcomeFailed, nil, nil, "bearing noise", &sev, nil, nil,
		nil, time.Now(),
	)
	require.NoError(t, err)
	c, err := checklist.ReconstructChecklist(
		"chk_1", "vis_1", "tpl_1", "tech_1",
		checklistvo.ChecklistStatusCompleted, nil, nil, "",
		[]*checklist.Item{item}, 1, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return c
}

func newUseCase(t *testing.T, status vo.VisitStatus) (*SendServiceReportUseCase, *fakeRenderer, *fakeMailer, *fakeChecklists) {
	renderer := &fakeRenderer{}
	mailer := &fakeMailer{}
	checklists := &fakeChecklists{items: []*checklist.Checklist{testChecklist(t)}}
	uc := NewSendServiceReportUseCase(
		&fakeVisits{v: testVisit(t, status)},
		&fakeAgreements{a: testAgreement(t)},
		checklists,
		fakeTemplates{},
		renderer,
		mailer,
		"ops@example.no",
		nopLogger{},
	)
	return uc, renderer, mailer, checklists
}

func TestSendServiceReport_SendsToOperations(t *testing.T) {
	uc, renderer, mailer, _ := newUseCase(t, vo.VisitStatusCompleted)

	require.NoError(t, uc.Execute(context.Background(), SendServiceReportCommand{VisitID: "vis_1"}))

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, []string{"ops@example.no"}, msg.To)
	assert.Equal(t, "Service report SA-00012-2026 visit #3", msg.Subject)
	assert.Equal(t, "<p>report</p>", msg.HTMLBody)
	assert.Equal(t, "report", msg.TextBody)

	require.NotNil(t, renderer.got)
	assert.Equal(t, "SA-00012-2026", renderer.got.AgreementNumber)
	require.NotNil(t, renderer.got.DurationMinutes)
	assert.Equal(t, 95, *renderer.got.DurationMinutes)
	require.Len(t, renderer.got.Checklists, 1)
	assert.Len(t, renderer.got.Checklists[0].Findings, 1)
	assert.Empty(t, renderer.got.Checklists[0].TemplateName)
}

func TestSendServiceReport_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		status  vo.VisitStatus
		visitID string
		check   func(error) bool
	}{
		{"missing visit id", vo.VisitStatusCompleted, "", errors.IsValidationError},
		{"unknown visit", vo.VisitStatusCompleted, "vis_other", errors.IsNotFoundError},
		{"visit still in progress", vo.VisitStatusInProgress, "vis_1", errors.IsInvalidStateError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, mailer, _ := newUseCase(t, tt.status)

			err := uc.Execute(context.Background(), SendServiceReportCommand{VisitID: tt.visitID})

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestSendServiceReport_NoRecipient(t *testing.T) {
	uc, _, mailer, _ := newUseCase(t, vo.VisitStatusCompleted)
	uc.recipient = ""

	err := uc.Execute(context.Background(), SendServiceReportCommand{VisitID: "vis_1"})

	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, mailer.sent)
}

func TestSendServiceReport_CollaboratorFailures(t *testing.T) {
	t.Run("checklist listing fails", func(t *testing.T) {
		uc, _, mailer, checklists := newUseCase(t, vo.VisitStatusCompleted)
		checklists.err = stderrors.New("db down")

		err := uc.Execute(context.Background(), SendServiceReportCommand{VisitID: "vis_1"})

		assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
		assert.Empty(t, mailer.sent)
	})

	t.Run("renderer fails", func(t *testing.T) {
		uc, renderer, mailer, _ := newUseCase(t, vo.VisitStatusCompleted)
		renderer.err = stderrors.New("bad markdown")

		err := uc.Execute(context.Background(), SendServiceReportCommand{VisitID: "vis_1"})

		assert.Error(t, err)
		assert.Empty(t, mailer.sent)
	})

	t.Run("smtp fails", func(t *testing.T) {
		uc, _, mailer, _ := newUseCase(t, vo.VisitStatusCompleted)
		mailer.err = stderrors.New("connection refused")

		err := uc.Execute(context.Background(), SendServiceReportCommand{VisitID: "vis_1"})

		assert.Equal(t, errors.ErrorTypeInternal, errors.GetAppError(err).Type)
	})
}
