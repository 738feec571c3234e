package usecases

import (
	"context"

	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/domain/shared/events"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/logger"
)

// memTemplateRepository keeps templates by ID.
type memTemplateRepository struct {
	templates map[string]*checklist.Template
	order     []string
}

func newMemTemplateRepository() *memTemplateRepository {
	return &memTemplateRepository{templates: make(map[string]*checklist.Template)}
}

func (m *memTemplateRepository) Create(ctx context.Context, t *checklist.Template) error {
	m.templates[t.ID()] = t
	m.order = append(m.order, t.ID())
	return nil
}

func (m *memTemplateRepository) Update(ctx context.Context, t *checklist.Template) error {
	m.templates[t.ID()] = t
	return nil
}

func (m *memTemplateRepository) GetByID(ctx context.Context, id string) (*checklist.Template, error) {
	if t, ok := m.templates[id]; ok {
		return t, nil
	}
	return nil, checklist.ErrTemplateNotFound
}

func (m *memTemplateRepository) GetByIDForUpdate(ctx context.Context, id string) (*checklist.Template, error) {
	return m.GetByID(ctx, id)
}

func (m *memTemplateRepository) GetByName(ctx context.Context, name string) (*checklist.Template, error) {
	for _, templateID := range m.order {
		if t := m.templates[templateID]; t.Name() == name && t.IsActive() {
			return t, nil
		}
	}
	return nil, checklist.ErrTemplateNotFound
}

func (m *memTemplateRepository) List(ctx context.Context, filter checklist.TemplateFilter) ([]*checklist.Template, int64, error) {
	var out []*checklist.Template
	for _, templateID := range m.order {
		t := m.templates[templateID]
		if filter.ActiveOnly && !t.IsActive() {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (m *memTemplateRepository) ListVersions(ctx context.Context, familyID string) ([]*checklist.Template, error) {
	var out []*checklist.Template
	for _, templateID := range m.order {
		if t := m.templates[templateID]; t.FamilyID() == familyID {
			out = append(out, t)
		}
	}
	return out, nil
}

// memChecklistRepository keeps checklists by ID and counts writes.
type memChecklistRepository struct {
	checklists map[string]*checklist.Checklist
	updates    int
	UpdateFunc func(ctx context.Context, c *checklist.Checklist) error
}

func newMemChecklistRepository() *memChecklistRepository {
	return &memChecklistRepository{checklists: make(map[string]*checklist.Checklist)}
}

func (m *memChecklistRepository) Create(ctx context.Context, c *checklist.Checklist) error {
	m.checklists[c.ID()] = c
	return nil
}

func (m *memChecklistRepository) Update(ctx context.Context, c *checklist.Checklist) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	m.updates++
	c.ClearDirty()
	c.IncrementVersion()
	return nil
}

func (m *memChecklistRepository) GetByID(ctx context.Context, id string) (*checklist.Checklist, error) {
	if c, ok := m.checklists[id]; ok {
		return c, nil
	}
	return nil, checklist.ErrChecklistNotFound
}

func (m *memChecklistRepository) ListByVisit(ctx context.Context, visitID string) ([]*checklist.Checklist, error) {
	var out []*checklist.Checklist
	for _, c := range m.checklists {
		if c.VisitID() == visitID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memChecklistRepository) CountByVisitExcludingStatus(ctx context.Context, visitID string, status vo.ChecklistStatus) (int, error) {
	n := 0
	for _, c := range m.checklists {
		if c.VisitID() == visitID && c.Status() != status {
			n++
		}
	}
	return n, nil
}

type mockVisitRepository struct {
	stored      *visit.Visit
	lockedReads int
}

func (m *mockVisitRepository) Create(ctx context.Context, v *visit.Visit) error { return nil }
func (m *mockVisitRepository) Update(ctx context.Context, v *visit.Visit) error { return nil }

func (m *mockVisitRepository) GetByID(ctx context.Context, id string) (*visit.Visit, error) {
	if m.stored == nil || m.stored.ID() != id {
		return nil, visit.ErrVisitNotFound
	}
	return m.stored, nil
}

func (m *mockVisitRepository) GetByIDForUpdate(ctx context.Context, id string) (*visit.Visit, error) {
	m.lockedReads++
	return m.GetByID(ctx, id)
}

func (m *mockVisitRepository) List(ctx context.Context, filter visit.ListFilter) ([]*visit.Visit, int64, error) {
	return nil, 0, nil
}

func (m *mockVisitRepository) MaxVisitNumber(ctx context.Context, agreementID string) (int, error) {
	return 0, nil
}

type staticTemplateSource struct {
	defs []checklist.TemplateDefinition
}

func (s *staticTemplateSource) Definitions() ([]checklist.TemplateDefinition, error) {
	return s.defs, nil
}

type recordingRenderer struct {
	last ReportData
}

func (r *recordingRenderer) RenderHTML(ctx context.Context, data ReportData) (string, error) {
	r.last = data
	return "<h1>" + data.TemplateName + "</h1>", nil
}

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockEventPublisher struct {
	published []events.DomainEvent
}

func (m *mockEventPublisher) Publish(event events.DomainEvent) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockEventPublisher) PublishAll(evts []events.DomainEvent) error {
	m.published = append(m.published, evts...)
	return nil
}

type mockMetrics struct {
	completed int
	rejected  int
}

func (m *mockMetrics) ChecklistCompleted()          { m.completed++ }
func (m *mockMetrics) ChecklistCompletionRejected() { m.rejected++ }

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}

