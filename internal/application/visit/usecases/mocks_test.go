package usecases

import (
	"context"
	"time"

	"solarops/internal/domain/agreement"
	"solarops/internal/domain/checklist"
	checklistvo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/domain/shared/events"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/logger"
)

// mockVisitRepository serves a single stored visit unless a func field overrides it.
type mockVisitRepository struct {
	stored             *visit.Visit
	created            []*visit.Visit
	updates            int
	lockedReads        int
	UpdateFunc         func(ctx context.Context, v *visit.Visit) error
	ListFunc           func(ctx context.Context, filter visit.ListFilter) ([]*visit.Visit, int64, error)
	MaxVisitNumberFunc func(ctx context.Context, agreementID string) (int, error)
}

func (m *mockVisitRepository) Create(ctx context.Context, v *visit.Visit) error {
	m.created = append(m.created, v)
	return nil
}

func (m *mockVisitRepository) Update(ctx context.Context, v *visit.Visit) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, v)
	}
	m.updates++
	v.IncrementVersion()
	return nil
}

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
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockVisitRepository) MaxVisitNumber(ctx context.Context, agreementID string) (int, error) {
	if m.MaxVisitNumberFunc != nil {
		return m.MaxVisitNumberFunc(ctx, agreementID)
	}
	return 0, nil
}

type mockPhotoRepository struct {
	photos []*visit.Photo
}

func (m *mockPhotoRepository) Create(ctx context.Context, p *visit.Photo) error {
	m.photos = append(m.photos, p)
	return nil
}

func (m *mockPhotoRepository) ListByVisit(ctx context.Context, visitID string) ([]*visit.Photo, error) {
	var out []*visit.Photo
	for _, p := range m.photos {
		if p.VisitID() == visitID {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockChecklistRepository struct {
	open int
}

func (m *mockChecklistRepository) Create(ctx context.Context, c *checklist.Checklist) error {
	return nil
}

func (m *mockChecklistRepository) Update(ctx context.Context, c *checklist.Checklist) error {
	return nil
}

func (m *mockChecklistRepository) GetByID(ctx context.Context, id string) (*checklist.Checklist, error) {
	return nil, checklist.ErrChecklistNotFound
}

func (m *mockChecklistRepository) ListByVisit(ctx context.Context, visitID string) ([]*checklist.Checklist, error) {
	return nil, nil
}

func (m *mockChecklistRepository) CountByVisitExcludingStatus(ctx context.Context, visitID string, status checklistvo.ChecklistStatus) (int, error) {
	return m.open, nil
}

type mockAgreementRepository struct {
	stored *agreement.Agreement
}

func (m *mockAgreementRepository) Create(ctx context.Context, a *agreement.Agreement) error {
	return nil
}

func (m *mockAgreementRepository) Update(ctx context.Context, a *agreement.Agreement) error {
	return nil
}

func (m *mockAgreementRepository) GetByID(ctx context.Context, id string) (*agreement.Agreement, error) {
	if m.stored == nil || m.stored.ID() != id {
		return nil, agreement.ErrAgreementNotFound
	}
	return m.stored, nil
}

func (m *mockAgreementRepository) GetByNumber(ctx context.Context, number string) (*agreement.Agreement, error) {
	return nil, agreement.ErrAgreementNotFound
}

func (m *mockAgreementRepository) List(ctx context.Context, filter agreement.ListFilter) ([]*agreement.Agreement, int64, error) {
	return nil, 0, nil
}

func (m *mockAgreementRepository) ListLapsed(ctx context.Context, now time.Time, limit int) ([]*agreement.Agreement, error) {
	return nil, nil
}

func (m *mockAgreementRepository) MaxSequence(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockServicePlanRepository struct {
	plan    *agreement.ServicePlan
	updated int
}

func (m *mockServicePlanRepository) Create(ctx context.Context, p *agreement.ServicePlan) error {
	return nil
}

func (m *mockServicePlanRepository) Update(ctx context.Context, p *agreement.ServicePlan) error {
	m.updated++
	return nil
}

func (m *mockServicePlanRepository) GetByAgreementID(ctx context.Context, agreementID string) (*agreement.ServicePlan, error) {
	if m.plan == nil {
		return nil, agreement.ErrServicePlanNotFound
	}
	return m.plan, nil
}

type mockAddonProductRepository struct {
	products map[string]*agreement.AddonProduct
}

func (m *mockAddonProductRepository) Create(ctx context.Context, p *agreement.AddonProduct) error {
	return nil
}

func (m *mockAddonProductRepository) Update(ctx context.Context, p *agreement.AddonProduct) error {
	return nil
}

func (m *mockAddonProductRepository) GetByID(ctx context.Context, id string) (*agreement.AddonProduct, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, agreement.ErrAddonProductNotFound
}

func (m *mockAddonProductRepository) GetByIDs(ctx context.Context, ids []string) ([]*agreement.AddonProduct, error) {
	var out []*agreement.AddonProduct
	for _, addonID := range ids {
		if p, ok := m.products[addonID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockAddonProductRepository) List(ctx context.Context, activeOnly bool) ([]*agreement.AddonProduct, error) {
	return nil, nil
}

type mockSequenceAllocator struct {
	counters map[string]int64
}

func (m *mockSequenceAllocator) Next(ctx context.Context, name string, seed func(ctx context.Context) (int64, error)) (int64, error) {
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	if _, ok := m.counters[name]; !ok {
		start, err := seed(ctx)
		if err != nil {
			return 0, err
		}
		m.counters[name] = start
	}
	m.counters[name]++
	return m.counters[name], nil
}

type mockTechnicianDirectory struct {
	known map[string]bool
}

func (m *mockTechnicianDirectory) TechnicianExists(ctx context.Context, technicianID string) (bool, error) {
	return m.known[technicianID], nil
}

type mockAccountingExporter struct {
	drafts []InvoiceDraft
}

func (m *mockAccountingExporter) ExportInvoice(ctx context.Context, draft InvoiceDraft) (string, error) {
	m.drafts = append(m.drafts, draft)
	return "INV-1001", nil
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

func (m *mockMetrics) VisitCompleted()          { m.completed++ }
func (m *mockMetrics) VisitCompletionRejected() { m.rejected++ }

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
