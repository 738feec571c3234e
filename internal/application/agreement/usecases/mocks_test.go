package usecases

import (
	"context"
	"time"

	"solarops/internal/domain/agreement"
	"solarops/internal/domain/installation"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/logger"
)

type mockAgreementRepository struct {
	CreateFunc      func(ctx context.Context, a *agreement.Agreement) error
	UpdateFunc      func(ctx context.Context, a *agreement.Agreement) error
	GetByIDFunc     func(ctx context.Context, id string) (*agreement.Agreement, error)
	GetByNumberFunc func(ctx context.Context, number string) (*agreement.Agreement, error)
	ListFunc        func(ctx context.Context, filter agreement.ListFilter) ([]*agreement.Agreement, int64, error)
	ListLapsedFunc  func(ctx context.Context, now time.Time, limit int) ([]*agreement.Agreement, error)
	MaxSequenceFunc func(ctx context.Context) (int64, error)
}

func (m *mockAgreementRepository) Create(ctx context.Context, a *agreement.Agreement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *mockAgreementRepository) Update(ctx context.Context, a *agreement.Agreement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockAgreementRepository) GetByID(ctx context.Context, id string) (*agreement.Agreement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, agreement.ErrAgreementNotFound
}

func (m *mockAgreementRepository) GetByNumber(ctx context.Context, number string) (*agreement.Agreement, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, agreement.ErrAgreementNotFound
}

func (m *mockAgreementRepository) List(ctx context.Context, filter agreement.ListFilter) ([]*agreement.Agreement, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockAgreementRepository) ListLapsed(ctx context.Context, now time.Time, limit int) ([]*agreement.Agreement, error) {
	if m.ListLapsedFunc != nil {
		return m.ListLapsedFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockAgreementRepository) MaxSequence(ctx context.Context) (int64, error) {
	if m.MaxSequenceFunc != nil {
		return m.MaxSequenceFunc(ctx)
	}
	return 0, nil
}

type mockServicePlanRepository struct {
	CreateFunc           func(ctx context.Context, p *agreement.ServicePlan) error
	UpdateFunc           func(ctx context.Context, p *agreement.ServicePlan) error
	GetByAgreementIDFunc func(ctx context.Context, agreementID string) (*agreement.ServicePlan, error)
}

func (m *mockServicePlanRepository) Create(ctx context.Context, p *agreement.ServicePlan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockServicePlanRepository) Update(ctx context.Context, p *agreement.ServicePlan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *mockServicePlanRepository) GetByAgreementID(ctx context.Context, agreementID string) (*agreement.ServicePlan, error) {
	if m.GetByAgreementIDFunc != nil {
		return m.GetByAgreementIDFunc(ctx, agreementID)
	}
	return nil, agreement.ErrServicePlanNotFound
}

// mockAddonProductRepository serves products from an in-memory map.
type mockAddonProductRepository struct {
	products   map[string]*agreement.AddonProduct
	CreateFunc func(ctx context.Context, p *agreement.AddonProduct) error
	UpdateFunc func(ctx context.Context, p *agreement.AddonProduct) error
}

func (m *mockAddonProductRepository) Create(ctx context.Context, p *agreement.AddonProduct) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockAddonProductRepository) Update(ctx context.Context, p *agreement.AddonProduct) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
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
	var out []*agreement.AddonProduct
	for _, p := range m.products {
		if !activeOnly || p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockInstallationRepository struct {
	ExistsFunc func(ctx context.Context, id string) (bool, error)
}

func (m *mockInstallationRepository) Create(ctx context.Context, inst *installation.Installation) error {
	return nil
}

func (m *mockInstallationRepository) GetByID(ctx context.Context, id string) (*installation.Installation, error) {
	return nil, installation.ErrInstallationNotFound
}

func (m *mockInstallationRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockInstallationRepository) List(ctx context.Context, page, pageSize int) ([]*installation.Installation, int64, error) {
	return nil, 0, nil
}

// mockSequenceAllocator counts from the seed like the database allocator does.
type mockSequenceAllocator struct {
	counters map[string]int64
	NextFunc func(ctx context.Context, name string) (int64, error)
}

func (m *mockSequenceAllocator) Next(ctx context.Context, name string, seed func(ctx context.Context) (int64, error)) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, name)
	}
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
	created int
}

func (m *mockMetrics) AgreementCreated() { m.created++ }

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
