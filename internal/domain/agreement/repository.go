package agreement

import (
	"context"
	"time"

	vo "solarops/internal/domain/agreement/valueobjects"
)

// Repository persists agreements together with their add-on rows.
type Repository interface {
	Create(ctx context.Context, a *Agreement) error
	// Update writes scalar fields with an optimistic version check and fully
	// replaces the add-on rows.
	Update(ctx context.Context, a *Agreement) error
	GetByID(ctx context.Context, id string) (*Agreement, error)
	GetByNumber(ctx context.Context, number string) (*Agreement, error)
	List(ctx context.Context, filter ListFilter) ([]*Agreement, int64, error)
	// ListLapsed returns ACTIVE or SUSPENDED agreements whose end date is before now.
	ListLapsed(ctx context.Context, now time.Time, limit int) ([]*Agreement, error)
	// MaxSequence returns the highest sequence component among existing numbers.
	MaxSequence(ctx context.Context) (int64, error)
}

type ListFilter struct {
	InstallationID string
	Status         *vo.AgreementStatus
	AgreementType  *vo.AgreementType
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

// AddonProductRepository persists the add-on catalog.
type AddonProductRepository interface {
	Create(ctx context.Context, p *AddonProduct) error
	Update(ctx context.Context, p *AddonProduct) error
	GetByID(ctx context.Context, id string) (*AddonProduct, error)
	GetByIDs(ctx context.Context, ids []string) ([]*AddonProduct, error)
	List(ctx context.Context, activeOnly bool) ([]*AddonProduct, error)
}

// ServicePlanRepository persists service plans, one per agreement.
type ServicePlanRepository interface {
	Create(ctx context.Context, p *ServicePlan) error
	Update(ctx context.Context, p *ServicePlan) error
	GetByAgreementID(ctx context.Context, agreementID string) (*ServicePlan, error)
}
