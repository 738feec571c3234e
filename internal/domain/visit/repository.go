package visit

import (
	"context"
	"time"

	vo "solarops/internal/domain/visit/valueobjects"
)

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	// Update writes the visit with an optimistic version check.
	Update(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id string) (*Visit, error)
	// GetByIDForUpdate loads the visit and locks its row until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Visit, error)
	List(ctx context.Context, filter ListFilter) ([]*Visit, int64, error)
	MaxVisitNumber(ctx context.Context, agreementID string) (int, error)
}

type ListFilter struct {
	AgreementID  string
	TechnicianID string
	Status       *vo.VisitStatus
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type PhotoRepository interface {
	Create(ctx context.Context, p *Photo) error
	ListByVisit(ctx context.Context, visitID string) ([]*Photo, error)
}

// VisitNumberSequence names the per-agreement visit counter.
func VisitNumberSequence(agreementID string) string {
	return "visit_number:" + agreementID
}
