package checklist

import (
	"context"

	vo "solarops/internal/domain/checklist/valueobjects"
)

type TemplateRepository interface {
	// Create inserts the template row together with its items.
	Create(ctx context.Context, t *Template) error
	// Update persists the activation flag. Items of a stored version never change.
	Update(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	// GetByIDForUpdate locks the template row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Template, error)
	GetByName(ctx context.Context, name string) (*Template, error)
	List(ctx context.Context, filter TemplateFilter) ([]*Template, int64, error)
	ListVersions(ctx context.Context, familyID string) ([]*Template, error)
}

type TemplateFilter struct {
	SystemType string
	VisitType  string
	ActiveOnly bool
	Page       int
	PageSize   int
}

type Repository interface {
	// Create inserts the checklist together with its items.
	Create(ctx context.Context, c *Checklist) error
	// Update writes the checklist row with an optimistic version check and
	// persists its dirty items in the same transaction.
	Update(ctx context.Context, c *Checklist) error
	GetByID(ctx context.Context, id string) (*Checklist, error)
	ListByVisit(ctx context.Context, visitID string) ([]*Checklist, error)
	// CountByVisitExcludingStatus counts the visit's checklists not in the given status.
	CountByVisitExcludingStatus(ctx context.Context, visitID string, status vo.ChecklistStatus) (int, error)
}
