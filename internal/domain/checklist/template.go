package checklist

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"solarops/internal/domain/installation"
	"solarops/internal/domain/shared/events"
	visitvo "solarops/internal/domain/visit/valueobjects"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/id"
)

// Template is one immutable version of a checklist definition. Versions of the
// same definition share a family ID, which is the ID of the first version.
// Items are never edited in place; Revise produces a new row.
type Template struct {
	id          string
	familyID    string
	name        string
	description string
	systemType  string
	visitType   string
	version     int
	isActive    bool
	items       []*TemplateItem
	createdAt   time.Time
	updatedAt   time.Time
	events      []events.DomainEvent
}

// TemplateDefinition is the mutable input shared by NewTemplate and Revise.
type TemplateDefinition struct {
	Name        string
	Description string
	SystemType  string
	VisitType   string
	Items       []TemplateItemSpec
}

func (d TemplateDefinition) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if d.SystemType != "" && !installation.SystemType(d.SystemType).IsValid() {
		return fmt.Errorf("%w: unknown system type %s", ErrInvalidTemplate, d.SystemType)
	}
	if d.VisitType != "" && !visitvo.VisitType(d.VisitType).IsValid() {
		return fmt.Errorf("%w: unknown visit type %s", ErrInvalidTemplate, d.VisitType)
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidTemplate)
	}
	return nil
}

// NewTemplate creates version 1 of a new active template.
func NewTemplate(def TemplateDefinition) (*Template, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}
	templateID, err := id.New(id.PrefixTemplate)
	if err != nil {
		return nil, err
	}
	return buildTemplate(templateID, templateID, 1, def, biztime.NowUTC())
}

func buildTemplate(templateID, familyID string, version int, def TemplateDefinition, now time.Time) (*Template, error) {
	items, err := buildTemplateItems(templateID, def.Items)
	if err != nil {
		return nil, err
	}
	return &Template{
		id:          templateID,
		familyID:    familyID,
		name:        strings.TrimSpace(def.Name),
		description: def.Description,
		systemType:  def.SystemType,
		visitType:   def.VisitType,
		version:     version,
		isActive:    true,
		items:       items,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// buildTemplateItems orders items by sortOrder, keeping input order for ties.
// Items without a sort order are numbered by position.
func buildTemplateItems(templateID string, specs []TemplateItemSpec) ([]*TemplateItem, error) {
	items := make([]*TemplateItem, 0, len(specs))
	for i, spec := range specs {
		if spec.SortOrder == 0 {
			spec.SortOrder = i + 1
		}
		item, err := NewTemplateItem(templateID, spec)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].sortOrder < items[b].sortOrder
	})
	return items, nil
}

// ReconstructTemplate rebuilds a template version from persistence.
func ReconstructTemplate(
	templateID, familyID, name, description, systemType, visitType string,
	version int,
	isActive bool,
	items []*TemplateItem,
	createdAt, updatedAt time.Time,
) (*Template, error) {
	if templateID == "" {
		return nil, fmt.Errorf("template ID is required")
	}
	if familyID == "" {
		familyID = templateID
	}
	sorted := append([]*TemplateItem(nil), items...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].sortOrder < sorted[b].sortOrder
	})
	return &Template{
		id:          templateID,
		familyID:    familyID,
		name:        name,
		description: description,
		systemType:  systemType,
		visitType:   visitType,
		version:     version,
		isActive:    isActive,
		items:       sorted,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Template) ID() string           { return t.id }
func (t *Template) FamilyID() string     { return t.familyID }
func (t *Template) Name() string         { return t.name }
func (t *Template) Description() string  { return t.description }
func (t *Template) SystemType() string   { return t.systemType }
func (t *Template) VisitType() string    { return t.visitType }
func (t *Template) Version() int         { return t.version }
func (t *Template) IsActive() bool       { return t.isActive }
func (t *Template) CreatedAt() time.Time { return t.createdAt }
func (t *Template) UpdatedAt() time.Time { return t.updatedAt }

// Items returns the items in sort order.
func (t *Template) Items() []*TemplateItem {
	out := make([]*TemplateItem, len(t.items))
	copy(out, t.items)
	return out
}

// MandatoryItemIDs is the set of item IDs that gate checklist completion.
func (t *Template) MandatoryItemIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, item := range t.items {
		if item.isMandatory {
			ids[item.id] = true
		}
	}
	return ids
}

// Revise creates the next version from def and deactivates this one. Only the
// active version of a family can be revised.
func (t *Template) Revise(def TemplateDefinition, now time.Time) (*Template, error) {
	if !t.isActive {
		return nil, ErrTemplateSuperseded
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	nextID, err := id.New(id.PrefixTemplate)
	if err != nil {
		return nil, err
	}
	next, err := buildTemplate(nextID, t.familyID, t.version+1, def, now)
	if err != nil {
		return nil, err
	}

	t.isActive = false
	t.updatedAt = now

	next.events = append(next.events, &TemplateRevisedEvent{
		BaseEvent:         events.NewBaseEvent(EventTemplateRevised, next.id, now),
		FamilyID:          t.familyID,
		PreviousVersionID: t.id,
		Version:           next.version,
	})
	return next, nil
}

// Deactivate retires the template without a successor.
func (t *Template) Deactivate(now time.Time) {
	t.isActive = false
	t.updatedAt = now
}

// GetEvents returns and clears the recorded domain events.
func (t *Template) GetEvents() []events.DomainEvent {
	out := t.events
	t.events = nil
	return out
}
