// Package checklist contains checklist templates and the per-visit
// checklists instantiated from them.
package checklist

import (
	"fmt"
	"time"

	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/domain/shared/events"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/id"
)

// Checklist is one instantiation of a template against a visit.
type Checklist struct {
	id           string
	visitID      string
	templateID   string
	technicianID string
	status       vo.ChecklistStatus
	startedAt    *time.Time
	completedAt  *time.Time
	notes        string
	items        []*Item
	dirty        map[string]bool
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	events       []events.DomainEvent
}

// NewFromTemplate snapshots the template's items into a PENDING checklist.
func NewFromTemplate(visitID, technicianID string, tpl *Template) (*Checklist, error) {
	if visitID == "" {
		return nil, fmt.Errorf("visit ID is required")
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	if !tpl.IsActive() {
		return nil, ErrTemplateInactive
	}

	checklistID, err := id.New(id.PrefixChecklist)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	items := make([]*Item, 0, len(tpl.items))
	for _, src := range tpl.items {
		item, err := newItemFromTemplate(checklistID, src, now)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &Checklist{
		id:           checklistID,
		visitID:      visitID,
		templateID:   tpl.ID(),
		technicianID: technicianID,
		status:       vo.ChecklistStatusPending,
		items:        items,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructChecklist rebuilds a checklist from persistence.
func ReconstructChecklist(
	checklistID, visitID, templateID, technicianID string,
	status vo.ChecklistStatus,
	startedAt, completedAt *time.Time,
	notes string,
	items []*Item,
	version int,
	createdAt, updatedAt time.Time,
) (*Checklist, error) {
	if checklistID == "" {
		return nil, fmt.Errorf("checklist ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid checklist status: %s", status)
	}
	return &Checklist{
		id:           checklistID,
		visitID:      visitID,
		templateID:   templateID,
		technicianID: technicianID,
		status:       status,
		startedAt:    startedAt,
		completedAt:  completedAt,
		notes:        notes,
		items:        items,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (c *Checklist) ID() string                 { return c.id }
func (c *Checklist) VisitID() string            { return c.visitID }
func (c *Checklist) TemplateID() string         { return c.templateID }
func (c *Checklist) TechnicianID() string       { return c.technicianID }
func (c *Checklist) Status() vo.ChecklistStatus { return c.status }
func (c *Checklist) StartedAt() *time.Time      { return c.startedAt }
func (c *Checklist) CompletedAt() *time.Time    { return c.completedAt }
func (c *Checklist) Notes() string              { return c.notes }
func (c *Checklist) Version() int               { return c.version }
func (c *Checklist) CreatedAt() time.Time       { return c.createdAt }
func (c *Checklist) UpdatedAt() time.Time       { return c.updatedAt }

// Items returns the items in template order.
func (c *Checklist) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks up an item by ID.
func (c *Checklist) Item(itemID string) (*Item, error) {
	for _, item := range c.items {
		if item.id == itemID {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// DirtyItems returns the items changed since the checklist was loaded.
func (c *Checklist) DirtyItems() []*Item {
	var out []*Item
	for _, item := range c.items {
		if c.dirty[item.id] {
			out = append(out, item)
		}
	}
	return out
}

// ClearDirty is called by the repository once changed items are persisted.
func (c *Checklist) ClearDirty() {
	c.dirty = nil
}

// Start moves a PENDING checklist to IN_PROGRESS and stamps startedAt.
func (c *Checklist) Start(now time.Time) error {
	if !c.status.CanTransitionTo(vo.ChecklistStatusInProgress) {
		return ErrInvalidTransition(c.status.String(), vo.ChecklistStatusInProgress.String())
	}
	c.status = vo.ChecklistStatusInProgress
	c.startedAt = &now
	c.updatedAt = now
	return nil
}

// UpdateItem applies a partial update to one item.
func (c *Checklist) UpdateItem(itemID string, patch ItemPatch, now time.Time) error {
	return c.UpdateItems([]ItemUpdate{{ItemID: itemID, Patch: patch}}, now)
}

// UpdateItems applies every update or none. All targets and patches are
// validated before the first item is touched.
func (c *Checklist) UpdateItems(updates []ItemUpdate, now time.Time) error {
	if c.status.IsCompleted() {
		return fmt.Errorf("%w: items of a completed checklist cannot be changed", ErrInvalidStatusTransition)
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: no updates given", ErrInvalidItemUpdate)
	}

	targets := make([]*Item, len(updates))
	for i, u := range updates {
		item, err := c.Item(u.ItemID)
		if err != nil {
			return err
		}
		if err := u.Patch.validate(); err != nil {
			return fmt.Errorf("item %s: %w", u.ItemID, err)
		}
		targets[i] = item
	}

	if c.dirty == nil {
		c.dirty = make(map[string]bool)
	}
	for i, u := range updates {
		targets[i].apply(u.Patch, now)
		c.dirty[targets[i].id] = true
	}
	c.updatedAt = now
	return nil
}

// OutstandingMandatory counts items whose originating template item is
// mandatory and that are still PENDING.
func (c *Checklist) OutstandingMandatory(mandatoryTemplateItemIDs map[string]bool) int {
	count := 0
	for _, item := range c.items {
		if mandatoryTemplateItemIDs[item.templateItemID] && !item.status.IsAnswered() {
			count++
		}
	}
	return count
}

// Complete closes the checklist when no mandatory item is left PENDING.
// Optional items may stay unanswered.
func (c *Checklist) Complete(mandatoryTemplateItemIDs map[string]bool, notes *string, now time.Time) error {
	if !c.status.CanTransitionTo(vo.ChecklistStatusCompleted) {
		return ErrInvalidTransition(c.status.String(), vo.ChecklistStatusCompleted.String())
	}
	if outstanding := c.OutstandingMandatory(mandatoryTemplateItemIDs); outstanding > 0 {
		return ErrOutstandingMandatory(outstanding)
	}

	c.status = vo.ChecklistStatusCompleted
	c.completedAt = &now
	if notes != nil {
		c.notes = *notes
	}
	c.updatedAt = now

	c.events = append(c.events, &ChecklistCompletedEvent{
		BaseEvent:   events.NewBaseEvent(EventChecklistCompleted, c.id, now),
		VisitID:     c.visitID,
		TemplateID:  c.templateID,
		FailedItems: len(c.Findings()),
		CompletedAt: now,
	})
	return nil
}

// IncrementVersion is called by the repository after a successful optimistic update.
func (c *Checklist) IncrementVersion() {
	c.version++
}

// GetEvents returns and clears the recorded domain events.
func (c *Checklist) GetEvents() []events.DomainEvent {
	out := c.events
	c.events = nil
	return out
}
