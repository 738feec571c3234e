package checklist

import (
	"fmt"
	"time"

	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/shared/id"
)

// Item is one answered or pending inspection point. Category, description and
// input type are copied from the template item when the checklist is created.
type Item struct {
	id             string
	checklistID    string
	templateItemID string
	sortOrder      int
	category       string
	description    string
	inputType      vo.InputType
	status         vo.ItemOutcome
	value          *string
	numericValue   *float64
	notes          string
	severity       *vo.Severity
	photoURLs      []string
	gps            *vo.GPS
	completedAt    *time.Time
	updatedAt      time.Time
}

func newItemFromTemplate(checklistID string, src *TemplateItem, now time.Time) (*Item, error) {
	itemID, err := id.New(id.PrefixChecklistItem)
	if err != nil {
		return nil, err
	}
	return &Item{
		id:             itemID,
		checklistID:    checklistID,
		templateItemID: src.id,
		sortOrder:      src.sortOrder,
		category:       src.category,
		description:    src.description,
		inputType:      src.inputType,
		status:         vo.OutcomePending,
		updatedAt:      now,
	}, nil
}

// ReconstructItem reconstructs a checklist item from persistence
func ReconstructItem(
	itemID, checklistID, templateItemID string,
	sortOrder int,
	category, description string,
	inputType vo.InputType,
	status vo.ItemOutcome,
	value *string,
	numericValue *float64,
	notes string,
	severity *vo.Severity,
	photoURLs []string,
	gps *vo.GPS,
	completedAt *time.Time,
	updatedAt time.Time,
) (*Item, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid item status: %s", status)
	}
	return &Item{
		id:             itemID,
		checklistID:    checklistID,
		templateItemID: templateItemID,
		sortOrder:      sortOrder,
		category:       category,
		description:    description,
		inputType:      inputType,
		status:         status,
		value:          value,
		numericValue:   numericValue,
		notes:          notes,
		severity:       severity,
		photoURLs:      photoURLs,
		gps:            gps,
		completedAt:    completedAt,
		updatedAt:      updatedAt,
	}, nil
}

func (i *Item) ID() string              { return i.id }
func (i *Item) ChecklistID() string     { return i.checklistID }
func (i *Item) TemplateItemID() string  { return i.templateItemID }
func (i *Item) SortOrder() int          { return i.sortOrder }
func (i *Item) Category() string        { return i.category }
func (i *Item) Description() string     { return i.description }
func (i *Item) InputType() vo.InputType { return i.inputType }
func (i *Item) Status() vo.ItemOutcome  { return i.status }
func (i *Item) Value() *string          { return i.value }
func (i *Item) NumericValue() *float64  { return i.numericValue }
func (i *Item) Notes() string           { return i.notes }
func (i *Item) Severity() *vo.Severity  { return i.severity }
func (i *Item) PhotoURLs() []string     { return i.photoURLs }
func (i *Item) GPS() *vo.GPS            { return i.gps }
func (i *Item) CompletedAt() *time.Time { return i.completedAt }
func (i *Item) UpdatedAt() time.Time    { return i.updatedAt }

// ItemPatch is a partial item update. Nil fields are left unchanged.
// ClearSeverity removes a previously set severity.
type ItemPatch struct {
	Status        *vo.ItemOutcome
	Value         *string
	NumericValue  *float64
	Notes         *string
	Severity      *vo.Severity
	ClearSeverity bool
	PhotoURLs     []string
	GPS           *vo.GPS
}

// ItemUpdate targets a patch at one item of a checklist.
type ItemUpdate struct {
	ItemID string
	Patch  ItemPatch
}

func (p ItemPatch) validate() error {
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %s", ErrInvalidItemUpdate, *p.Status)
	}
	if p.Severity != nil && !p.Severity.IsValid() {
		return fmt.Errorf("%w: invalid severity %s", ErrInvalidItemUpdate, *p.Severity)
	}
	if p.GPS != nil {
		if err := p.GPS.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidItemUpdate, err)
		}
	}
	return nil
}

// apply mutates the item. completedAt follows the status: stamped when the item
// leaves PENDING and cleared when it returns to PENDING.
func (i *Item) apply(p ItemPatch, now time.Time) {
	if p.Status != nil {
		next := *p.Status
		switch {
		case !next.IsAnswered():
			i.completedAt = nil
		case !i.status.IsAnswered() || i.completedAt == nil:
			i.completedAt = &now
		}
		i.status = next
	}
	if p.Value != nil {
		i.value = p.Value
	}
	if p.NumericValue != nil {
		i.numericValue = p.NumericValue
	}
	if p.Notes != nil {
		i.notes = *p.Notes
	}
	if p.ClearSeverity {
		i.severity = nil
	} else if p.Severity != nil {
		i.severity = p.Severity
	}
	if p.PhotoURLs != nil {
		i.photoURLs = append([]string(nil), p.PhotoURLs...)
	}
	if p.GPS != nil {
		i.gps = p.GPS
	}
	i.updatedAt = now
}
