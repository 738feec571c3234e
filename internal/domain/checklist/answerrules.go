package checklist

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	vo "solarops/internal/domain/checklist/valueobjects"
)

// CheckAnswers validates updates against the template version the checklist
// was created from. A CHOICE value must be one of the item's options. Numeric
// readings outside the item's range are accepted; Deviations reports them.
func (c *Checklist) CheckAnswers(updates []ItemUpdate, tpl *Template) error {
	if tpl == nil {
		return nil
	}
	rules := tpl.itemsByID()
	for _, u := range updates {
		item, err := c.Item(u.ItemID)
		if err != nil {
			return err
		}
		rule, ok := rules[item.templateItemID]
		if !ok {
			continue
		}
		if err := rule.checkPatch(u.Patch); err != nil {
			return fmt.Errorf("item %s: %w", u.ItemID, err)
		}
	}
	return nil
}

func (i *TemplateItem) checkPatch(p ItemPatch) error {
	if i.inputType != vo.InputTypeChoice || len(i.options) == 0 || p.Value == nil || *p.Value == "" {
		return nil
	}
	if !slices.ContainsFunc(i.options, func(o string) bool { return strings.EqualFold(o, *p.Value) }) {
		return fmt.Errorf("%w: %q is not one of %s", ErrInvalidItemUpdate, *p.Value, strings.Join(i.options, ", "))
	}
	return nil
}

type DeviationKind string

const (
	DeviationOutOfRange   DeviationKind = "OUT_OF_RANGE"
	DeviationPhotoMissing DeviationKind = "PHOTO_MISSING"
)

// Deviation is an answered item that does not meet its template item's
// expectations without having been marked failed.
type Deviation struct {
	ItemID      string        `json:"item_id"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Kind        DeviationKind `json:"kind"`
	Detail      string        `json:"detail"`
}

// Deviations lists readings outside the template range and answered items
// missing a required photo, in item order. Items marked NOT_APPLICABLE are
// never reported.
func (c *Checklist) Deviations(tpl *Template) []Deviation {
	if tpl == nil {
		return nil
	}
	rules := tpl.itemsByID()

	var out []Deviation
	for _, item := range c.items {
		rule, ok := rules[item.templateItemID]
		if !ok || item.status == vo.OutcomeNotApplicable {
			continue
		}
		if detail, bad := rule.outOfRange(item.numericValue); bad {
			out = append(out, item.deviation(DeviationOutOfRange, detail))
		}
		if rule.photoRequired && item.status.IsAnswered() && len(item.photoURLs) == 0 {
			out = append(out, item.deviation(DeviationPhotoMissing, "photo required"))
		}
	}
	return out
}

func (i *TemplateItem) outOfRange(v *float64) (string, bool) {
	if v == nil {
		return "", false
	}
	switch {
	case i.minValue != nil && *v < *i.minValue:
		return fmt.Sprintf("%s below minimum %s", formatReading(*v), formatReading(*i.minValue)), true
	case i.maxValue != nil && *v > *i.maxValue:
		return fmt.Sprintf("%s above maximum %s", formatReading(*v), formatReading(*i.maxValue)), true
	}
	return "", false
}

func (i *Item) deviation(kind DeviationKind, detail string) Deviation {
	return Deviation{
		ItemID:      i.id,
		Category:    i.category,
		Description: i.description,
		Kind:        kind,
		Detail:      detail,
	}
}

func (t *Template) itemsByID() map[string]*TemplateItem {
	out := make(map[string]*TemplateItem, len(t.items))
	for _, item := range t.items {
		out[item.id] = item
	}
	return out
}

func formatReading(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
