package checklist

import (
	"fmt"
	"strings"

	vo "solarops/internal/domain/checklist/valueobjects"
	"solarops/internal/shared/id"
)

// TemplateItemSpec describes one inspection point when creating a template version.
type TemplateItemSpec struct {
	Category      string
	SortOrder     int
	Description   string
	InputType     vo.InputType
	MinValue      *float64
	MaxValue      *float64
	Options       []string
	IsMandatory   bool
	PhotoRequired bool
	HelpText      string
}

// TemplateItem is one inspection point of a template version.
type TemplateItem struct {
	id            string
	templateID    string
	category      string
	sortOrder     int
	description   string
	inputType     vo.InputType
	minValue      *float64
	maxValue      *float64
	options       []string
	isMandatory   bool
	photoRequired bool
	helpText      string
}

func NewTemplateItem(templateID string, spec TemplateItemSpec) (*TemplateItem, error) {
	if strings.TrimSpace(spec.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidTemplate)
	}
	if strings.TrimSpace(spec.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidTemplate)
	}
	if !spec.InputType.IsValid() {
		return nil, fmt.Errorf("%w: invalid input type %s", ErrInvalidTemplate, spec.InputType)
	}
	if spec.MinValue != nil && spec.MaxValue != nil && *spec.MinValue > *spec.MaxValue {
		return nil, fmt.Errorf("%w: min value exceeds max value", ErrInvalidTemplate)
	}
	if spec.InputType == vo.InputTypeChoice && len(spec.Options) == 0 {
		return nil, fmt.Errorf("%w: choice items need options", ErrInvalidTemplate)
	}

	itemID, err := id.New(id.PrefixTemplateItem)
	if err != nil {
		return nil, err
	}
	return &TemplateItem{
		id:            itemID,
		templateID:    templateID,
		category:      strings.TrimSpace(spec.Category),
		sortOrder:     spec.SortOrder,
		description:   strings.TrimSpace(spec.Description),
		inputType:     spec.InputType,
		minValue:      spec.MinValue,
		maxValue:      spec.MaxValue,
		options:       append([]string(nil), spec.Options...),
		isMandatory:   spec.IsMandatory,
		photoRequired: spec.PhotoRequired,
		helpText:      spec.HelpText,
	}, nil
}

// ReconstructTemplateItem reconstructs a template item from persistence
func ReconstructTemplateItem(
	itemID, templateID, category string,
	sortOrder int,
	description string,
	inputType vo.InputType,
	minValue, maxValue *float64,
	options []string,
	isMandatory, photoRequired bool,
	helpText string,
) *TemplateItem {
	return &TemplateItem{
		id:            itemID,
		templateID:    templateID,
		category:      category,
		sortOrder:     sortOrder,
		description:   description,
		inputType:     inputType,
		minValue:      minValue,
		maxValue:      maxValue,
		options:       options,
		isMandatory:   isMandatory,
		photoRequired: photoRequired,
		helpText:      helpText,
	}
}

func (i *TemplateItem) ID() string              { return i.id }
func (i *TemplateItem) TemplateID() string      { return i.templateID }
func (i *TemplateItem) Category() string        { return i.category }
func (i *TemplateItem) SortOrder() int          { return i.sortOrder }
func (i *TemplateItem) Description() string     { return i.description }
func (i *TemplateItem) InputType() vo.InputType { return i.inputType }
func (i *TemplateItem) MinValue() *float64      { return i.minValue }
func (i *TemplateItem) MaxValue() *float64      { return i.maxValue }
func (i *TemplateItem) Options() []string       { return i.options }
func (i *TemplateItem) IsMandatory() bool       { return i.isMandatory }
func (i *TemplateItem) PhotoRequired() bool     { return i.photoRequired }
func (i *TemplateItem) HelpText() string        { return i.helpText }
