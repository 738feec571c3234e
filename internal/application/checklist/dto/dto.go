package dto

import (
	"time"

	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
)

type TemplateItemDTO struct {
	ID            string   `json:"id"`
	Category      string   `json:"category"`
	SortOrder     int      `json:"sort_order"`
	Description   string   `json:"description"`
	InputType     string   `json:"input_type"`
	MinValue      *float64 `json:"min_value,omitempty"`
	MaxValue      *float64 `json:"max_value,omitempty"`
	Options       []string `json:"options,omitempty"`
	IsMandatory   bool     `json:"is_mandatory"`
	PhotoRequired bool     `json:"photo_required"`
	HelpText      string   `json:"help_text,omitempty"`
}

type TemplateDTO struct {
	ID          string            `json:"id"`
	FamilyID    string            `json:"family_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	SystemType  string            `json:"system_type,omitempty"`
	VisitType   string            `json:"visit_type,omitempty"`
	Version     int               `json:"version"`
	IsActive    bool              `json:"is_active"`
	Items       []TemplateItemDTO `json:"items,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ToTemplateDTO converts a template. Items are omitted in list views.
func ToTemplateDTO(t *checklist.Template, withItems bool) *TemplateDTO {
	if t == nil {
		return nil
	}
	d := &TemplateDTO{
		ID:          t.ID(),
		FamilyID:    t.FamilyID(),
		Name:        t.Name(),
		Description: t.Description(),
		SystemType:  t.SystemType(),
		VisitType:   t.VisitType(),
		Version:     t.Version(),
		IsActive:    t.IsActive(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
	if withItems {
		for _, i := range t.Items() {
			d.Items = append(d.Items, TemplateItemDTO{
				ID:            i.ID(),
				Category:      i.Category(),
				SortOrder:     i.SortOrder(),
				Description:   i.Description(),
				InputType:     i.InputType().String(),
				MinValue:      i.MinValue(),
				MaxValue:      i.MaxValue(),
				Options:       i.Options(),
				IsMandatory:   i.IsMandatory(),
				PhotoRequired: i.PhotoRequired(),
				HelpText:      i.HelpText(),
			})
		}
	}
	return d
}

func ToTemplateDTOList(templates []*checklist.Template) []*TemplateDTO {
	out := make([]*TemplateDTO, 0, len(templates))
	for _, t := range templates {
		out = append(out, ToTemplateDTO(t, false))
	}
	return out
}

type ItemDTO struct {
	ID             string     `json:"id"`
	TemplateItemID string     `json:"template_item_id"`
	SortOrder      int        `json:"sort_order"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	InputType      string     `json:"input_type"`
	Status         string     `json:"status"`
	Value          *string    `json:"value,omitempty"`
	NumericValue   *float64   `json:"numeric_value,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Severity       *string    `json:"severity,omitempty"`
	PhotoURLs      []string   `json:"photo_urls,omitempty"`
	GPS            *vo.GPS    `json:"gps,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// SummaryDTO flattens the severity map to string keys for JSON.
type SummaryDTO struct {
	Total              int                         `json:"total"`
	Completed          int                         `json:"completed"`
	Progress           int                         `json:"progress"`
	Categories         []checklist.CategorySummary `json:"categories"`
	FindingsBySeverity map[string]int              `json:"findings_by_severity"`
}

type ChecklistDTO struct {
	ID           string      `json:"id"`
	VisitID      string      `json:"visit_id"`
	TemplateID   string      `json:"template_id"`
	TechnicianID string      `json:"technician_id,omitempty"`
	Status       string      `json:"status"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	Version      int         `json:"version"`
	Items        []ItemDTO   `json:"items,omitempty"`
	Summary      *SummaryDTO `json:"summary,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func ToChecklistDTO(c *checklist.Checklist, withSummary bool) *ChecklistDTO {
	if c == nil {
		return nil
	}
	d := &ChecklistDTO{
		ID:           c.ID(),
		VisitID:      c.VisitID(),
		TemplateID:   c.TemplateID(),
		TechnicianID: c.TechnicianID(),
		Status:       c.Status().String(),
		StartedAt:    c.StartedAt(),
		CompletedAt:  c.CompletedAt(),
		Notes:        c.Notes(),
		Version:      c.Version(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
	for _, i := range c.Items() {
		d.Items = append(d.Items, ToItemDTO(i))
	}
	if withSummary {
		s := ToSummaryDTO(c.Summary())
		d.Summary = &s
	}
	return d
}

func ToItemDTO(i *checklist.Item) ItemDTO {
	d := ItemDTO{
		ID:             i.ID(),
		TemplateItemID: i.TemplateItemID(),
		SortOrder:      i.SortOrder(),
		Category:       i.Category(),
		Description:    i.Description(),
		InputType:      i.InputType().String(),
		Status:         i.Status().String(),
		Value:          i.Value(),
		NumericValue:   i.NumericValue(),
		Notes:          i.Notes(),
		PhotoURLs:      i.PhotoURLs(),
		GPS:            i.GPS(),
		CompletedAt:    i.CompletedAt(),
	}
	if sev := i.Severity(); sev != nil {
		s := sev.String()
		d.Severity = &s
	}
	return d
}

func ToSummaryDTO(s checklist.Summary) SummaryDTO {
	out := SummaryDTO{
		Total:              s.Total,
		Completed:          s.Completed,
		Progress:           s.Progress,
		Categories:         s.Categories,
		FindingsBySeverity: make(map[string]int, len(s.FindingsBySeverity)),
	}
	for sev, n := range s.FindingsBySeverity {
		out.FindingsBySeverity[sev.String()] = n
	}
	return out
}

func ToChecklistDTOList(list []*checklist.Checklist) []*ChecklistDTO {
	out := make([]*ChecklistDTO, 0, len(list))
	for _, c := range list {
		out = append(out, ToChecklistDTO(c, true))
	}
	return out
}
