package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"solarops/internal/shared/constants"
)

// ChecklistTemplateModel is one stored version of a template.
type ChecklistTemplateModel struct {
	ID          string `gorm:"primaryKey;size:40"`
	FamilyID    string `gorm:"not null;size:40;uniqueIndex:uk_template_family_version,priority:1"`
	Name        string `gorm:"not null;size:200;index"`
	Description string `gorm:"type:text"`
	SystemType  string `gorm:"size:20;index:idx_template_match,priority:1"`
	VisitType   string `gorm:"size:20;index:idx_template_match,priority:2"`
	Version     int    `gorm:"not null;uniqueIndex:uk_template_family_version,priority:2"`
	IsActive    bool   `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ChecklistTemplateModel) TableName() string {
	return constants.TableChecklistTemplates
}

type TemplateItemModel struct {
	ID            string `gorm:"primaryKey;size:40"`
	TemplateID    string `gorm:"not null;size:40;index"`
	Category      string `gorm:"size:100"`
	SortOrder     int    `gorm:"not null"`
	Description   string `gorm:"not null;size:500"`
	InputType     string `gorm:"not null;size:30"`
	MinValue      *float64
	MaxValue      *float64
	Options       datatypes.JSONSlice[string]
	IsMandatory   bool   `gorm:"not null;default:false"`
	PhotoRequired bool   `gorm:"not null;default:false"`
	HelpText      string `gorm:"size:500"`
}

func (TemplateItemModel) TableName() string {
	return constants.TableTemplateItems
}

// ChecklistModel is a checklist attached to a visit.
type ChecklistModel struct {
	ID           string `gorm:"primaryKey;size:40"`
	VisitID      string `gorm:"not null;size:40;index"`
	TemplateID   string `gorm:"not null;size:40;index"`
	TechnicianID string `gorm:"size:64"`
	Status       string `gorm:"not null;size:20"`
	StartedAt    *time.Time
	CompletedAt  *time.Time
	Notes        string `gorm:"type:text"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ChecklistModel) TableName() string {
	return constants.TableChecklists
}

func (m *ChecklistModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}

// ChecklistItemModel snapshots a template item plus the technician's result.
type ChecklistItemModel struct {
	ID             string  `gorm:"primaryKey;size:40"`
	ChecklistID    string  `gorm:"not null;size:40;index"`
	TemplateItemID string  `gorm:"not null;size:40"`
	SortOrder      int     `gorm:"not null"`
	Category       string  `gorm:"size:100"`
	Description    string  `gorm:"not null;size:500"`
	InputType      string  `gorm:"not null;size:30"`
	Status         string  `gorm:"not null;size:20"`
	Value          *string `gorm:"type:text"`
	NumericValue   *float64
	Notes          string                      `gorm:"type:text"`
	Severity       *string                     `gorm:"size:20"`
	PhotoURLs      datatypes.JSONSlice[string] `gorm:"column:photo_urls"`
	GPS            datatypes.JSON              `gorm:"column:gps"`
	CompletedAt    *time.Time
	UpdatedAt      time.Time
}

func (ChecklistItemModel) TableName() string {
	return constants.TableChecklistItems
}
