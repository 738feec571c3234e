package models

import (
	"time"

	"gorm.io/gorm"

	"solarops/internal/shared/constants"
)

// VisitModel is the persistence model for service visits.
type VisitModel struct {
	ID                 string    `gorm:"primaryKey;size:40"`
	AgreementID        string    `gorm:"not null;size:40;uniqueIndex:uk_visit_number,priority:1"`
	TechnicianID       string    `gorm:"size:64;index"`
	VisitNumber        int       `gorm:"not null;uniqueIndex:uk_visit_number,priority:2"`
	ScheduledDate      time.Time `gorm:"not null;index"`
	ScheduledEndDate   *time.Time
	Status             string `gorm:"not null;size:20;index"`
	VisitType          string `gorm:"not null;size:20"`
	ActualStartDate    *time.Time
	ActualEndDate      *time.Time
	DurationMinutes    *int
	Notes              string  `gorm:"type:text"`
	CustomerSignature  *string `gorm:"type:text"`
	SignedAt           *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string `gorm:"size:500"`
	Version            int     `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (VisitModel) TableName() string {
	return constants.TableServiceVisits
}

func (m *VisitModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}

// VisitPhotoModel references a photo stored elsewhere.
type VisitPhotoModel struct {
	ID        string    `gorm:"primaryKey;size:40"`
	VisitID   string    `gorm:"not null;size:40;index"`
	URL       string    `gorm:"column:url;not null;size:1000"`
	Caption   string    `gorm:"size:500"`
	TakenAt   time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (VisitPhotoModel) TableName() string {
	return constants.TableVisitPhotos
}
