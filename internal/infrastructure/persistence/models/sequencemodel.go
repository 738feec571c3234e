package models

import (
	"time"

	"solarops/internal/shared/constants"
)

// SequenceModel holds the last value handed out for a named counter.
type SequenceModel struct {
	Name      string `gorm:"primaryKey;size:100"`
	Value     int64  `gorm:"not null"`
	UpdatedAt time.Time
}

func (SequenceModel) TableName() string {
	return constants.TableSequences
}
