package models

import (
	"time"

	"github.com/shopspring/decimal"

	"solarops/internal/shared/constants"
)

// InstallationModel is the persistence model for customer installations.
type InstallationModel struct {
	ID           string          `gorm:"primaryKey;size:40"`
	CustomerName string          `gorm:"not null;size:200;index:idx_installation_customer"`
	Address      string          `gorm:"not null;size:500"`
	SystemType   string          `gorm:"not null;size:20"`
	CapacityKw   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes        string          `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (InstallationModel) TableName() string {
	return constants.TableInstallations
}
