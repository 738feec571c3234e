package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"solarops/internal/shared/constants"
)

// AgreementModel is the persistence model for service agreements.
// Add-on rows live in AgreementAddonModel and are loaded separately.
type AgreementModel struct {
	ID                 string           `gorm:"primaryKey;size:40"`
	AgreementNumber    string           `gorm:"uniqueIndex;not null;size:20"`
	InstallationID     string           `gorm:"not null;size:40;index:idx_agreement_installation"`
	AgreementType      string           `gorm:"not null;size:20"`
	Status             string           `gorm:"not null;size:20;index:idx_agreement_status_end,priority:1"`
	SLALevel           string           `gorm:"column:sla_level;not null;size:20"`
	StartDate          time.Time        `gorm:"not null"`
	EndDate            *time.Time       `gorm:"index:idx_agreement_status_end,priority:2"`
	BasePrice          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	CalculatedPrice    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DiscountPercent    *decimal.Decimal `gorm:"type:decimal(5,2)"`
	AutoRenew          bool             `gorm:"not null;default:false"`
	VisitFrequency     int              `gorm:"not null"`
	PreferredVisitDay  string           `gorm:"size:20"`
	PreferredVisitTime string           `gorm:"size:20"`
	Notes              string           `gorm:"type:text"`
	SignedAt           *time.Time
	CancelledAt        *time.Time
	CancellationReason *string `gorm:"size:500"`
	Version            int     `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (AgreementModel) TableName() string {
	return constants.TableServiceAgreements
}

func (m *AgreementModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}

// AgreementAddonModel is one add-on selected on an agreement.
type AgreementAddonModel struct {
	ID          string           `gorm:"primaryKey;size:40"`
	AgreementID string           `gorm:"not null;size:40;uniqueIndex:uk_agreement_addon,priority:1"`
	AddonID     string           `gorm:"not null;size:40;uniqueIndex:uk_agreement_addon,priority:2"`
	Quantity    int              `gorm:"not null;default:1"`
	CustomPrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Notes       string           `gorm:"size:500"`
}

func (AgreementAddonModel) TableName() string {
	return constants.TableAgreementAddons
}

// AddonProductModel is a catalog entry.
type AddonProductModel struct {
	ID          string          `gorm:"primaryKey;size:40"`
	Name        string          `gorm:"not null;size:120"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"not null;size:20"`
	Frequency   string          `gorm:"not null;size:20"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Unit        string          `gorm:"size:30"`
	IsActive    bool            `gorm:"not null;default:true;index"`
	SortOrder   int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AddonProductModel) TableName() string {
	return constants.TableAddonProducts
}

// ServicePlanModel stores the recurring schedule of an agreement.
type ServicePlanModel struct {
	ID             string    `gorm:"primaryKey;size:40"`
	AgreementID    string    `gorm:"uniqueIndex;not null;size:40"`
	VisitFrequency int       `gorm:"not null"`
	NextVisitDate  time.Time `gorm:"not null;index"`
	SeasonalAdjust bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ServicePlanModel) TableName() string {
	return constants.TableServicePlans
}
