// Package installation holds the customer site an agreement covers.
package installation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"solarops/internal/shared/biztime"
	"solarops/internal/shared/id"
)

var ErrInstallationNotFound = errors.New("installation not found")

// SystemType is the kind of equipment installed at the site.
type SystemType string

const (
	SystemTypeSolar   SystemType = "SOLAR"
	SystemTypeBattery SystemType = "BATTERY"
	SystemTypeHybrid  SystemType = "HYBRID"
)

func (s SystemType) IsValid() bool {
	return s == SystemTypeSolar || s == SystemTypeBattery || s == SystemTypeHybrid
}

func (s SystemType) String() string { return string(s) }

type Installation struct {
	id           string
	customerName string
	address      string
	systemType   SystemType
	capacityKw   decimal.Decimal
	notes        string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewInstallation(customerName, address string, systemType SystemType, capacityKw decimal.Decimal, notes string) (*Installation, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("address is required")
	}
	if !systemType.IsValid() {
		return nil, fmt.Errorf("invalid system type: %s", systemType)
	}
	if capacityKw.IsNegative() {
		return nil, fmt.Errorf("capacity cannot be negative")
	}

	instID, err := id.New(id.PrefixInstallation)
	if err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	return &Installation{
		id:           instID,
		customerName: customerName,
		address:      address,
		systemType:   systemType,
		capacityKw:   capacityKw,
		notes:        notes,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructInstallation reconstructs an installation from persistence
func ReconstructInstallation(
	instID, customerName, address string,
	systemType SystemType,
	capacityKw decimal.Decimal,
	notes string,
	createdAt, updatedAt time.Time,
) *Installation {
	return &Installation{
		id:           instID,
		customerName: customerName,
		address:      address,
		systemType:   systemType,
		capacityKw:   capacityKw,
		notes:        notes,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (i *Installation) ID() string                  { return i.id }
func (i *Installation) CustomerName() string        { return i.customerName }
func (i *Installation) Address() string             { return i.address }
func (i *Installation) SystemType() SystemType      { return i.systemType }
func (i *Installation) CapacityKw() decimal.Decimal { return i.capacityKw }
func (i *Installation) Notes() string               { return i.notes }
func (i *Installation) CreatedAt() time.Time        { return i.createdAt }
func (i *Installation) UpdatedAt() time.Time        { return i.updatedAt }
