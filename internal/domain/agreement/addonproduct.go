package agreement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "solarops/internal/domain/agreement/valueobjects"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/id"
)

// AddonProduct is a catalog entry that can be attached to agreements.
type AddonProduct struct {
	id          string
	name        string
	description string
	category    vo.AddonCategory
	frequency   vo.AddonFrequency
	basePrice   decimal.Decimal
	unit        string
	isActive    bool
	sortOrder   int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewAddonProduct(
	name, description string,
	category vo.AddonCategory,
	frequency vo.AddonFrequency,
	basePrice decimal.Decimal,
	unit string,
	sortOrder int,
) (*AddonProduct, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("add-on name is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid add-on category: %s", category)
	}
	if !frequency.IsValid() {
		return nil, fmt.Errorf("invalid add-on frequency: %s", frequency)
	}
	if basePrice.IsNegative() {
		return nil, fmt.Errorf("%w: add-on price cannot be negative", ErrInvalidPrice)
	}

	productID, err := id.New(id.PrefixAddonProduct)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &AddonProduct{
		id:          productID,
		name:        name,
		description: description,
		category:    category,
		frequency:   frequency,
		basePrice:   basePrice,
		unit:        unit,
		isActive:    true,
		sortOrder:   sortOrder,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructAddonProduct reconstructs an add-on product from persistence
func ReconstructAddonProduct(
	productID, name, description string,
	category vo.AddonCategory,
	frequency vo.AddonFrequency,
	basePrice decimal.Decimal,
	unit string,
	isActive bool,
	sortOrder int,
	createdAt, updatedAt time.Time,
) (*AddonProduct, error) {
	if productID == "" {
		return nil, fmt.Errorf("add-on product ID is required")
	}
	if !frequency.IsValid() {
		return nil, fmt.Errorf("invalid add-on frequency: %s", frequency)
	}
	return &AddonProduct{
		id:          productID,
		name:        name,
		description: description,
		category:    category,
		frequency:   frequency,
		basePrice:   basePrice,
		unit:        unit,
		isActive:    isActive,
		sortOrder:   sortOrder,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *AddonProduct) ID() string                   { return p.id }
func (p *AddonProduct) Name() string                 { return p.name }
func (p *AddonProduct) Description() string          { return p.description }
func (p *AddonProduct) Category() vo.AddonCategory   { return p.category }
func (p *AddonProduct) Frequency() vo.AddonFrequency { return p.frequency }
func (p *AddonProduct) BasePrice() decimal.Decimal   { return p.basePrice }
func (p *AddonProduct) Unit() string                 { return p.unit }
func (p *AddonProduct) IsActive() bool               { return p.isActive }
func (p *AddonProduct) SortOrder() int               { return p.sortOrder }
func (p *AddonProduct) CreatedAt() time.Time         { return p.createdAt }
func (p *AddonProduct) UpdatedAt() time.Time         { return p.updatedAt }

// Update changes the catalog fields. Frequency and category are fixed once created
// because agreements already priced against the product depend on them.
func (p *AddonProduct) Update(name, description *string, basePrice *decimal.Decimal, unit *string, sortOrder *int) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return fmt.Errorf("add-on name is required")
		}
		p.name = trimmed
	}
	if description != nil {
		p.description = *description
	}
	if basePrice != nil {
		if basePrice.IsNegative() {
			return fmt.Errorf("%w: add-on price cannot be negative", ErrInvalidPrice)
		}
		p.basePrice = *basePrice
	}
	if unit != nil {
		p.unit = *unit
	}
	if sortOrder != nil {
		p.sortOrder = *sortOrder
	}
	p.updatedAt = biztime.NowUTC()
	return nil
}

// Deactivate hides the product from new agreements
func (p *AddonProduct) Deactivate() {
	p.isActive = false
	p.updatedAt = biztime.NowUTC()
}

// Activate makes the product available to new agreements
func (p *AddonProduct) Activate() {
	p.isActive = true
	p.updatedAt = biztime.NowUTC()
}
