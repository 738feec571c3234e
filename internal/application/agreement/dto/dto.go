package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"solarops/internal/domain/agreement"
)

type AgreementAddonDTO struct {
	ID          string           `json:"id"`
	AddonID     string           `json:"addon_id"`
	Quantity    int              `json:"quantity"`
	CustomPrice *decimal.Decimal `json:"custom_price,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

type AgreementDTO struct {
	ID                 string              `json:"id"`
	AgreementNumber    string              `json:"agreement_number"`
	InstallationID     string              `json:"installation_id"`
	AgreementType      string              `json:"agreement_type"`
	Status             string              `json:"status"`
	SLALevel           string              `json:"sla_level"`
	ResponseTimeHours  int                 `json:"response_time_hours"`
	StartDate          time.Time           `json:"start_date"`
	EndDate            *time.Time          `json:"end_date,omitempty"`
	BasePrice          decimal.Decimal     `json:"base_price"`
	CalculatedPrice    *decimal.Decimal    `json:"calculated_price,omitempty"`
	DiscountPercent    *decimal.Decimal    `json:"discount_percent,omitempty"`
	AutoRenew          bool                `json:"auto_renew"`
	VisitFrequency     int                 `json:"visit_frequency"`
	PreferredVisitDay  string              `json:"preferred_visit_day,omitempty"`
	PreferredVisitTime string              `json:"preferred_visit_time,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	Addons             []AgreementAddonDTO `json:"addons"`
	NextVisitDate      *time.Time          `json:"next_visit_date,omitempty"`
	SignedAt           *time.Time          `json:"signed_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CancellationReason *string             `json:"cancellation_reason,omitempty"`
	Version            int                 `json:"version"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// ToAgreementDTO converts an agreement. plan may be nil.
func ToAgreementDTO(a *agreement.Agreement, plan *agreement.ServicePlan) *AgreementDTO {
	if a == nil {
		return nil
	}

	addons := make([]AgreementAddonDTO, 0, len(a.Addons()))
	for _, addon := range a.Addons() {
		addons = append(addons, AgreementAddonDTO{
			ID:          addon.ID(),
			AddonID:     addon.AddonID(),
			Quantity:    addon.Quantity(),
			CustomPrice: addon.CustomPrice(),
			Notes:       addon.Notes(),
		})
	}

	d := &AgreementDTO{
		ID:                 a.ID(),
		AgreementNumber:    a.AgreementNumber(),
		InstallationID:     a.InstallationID(),
		AgreementType:      a.AgreementType().String(),
		Status:             a.Status().String(),
		SLALevel:           a.SLALevel().String(),
		ResponseTimeHours:  a.SLALevel().ResponseTimeHours(),
		StartDate:          a.StartDate(),
		EndDate:            a.EndDate(),
		BasePrice:          a.BasePrice(),
		CalculatedPrice:    a.CalculatedPrice(),
		DiscountPercent:    a.DiscountPercent(),
		AutoRenew:          a.AutoRenew(),
		VisitFrequency:     a.VisitFrequency(),
		PreferredVisitDay:  a.PreferredVisitDay(),
		PreferredVisitTime: a.PreferredVisitTime(),
		Notes:              a.Notes(),
		Addons:             addons,
		SignedAt:           a.SignedAt(),
		CancelledAt:        a.CancelledAt(),
		CancellationReason: a.CancellationReason(),
		Version:            a.Version(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
	if plan != nil {
		next := plan.NextVisitDate()
		d.NextVisitDate = &next
	}
	return d
}

func ToAgreementDTOList(agreements []*agreement.Agreement) []*AgreementDTO {
	out := make([]*AgreementDTO, 0, len(agreements))
	for _, a := range agreements {
		out = append(out, ToAgreementDTO(a, nil))
	}
	return out
}

type AddonProductDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Frequency   string          `json:"frequency"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Unit        string          `json:"unit,omitempty"`
	IsActive    bool            `json:"is_active"`
	SortOrder   int             `json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToAddonProductDTO(p *agreement.AddonProduct) *AddonProductDTO {
	if p == nil {
		return nil
	}
	return &AddonProductDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Category:    p.Category().String(),
		Frequency:   p.Frequency().String(),
		BasePrice:   p.BasePrice(),
		Unit:        p.Unit(),
		IsActive:    p.IsActive(),
		SortOrder:   p.SortOrder(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

// ToPriceBreakdownDTO rounds a price calculation for presentation.
func ToPriceBreakdownDTO(b agreement.PriceBreakdown) *agreement.PriceBreakdown {
	r := b.Rounded()
	return &r
}
