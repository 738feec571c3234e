package agreement

import (
	"fmt"

	"github.com/shopspring/decimal"

	vo "solarops/internal/domain/agreement/valueobjects"
)

// VATRate is the Norwegian standard VAT rate applied to agreement prices.
var VATRate = decimal.RequireFromString("0.25")

var hundred = decimal.NewFromInt(100)

// AddonSelection is one requested add-on on an agreement.
type AddonSelection struct {
	AddonID     string
	Quantity    int
	CustomPrice *decimal.Decimal
}

// PriceInput holds everything the price of an agreement depends on.
// Products maps add-on IDs to the resolved catalog entries.
type PriceInput struct {
	BasePrice       decimal.Decimal
	DiscountPercent *decimal.Decimal
	Addons          []AddonSelection
	Products        map[string]*AddonProduct
}

// PriceLine is one row of the itemized breakdown.
type PriceLine struct {
	Description string          `json:"description"`
	AddonID     string          `json:"addon_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// PriceBreakdown is the annual price of an agreement. Total excludes VAT.
type PriceBreakdown struct {
	BasePrice      decimal.Decimal `json:"base_price"`
	AddonsTotal    decimal.Decimal `json:"addons_total"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	Lines          []PriceLine     `json:"breakdown"`
}

// ValidatePriceInput checks the preconditions CalculatePrice relies on.
func ValidatePriceInput(in PriceInput) error {
	if !in.BasePrice.IsPositive() {
		return fmt.Errorf("%w: base price must be positive", ErrInvalidPrice)
	}
	if err := validateDiscount(in.DiscountPercent); err != nil {
		return err
	}
	for _, a := range in.Addons {
		if a.Quantity < 1 {
			return fmt.Errorf("%w: add-on %s", ErrInvalidQuantity, a.AddonID)
		}
		if a.CustomPrice != nil && a.CustomPrice.IsNegative() {
			return fmt.Errorf("%w: custom price for add-on %s cannot be negative", ErrInvalidPrice, a.AddonID)
		}
	}
	return nil
}

func validateDiscount(d *decimal.Decimal) error {
	if d == nil {
		return nil
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	return nil
}

// CalculatePrice computes the annual agreement price. Only ANNUAL add-ons are
// included; other frequencies are billed when they occur. Add-ons whose product
// is missing from in.Products are skipped. No rounding happens here.
func CalculatePrice(in PriceInput) PriceBreakdown {
	lines := make([]PriceLine, 0, len(in.Addons)+1)
	lines = append(lines, PriceLine{
		Description: "Base service agreement",
		Quantity:    1,
		UnitPrice:   in.BasePrice,
		Total:       in.BasePrice,
	})

	addonsTotal := decimal.Zero
	for _, sel := range in.Addons {
		product, ok := in.Products[sel.AddonID]
		if !ok || product == nil || !product.Frequency().IsAnnual() {
			continue
		}
		line := addonLine(product, sel)
		addonsTotal = addonsTotal.Add(line.Total)
		lines = append(lines, line)
	}

	subtotal := in.BasePrice.Add(addonsTotal)
	discountAmount := decimal.Zero
	if in.DiscountPercent != nil {
		discountAmount = subtotal.Mul(in.DiscountPercent.Div(hundred))
	}
	total := subtotal.Sub(discountAmount)
	vat := total.Mul(VATRate)

	return PriceBreakdown{
		BasePrice:      in.BasePrice,
		AddonsTotal:    addonsTotal,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		VATAmount:      vat,
		GrandTotal:     total.Add(vat),
		Lines:          lines,
	}
}

func addonLine(product *AddonProduct, sel AddonSelection) PriceLine {
	unit := product.BasePrice()
	if sel.CustomPrice != nil {
		unit = *sel.CustomPrice
	}
	return PriceLine{
		Description: product.Name(),
		AddonID:     product.ID(),
		Quantity:    sel.Quantity,
		UnitPrice:   unit,
		Total:       unit.Mul(decimal.NewFromInt(int64(sel.Quantity))),
	}
}

// VisitChargeLines lists the add-ons billed on a given visit: PER_VISIT add-ons on
// every visit and ONE_TIME add-ons on the first one.
func VisitChargeLines(addons []AddonSelection, products map[string]*AddonProduct, visitNumber int) []PriceLine {
	var lines []PriceLine
	for _, sel := range addons {
		product, ok := products[sel.AddonID]
		if !ok || product == nil {
			continue
		}
		switch product.Frequency() {
		case vo.AddonFrequencyPerVisit:
		case vo.AddonFrequencyOneTime:
			if visitNumber != 1 {
				continue
			}
		default:
			continue
		}
		lines = append(lines, addonLine(product, sel))
	}
	return lines
}

// Rounded returns a copy with every amount rounded to øre for presentation.
func (b PriceBreakdown) Rounded() PriceBreakdown {
	r := PriceBreakdown{
		BasePrice:      b.BasePrice.Round(2),
		AddonsTotal:    b.AddonsTotal.Round(2),
		Subtotal:       b.Subtotal.Round(2),
		DiscountAmount: b.DiscountAmount.Round(2),
		Total:          b.Total.Round(2),
		VATAmount:      b.VATAmount.Round(2),
		GrandTotal:     b.GrandTotal.Round(2),
		Lines:          make([]PriceLine, len(b.Lines)),
	}
	for i, l := range b.Lines {
		l.UnitPrice = l.UnitPrice.Round(2)
		l.Total = l.Total.Round(2)
		r.Lines[i] = l
	}
	return r
}
