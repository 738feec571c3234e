package agreement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "solarops/internal/domain/agreement/valueobjects"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newProduct(t *testing.T, name string, freq vo.AddonFrequency, price string) *AddonProduct {
	t.Helper()
	p, err := NewAddonProduct(name, "", vo.AddonCategoryMonitoring, freq, dec(price), "stk", 0)
	require.NoError(t, err)
	return p
}

func products(ps ...*AddonProduct) map[string]*AddonProduct {
	m := make(map[string]*AddonProduct, len(ps))
	for _, p := range ps {
		m[p.ID()] = p
	}
	return m
}

func TestCalculatePrice_WorkedExample(t *testing.T) {
	monitoring := newProduct(t, "Remote monitoring", vo.AddonFrequencyAnnual, "5000")

	got := CalculatePrice(PriceInput{
		BasePrice:       dec("8500"),
		DiscountPercent: decPtr("0"),
		Addons:          []AddonSelection{{AddonID: monitoring.ID(), Quantity: 1}},
		Products:        products(monitoring),
	})

	assert.True(t, got.AddonsTotal.Equal(dec("5000")))
	assert.True(t, got.Subtotal.Equal(dec("13500")))
	assert.True(t, got.DiscountAmount.IsZero())
	assert.True(t, got.Total.Equal(dec("13500")))
	assert.True(t, got.VATAmount.Equal(dec("3375")))
	assert.True(t, got.GrandTotal.Equal(dec("16875")))
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "Remote monitoring", got.Lines[1].Description)
}

func TestCalculatePrice_OnlyAnnualAddonsCount(t *testing.T) {
	tests := []struct {
		name      string
		frequency vo.AddonFrequency
		want      string
	}{
		{"annual", vo.AddonFrequencyAnnual, "3000"},
		{"per visit", vo.AddonFrequencyPerVisit, "0"},
		{"one time", vo.AddonFrequencyOneTime, "0"},
		{"monthly", vo.AddonFrequencyMonthly, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(t, "Panel wash", tt.frequency, "1000")
			got := CalculatePrice(PriceInput{
				BasePrice: dec("4500"),
				Addons:    []AddonSelection{{AddonID: p.ID(), Quantity: 3}},
				Products:  products(p),
			})
			assert.True(t, got.AddonsTotal.Equal(dec(tt.want)), "addons total %s", got.AddonsTotal)
		})
	}
}

func TestCalculatePrice_CustomPriceAndDiscount(t *testing.T) {
	p := newProduct(t, "Battery health report", vo.AddonFrequencyAnnual, "2000")

	got := CalculatePrice(PriceInput{
		BasePrice:       dec("8500"),
		DiscountPercent: decPtr("12.5"),
		Addons:          []AddonSelection{{AddonID: p.ID(), Quantity: 2, CustomPrice: decPtr("1750")}},
		Products:        products(p),
	})

	// subtotal 8500 + 3500 = 12000, discount 1500
	assert.True(t, got.Subtotal.Equal(dec("12000")))
	assert.True(t, got.DiscountAmount.Equal(dec("1500")))
	assert.True(t, got.Total.Equal(dec("10500")))
	assert.True(t, got.Lines[1].UnitPrice.Equal(dec("1750")))
}

func TestCalculatePrice_UnresolvedAddonIsSkipped(t *testing.T) {
	got := CalculatePrice(PriceInput{
		BasePrice: dec("8500"),
		Addons:    []AddonSelection{{AddonID: "addon_missing", Quantity: 1}},
	})
	assert.True(t, got.AddonsTotal.IsZero())
	assert.Len(t, got.Lines, 1)
}

func TestCalculatePrice_DeterministicAndVATInvariant(t *testing.T) {
	p := newProduct(t, "Inverter check", vo.AddonFrequencyAnnual, "333.33")
	inputs := []PriceInput{
		{BasePrice: dec("8500")},
		{BasePrice: dec("1234.567"), DiscountPercent: decPtr("33.3333")},
		{BasePrice: dec("0.01"), DiscountPercent: decPtr("100")},
		{BasePrice: dec("9999.99"), DiscountPercent: decPtr("7"), Addons: []AddonSelection{{AddonID: p.ID(), Quantity: 7}}, Products: products(p)},
	}

	for _, in := range inputs {
		first := CalculatePrice(in)
		second := CalculatePrice(in)
		assert.Equal(t, first, second)

		assert.True(t, first.Total.Equal(first.Subtotal.Sub(first.DiscountAmount)))
		assert.True(t, first.GrandTotal.Equal(first.Total.Mul(dec("1.25"))),
			"grand total %s, total %s", first.GrandTotal, first.Total)
	}
}

func TestPriceBreakdown_Rounded(t *testing.T) {
	got := CalculatePrice(PriceInput{BasePrice: dec("1000.005"), DiscountPercent: decPtr("10")}).Rounded()

	assert.Equal(t, "1000.01", got.BasePrice.StringFixed(2))
	assert.Equal(t, "900.00", got.Total.StringFixed(2))
	assert.Equal(t, "1000.01", got.Lines[0].Total.StringFixed(2))
}

func TestValidatePriceInput(t *testing.T) {
	tests := []struct {
		name    string
		in      PriceInput
		wantErr error
	}{
		{"valid", PriceInput{BasePrice: dec("1")}, nil},
		{"zero base", PriceInput{BasePrice: decimal.Zero}, ErrInvalidPrice},
		{"negative base", PriceInput{BasePrice: dec("-1")}, ErrInvalidPrice},
		{"discount above 100", PriceInput{BasePrice: dec("1"), DiscountPercent: decPtr("100.01")}, ErrInvalidDiscount},
		{"negative discount", PriceInput{BasePrice: dec("1"), DiscountPercent: decPtr("-1")}, ErrInvalidDiscount},
		{"zero quantity", PriceInput{BasePrice: dec("1"), Addons: []AddonSelection{{AddonID: "a", Quantity: 0}}}, ErrInvalidQuantity},
		{"negative custom price", PriceInput{BasePrice: dec("1"), Addons: []AddonSelection{{AddonID: "a", Quantity: 1, CustomPrice: decPtr("-5")}}}, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePriceInput(tt.in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestVisitChargeLines(t *testing.T) {
	wash := newProduct(t, "Panel wash", vo.AddonFrequencyPerVisit, "1200")
	install := newProduct(t, "Monitoring install", vo.AddonFrequencyOneTime, "2500")
	annual := newProduct(t, "Annual report", vo.AddonFrequencyAnnual, "900")
	sel := []AddonSelection{
		{AddonID: wash.ID(), Quantity: 2},
		{AddonID: install.ID(), Quantity: 1},
		{AddonID: annual.ID(), Quantity: 1},
	}
	all := products(wash, install, annual)

	first := VisitChargeLines(sel, all, 1)
	require.Len(t, first, 2)
	assert.True(t, first[0].Total.Equal(dec("2400")))
	assert.Equal(t, install.ID(), first[1].AddonID)

	later := VisitChargeLines(sel, all, 2)
	require.Len(t, later, 1)
	assert.Equal(t, wash.ID(), later[0].AddonID)
}
