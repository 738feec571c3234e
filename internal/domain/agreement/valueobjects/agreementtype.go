package valueobjects

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AgreementType is the commercial tier of an agreement.
type AgreementType string

const (
	AgreementTypeBasic      AgreementType = "BASIC"
	AgreementTypeStandard   AgreementType = "STANDARD"
	AgreementTypePremium    AgreementType = "PREMIUM"
	AgreementTypeEnterprise AgreementType = "ENTERPRISE"
)

type tierDefaults struct {
	visitsPerYear int
	basePrice     decimal.Decimal
}

var agreementTiers = map[AgreementType]tierDefaults{
	AgreementTypeBasic:      {visitsPerYear: 1, basePrice: decimal.NewFromInt(4500)},
	AgreementTypeStandard:   {visitsPerYear: 2, basePrice: decimal.NewFromInt(8500)},
	AgreementTypePremium:    {visitsPerYear: 4, basePrice: decimal.NewFromInt(14500)},
	AgreementTypeEnterprise: {visitsPerYear: 12, basePrice: decimal.NewFromInt(29500)},
}

func (t AgreementType) String() string {
	return string(t)
}

func (t AgreementType) IsValid() bool {
	_, ok := agreementTiers[t]
	return ok
}

// DefaultVisitFrequency returns the visits per year included in the tier.
func (t AgreementType) DefaultVisitFrequency() int {
	return agreementTiers[t].visitsPerYear
}

// DefaultBasePrice returns the tier's list price per year, excluding VAT.
func (t AgreementType) DefaultBasePrice() decimal.Decimal {
	return agreementTiers[t].basePrice
}

func NewAgreementType(s string) (AgreementType, error) {
	t := AgreementType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid agreement type: %s", s)
	}
	return t, nil
}
