package agreement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"solarops/internal/shared/id"
)

// AgreementAddon attaches a catalog add-on to an agreement.
type AgreementAddon struct {
	id          string
	agreementID string
	addonID     string
	quantity    int
	customPrice *decimal.Decimal
	notes       string
}

// NewAgreementAddon creates an add-on line. customPrice overrides the product price when set.
func NewAgreementAddon(addonID string, quantity int, customPrice *decimal.Decimal, notes string) (*AgreementAddon, error) {
	if addonID == "" {
		return nil, fmt.Errorf("add-on ID is required")
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if customPrice != nil && customPrice.IsNegative() {
		return nil, fmt.Errorf("%w: custom price cannot be negative", ErrInvalidPrice)
	}

	addonRowID, err := id.New(id.PrefixAgreementAddon)
	if err != nil {
		return nil, err
	}

	return &AgreementAddon{
		id:          addonRowID,
		addonID:     addonID,
		quantity:    quantity,
		customPrice: customPrice,
		notes:       notes,
	}, nil
}

// ReconstructAgreementAddon reconstructs an add-on line from persistence
func ReconstructAgreementAddon(rowID, agreementID, addonID string, quantity int, customPrice *decimal.Decimal, notes string) *AgreementAddon {
	return &AgreementAddon{
		id:          rowID,
		agreementID: agreementID,
		addonID:     addonID,
		quantity:    quantity,
		customPrice: customPrice,
		notes:       notes,
	}
}

func (a *AgreementAddon) ID() string                    { return a.id }
func (a *AgreementAddon) AgreementID() string           { return a.agreementID }
func (a *AgreementAddon) AddonID() string               { return a.addonID }
func (a *AgreementAddon) Quantity() int                 { return a.quantity }
func (a *AgreementAddon) CustomPrice() *decimal.Decimal { return a.customPrice }
func (a *AgreementAddon) Notes() string                 { return a.notes }

// Selection returns the pricing input for this add-on.
func (a *AgreementAddon) Selection() AddonSelection {
	return AddonSelection{
		AddonID:     a.addonID,
		Quantity:    a.quantity,
		CustomPrice: a.customPrice,
	}
}
