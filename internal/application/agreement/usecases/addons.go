package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"solarops/internal/domain/agreement"
	"solarops/internal/shared/errors"
)

// AddonInput is one requested add-on in a command.
type AddonInput struct {
	AddonID     string
	Quantity    int
	CustomPrice *decimal.Decimal
	Notes       string
}

func addonIDs(inputs []AddonInput) []string {
	seen := make(map[string]bool, len(inputs))
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if !seen[in.AddonID] {
			seen[in.AddonID] = true
			ids = append(ids, in.AddonID)
		}
	}
	return ids
}

func selections(inputs []AddonInput) []agreement.AddonSelection {
	out := make([]agreement.AddonSelection, len(inputs))
	for i, in := range inputs {
		out[i] = agreement.AddonSelection{AddonID: in.AddonID, Quantity: in.Quantity, CustomPrice: in.CustomPrice}
	}
	return out
}

// loadProducts resolves catalog entries for ids. Unknown ids are NotFound;
// inactive products are rejected unless allowInactive is set.
func loadProducts(ctx context.Context, repo agreement.AddonProductRepository, ids []string, allowInactive bool) (map[string]*agreement.AddonProduct, error) {
	products := make(map[string]*agreement.AddonProduct, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load add-on products: %w", err)
	}
	for _, p := range found {
		products[p.ID()] = p
	}

	var missing, inactive []string
	for _, addonID := range ids {
		p, ok := products[addonID]
		switch {
		case !ok:
			missing = append(missing, addonID)
		case !p.IsActive() && !allowInactive:
			inactive = append(inactive, addonID)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewNotFoundError("add-on product not found", strings.Join(missing, ", "))
	}
	if len(inactive) > 0 {
		return nil, errors.NewValidationError("add-on product is inactive", strings.Join(inactive, ", "))
	}
	return products, nil
}

func buildAddons(inputs []AddonInput) ([]*agreement.AgreementAddon, error) {
	out := make([]*agreement.AgreementAddon, 0, len(inputs))
	for _, in := range inputs {
		addon, err := agreement.NewAgreementAddon(in.AddonID, in.Quantity, in.CustomPrice, in.Notes)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		out = append(out, addon)
	}
	return out, nil
}
