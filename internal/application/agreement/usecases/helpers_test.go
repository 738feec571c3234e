package usecases

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"solarops/internal/domain/agreement"
	vo "solarops/internal/domain/agreement/valueobjects"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newProduct(t *testing.T, name string, freq vo.AddonFrequency, price string) *agreement.AddonProduct {
	t.Helper()
	p, err := agreement.NewAddonProduct(name, "", vo.AddonCategoryMaintenance, freq, dec(price), "stk", 0)
	require.NoError(t, err)
	return p
}

func newAddonRepo(products ...*agreement.AddonProduct) *mockAddonProductRepository {
	m := &mockAddonProductRepository{products: make(map[string]*agreement.AddonProduct)}
	for _, p := range products {
		m.products[p.ID()] = p
	}
	return m
}

func existingAgreement(t *testing.T, status vo.AgreementStatus, addons []*agreement.AgreementAddon) *agreement.Agreement {
	t.Helper()
	a, err := agreement.ReconstructAgreement(
		"agr_existing", "SA-00007-2026", "inst_1",
		vo.AgreementTypeStandard, status, vo.SLALevelStandard,
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), nil,
		dec("8500"), decPtr("8500"), nil,
		false, 2, "", "", "",
		addons, nil, nil, nil,
		1, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return a
}
