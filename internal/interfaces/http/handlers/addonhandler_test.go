package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/application/agreement/dto"
	"solarops/internal/application/agreement/usecases"
	"solarops/internal/interfaces/http/handlers/testutil"
)

type mockCreateAddonUC struct {
	cmd    *usecases.CreateAddonProductCommand
	result *dto.AddonProductDTO
	err    error
}

func (m *mockCreateAddonUC) Execute(ctx context.Context, cmd usecases.CreateAddonProductCommand) (*dto.AddonProductDTO, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockUpdateAddonUC struct {
	cmd    *usecases.UpdateAddonProductCommand
	result *dto.AddonProductDTO
	err    error
}

func (m *mockUpdateAddonUC) Execute(ctx context.Context, cmd usecases.UpdateAddonProductCommand) (*dto.AddonProductDTO, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockListAddonsUC struct {
	query  *usecases.ListAddonProductsQuery
	result []*dto.AddonProductDTO
	err    error
}

func (m *mockListAddonsUC) Execute(ctx context.Context, query usecases.ListAddonProductsQuery) ([]*dto.AddonProductDTO, error) {
	m.query = &query
	return m.result, m.err
}

func TestAddonHandler_Create(t *testing.T) {
	create := &mockCreateAddonUC{result: &dto.AddonProductDTO{ID: "addon_wash"}}
	handler := NewAddonHandler(create, nil, nil, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/addons", map[string]any{
		"name":       "Panel washing",
		"category":   "MAINTENANCE",
		"frequency":  "PER_VISIT",
		"base_price": "1500.00",
		"unit":       "visit",
	})

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, create.cmd.BasePrice.Equal(decimal.NewFromInt(1500)))
}

func TestAddonHandler_Create_NegativePrice(t *testing.T) {
	create := &mockCreateAddonUC{}
	handler := NewAddonHandler(create, nil, nil, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/addons", map[string]any{
		"name":       "Panel washing",
		"category":   "MAINTENANCE",
		"frequency":  "PER_VISIT",
		"base_price": "-5",
	})

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, create.cmd)
}

func TestAddonHandler_Update_Deactivate(t *testing.T) {
	update := &mockUpdateAddonUC{result: &dto.AddonProductDTO{ID: "addon_wash"}}
	handler := NewAddonHandler(nil, update, nil, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPatch, "/addons/addon_wash", map[string]any{"active": false})
	testutil.SetURLParam(c, "id", "addon_wash")

	handler.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, update.cmd.Active)
	assert.False(t, *update.cmd.Active)
	assert.Nil(t, update.cmd.BasePrice)
}

func TestAddonHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          map[string]string
		wantActiveOnly bool
	}{
		{"default active only", nil, true},
		{"include inactive", map[string]string{"include_inactive": "true"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := &mockListAddonsUC{result: []*dto.AddonProductDTO{}}
			handler := NewAddonHandler(nil, nil, list, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodGet, "/addons", nil)
			if tt.query != nil {
				testutil.SetQueryParams(c, tt.query)
			}

			handler.List(c)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantActiveOnly, list.query.ActiveOnly)
		})
	}
}
