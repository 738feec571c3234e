package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/application/installation/usecases"
	"solarops/internal/interfaces/http/handlers/testutil"
	"solarops/internal/shared/errors"
)

type mockCreateInstallationUC struct {
	cmd    usecases.CreateInstallationCommand
	result *usecases.InstallationDTO
	err    error
}

func (m *mockCreateInstallationUC) Execute(ctx context.Context, cmd usecases.CreateInstallationCommand) (*usecases.InstallationDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetInstallationUC struct {
	result *usecases.InstallationDTO
	err    error
}

func (m *mockGetInstallationUC) Execute(ctx context.Context, installationID string) (*usecases.InstallationDTO, error) {
	return m.result, m.err
}

type mockListInstallationsUC struct {
	page, pageSize int
	result         *usecases.ListInstallationsResult
	err            error
}

func (m *mockListInstallationsUC) Execute(ctx context.Context, page, pageSize int) (*usecases.ListInstallationsResult, error) {
	m.page, m.pageSize = page, pageSize
	return m.result, m.err
}

func TestInstallationHandler_Create_Success(t *testing.T) {
	mockUC := &mockCreateInstallationUC{result: &usecases.InstallationDTO{ID: "inst_abc123"}}
	handler := NewInstallationHandler(mockUC, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/installations", map[string]any{
		"customer_name": "Fjellheim Gård",
		"address":       "Storgata 1, 0155 Oslo",
		"system_type":   "HYBRID",
		"capacity_kw":   "12.5",
	})

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Fjellheim Gård", mockUC.cmd.CustomerName)
	assert.True(t, mockUC.cmd.CapacityKw.Equal(decimal.RequireFromString("12.5")))
}

func TestInstallationHandler_Create_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "missing customer",
			body: map[string]any{"address": "Storgata 1", "system_type": "SOLAR", "capacity_kw": "5"},
		},
		{
			name: "unknown system type",
			body: map[string]any{"customer_name": "A", "address": "B", "system_type": "WIND", "capacity_kw": "5"},
		},
		{
			name: "zero capacity",
			body: map[string]any{"customer_name": "A", "address": "B", "system_type": "SOLAR", "capacity_kw": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCreateInstallationUC{}
			handler := NewInstallationHandler(mockUC, nil, nil, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/installations", tt.body)

			handler.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, mockUC.cmd.CustomerName)
		})
	}
}

func TestInstallationHandler_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mockUC := &mockGetInstallationUC{err: errors.NewNotFoundError("installation not found")}
		handler := NewInstallationHandler(nil, mockUC, nil, testutil.NewMockLogger())
		c, w := testutil.NewTestContext(http.MethodGet, "/installations/inst_missing", nil)
		testutil.SetURLParam(c, "id", "inst_missing")

		handler.Get(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong prefix", func(t *testing.T) {
		handler := NewInstallationHandler(nil, &mockGetInstallationUC{}, nil, testutil.NewMockLogger())
		c, w := testutil.NewTestContext(http.MethodGet, "/installations/agr_abc", nil)
		testutil.SetURLParam(c, "id", "agr_abc")

		handler.Get(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInstallationHandler_List(t *testing.T) {
	mockUC := &mockListInstallationsUC{result: &usecases.ListInstallationsResult{
		Installations: []*usecases.InstallationDTO{{ID: "inst_1"}, {ID: "inst_2"}},
		Total:         12,
		Page:          2,
		PageSize:      10,
	}}
	handler := NewInstallationHandler(nil, nil, mockUC, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/installations", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "2", "page_size": "10"})

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, mockUC.page)
	assert.Equal(t, 10, mockUC.pageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list struct {
		Items      []usecases.InstallationDTO `json:"items"`
		Total      int64                      `json:"total"`
		TotalPages int                        `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Len(t, list.Items, 2)
	assert.Equal(t, int64(12), list.Total)
	assert.Equal(t, 2, list.TotalPages)
}
