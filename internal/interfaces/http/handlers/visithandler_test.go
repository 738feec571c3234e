package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/application/visit/dto"
	"solarops/internal/application/visit/usecases"
	"solarops/internal/interfaces/http/handlers/testutil"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/constants"
	"solarops/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockGetVisitUC struct {
	result *dto.VisitDTO
	err    error
}

func (m *mockGetVisitUC) Execute(ctx context.Context, visitID string) (*dto.VisitDTO, error) {
	return m.result, m.err
}

type mockListVisitsUC struct {
	query  *usecases.ListVisitsQuery
	result *usecases.ListVisitsResult
	err    error
}

func (m *mockListVisitsUC) Execute(ctx context.Context, query usecases.ListVisitsQuery) (*usecases.ListVisitsResult, error) {
	m.query = &query
	return m.result, m.err
}

type mockCreateVisitUC struct {
	cmd    *usecases.CreateVisitCommand
	result *dto.VisitDTO
	err    error
}

func (m *mockCreateVisitUC) Execute(ctx context.Context, cmd usecases.CreateVisitCommand) (*dto.VisitDTO, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockStartVisitUC struct {
	called bool
	result *dto.VisitDTO
	err    error
}

func (m *mockStartVisitUC) Execute(ctx context.Context, cmd usecases.StartVisitCommand) (*dto.VisitDTO, error) {
	m.called = true
	return m.result, m.err
}

type mockCompleteVisitUC struct {
	cmd    *usecases.CompleteVisitCommand
	result *dto.VisitDTO
	err    error
}

func (m *mockCompleteVisitUC) Execute(ctx context.Context, cmd usecases.CompleteVisitCommand) (*dto.VisitDTO, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockUpdateVisitUC struct {
	cmd    *usecases.UpdateVisitCommand
	result *dto.VisitDTO
	err    error
}

func (m *mockUpdateVisitUC) Execute(ctx context.Context, cmd usecases.UpdateVisitCommand) (*dto.VisitDTO, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockAddPhotoUC struct {
	cmd    *usecases.AddPhotoCommand
	result *dto.PhotoDTO
	err    error
}

func (m *mockAddPhotoUC) Execute(ctx context.Context, cmd usecases.AddPhotoCommand) (*dto.PhotoDTO, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockExportInvoiceUC struct {
	result *usecases.ExportInvoiceResult
	err    error
}

func (m *mockExportInvoiceUC) Execute(ctx context.Context, cmd usecases.ExportInvoiceCommand) (*usecases.ExportInvoiceResult, error) {
	return m.result, m.err
}

func assignedVisit(technicianID string) *mockGetVisitUC {
	return &mockGetVisitUC{result: &dto.VisitDTO{ID: "vis_abc", TechnicianID: technicianID, Status: "SCHEDULED"}}
}

// =====================================================================
// Technician scoping
// =====================================================================

func TestVisitHandler_List_FieldOnlyCallerSeesOwnVisits(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		query    string
		wantTech string
	}{
		{"technician is pinned to self", []string{constants.RoleTechnician}, "tech-other", "tech-1"},
		{"dispatcher may filter", []string{constants.RoleDispatcher}, "tech-other", "tech-other"},
		{"technician with dispatcher role may filter", []string{constants.RoleTechnician, constants.RoleDispatcher}, "tech-other", "tech-other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockListVisitsUC{result: &usecases.ListVisitsResult{Page: 1, PageSize: 20}}
			handler := NewVisitHandler(VisitUseCases{List: mockUC}, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodGet, "/visits", nil)
			testutil.SetAuthContext(c, "tech-1", tt.roles...)
			testutil.SetQueryParams(c, map[string]string{"technician_id": tt.query, "status": "scheduled"})

			handler.List(c)

			require.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, mockUC.query)
			assert.Equal(t, tt.wantTech, mockUC.query.TechnicianID)
			assert.Equal(t, "SCHEDULED", mockUC.query.Status)
		})
	}
}

func TestVisitHandler_List_BadDateRange(t *testing.T) {
	mockUC := &mockListVisitsUC{}
	handler := NewVisitHandler(VisitUseCases{List: mockUC}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/visits", nil)
	testutil.SetQueryParams(c, map[string]string{"from": "2026-13-01"})

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, mockUC.query)
}

func TestVisitHandler_Get_OtherTechniciansVisit(t *testing.T) {
	handler := NewVisitHandler(VisitUseCases{Get: assignedVisit("tech-2")}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/visits/vis_abc", nil)
	testutil.SetURLParam(c, "id", "vis_abc")
	testutil.SetAuthContext(c, "tech-1", constants.RoleTechnician)

	handler.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVisitHandler_Start_Ownership(t *testing.T) {
	tests := []struct {
		name       string
		assignedTo string
		wantStatus int
		wantCalled bool
	}{
		{"own visit", "tech-1", http.StatusOK, true},
		{"someone else's visit", "tech-2", http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := &mockStartVisitUC{result: &dto.VisitDTO{ID: "vis_abc", Status: "IN_PROGRESS"}}
			handler := NewVisitHandler(VisitUseCases{Get: assignedVisit(tt.assignedTo), Start: start}, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/visits/vis_abc/start", nil)
			testutil.SetURLParam(c, "id", "vis_abc")
			testutil.SetAuthContext(c, "tech-1", constants.RoleTechnician)

			handler.Start(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, start.called)
		})
	}
}

func TestVisitHandler_Start_DispatcherSkipsOwnershipLookup(t *testing.T) {
	start := &mockStartVisitUC{result: &dto.VisitDTO{ID: "vis_abc"}}
	get := &mockGetVisitUC{err: errors.NewInternalError("must not be called")}
	handler := NewVisitHandler(VisitUseCases{Get: get, Start: start}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/visits/vis_abc/start", nil)
	testutil.SetURLParam(c, "id", "vis_abc")
	testutil.SetAuthContext(c, "disp-1", constants.RoleDispatcher)

	handler.Start(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, start.called)
}

func TestVisitHandler_Update_TechnicianCannotReassign(t *testing.T) {
	update := &mockUpdateVisitUC{}
	handler := NewVisitHandler(VisitUseCases{Get: assignedVisit("tech-1"), Update: update}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPatch, "/visits/vis_abc", map[string]any{"technician_id": "tech-9"})
	testutil.SetURLParam(c, "id", "vis_abc")
	testutil.SetAuthContext(c, "tech-1", constants.RoleTechnician)

	handler.Update(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, update.cmd)
}

// =====================================================================
// Lifecycle
// =====================================================================

func TestVisitHandler_Create(t *testing.T) {
	create := &mockCreateVisitUC{result: &dto.VisitDTO{ID: "vis_new"}}
	handler := NewVisitHandler(VisitUseCases{Create: create}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/visits", map[string]any{
		"agreement_id":   "agr_abc",
		"technician_id":  "tech-1",
		"scheduled_date": "2026-05-12",
		"visit_type":     "annual",
	})

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ANNUAL", create.cmd.VisitType)
	assert.Equal(t, "2026-05-12", biztime.FormatDate(create.cmd.ScheduledDate))
	assert.Nil(t, create.cmd.ScheduledEndDate)
}

func TestVisitHandler_Complete_WithoutBody(t *testing.T) {
	complete := &mockCompleteVisitUC{result: &dto.VisitDTO{ID: "vis_abc", Status: "COMPLETED"}}
	handler := NewVisitHandler(VisitUseCases{Complete: complete}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/visits/vis_abc/complete", nil)
	testutil.SetURLParam(c, "id", "vis_abc")
	testutil.SetAuthContext(c, "disp-1", constants.RoleDispatcher)

	handler.Complete(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, complete.cmd.Notes)
}

func TestVisitHandler_Complete_MandatoryItemsOpen(t *testing.T) {
	complete := &mockCompleteVisitUC{err: errors.NewInvalidStateError("visit has incomplete mandatory checklist items", "2 open")}
	handler := NewVisitHandler(VisitUseCases{Complete: complete}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/visits/vis_abc/complete", map[string]any{"notes": "all done"})
	testutil.SetURLParam(c, "id", "vis_abc")
	testutil.SetAuthContext(c, "disp-1", constants.RoleAdmin)

	handler.Complete(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, complete.cmd.Notes)
	assert.Equal(t, "all done", *complete.cmd.Notes)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "2 open", resp.Error.Details)
}

func TestVisitHandler_AddPhoto_RequiresURL(t *testing.T) {
	photo := &mockAddPhotoUC{}
	handler := NewVisitHandler(VisitUseCases{AddPhoto: photo}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/visits/vis_abc/photos", map[string]any{"url": "not a url"})
	testutil.SetURLParam(c, "id", "vis_abc")

	handler.AddPhoto(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, photo.cmd)
}

func TestVisitHandler_ExportInvoice_Skipped(t *testing.T) {
	export := &mockExportInvoiceUC{result: &usecases.ExportInvoiceResult{Skipped: true}}
	handler := NewVisitHandler(VisitUseCases{ExportInvoice: export}, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodPost, "/visits/vis_abc/invoice", nil)
	testutil.SetURLParam(c, "id", "vis_abc")

	handler.ExportInvoice(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "Nothing to invoice", resp.Message)
}
