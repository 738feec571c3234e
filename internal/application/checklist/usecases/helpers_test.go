package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"solarops/internal/domain/visit"
	visitvo "solarops/internal/domain/visit/valueobjects"
)

const testVisitID = "vis_checklists"

func strPtr(s string) *string {
	return &s
}

func inspectionInput() TemplateInput {
	return TemplateInput{
		Name:       "Annual PV inspection",
		SystemType: "SOLAR",
		VisitType:  "INSPECTION",
		Items: []TemplateItemInput{
			{Category: "Panels", Description: "Panels free of cracks", IsMandatory: true},
			{Category: "Panels", Description: "Mounting bolts torqued", IsMandatory: true},
			{Category: "Inverter", Description: "Inverter DC voltage", InputType: "ELECTRICAL_MEASUREMENT", IsMandatory: true},
			{Category: "Inverter", Description: "Fan noise", InputType: "TEXT"},
		},
	}
}

// ruledInput has one item per answer rule: a required photo, a choice list
// and a bounded reading.
func ruledInput() TemplateInput {
	minV, maxV := 200.0, 1000.0
	return TemplateInput{
		Name:       "Inverter service",
		SystemType: "SOLAR",
		VisitType:  "ROUTINE",
		Items: []TemplateItemInput{
			{Category: "Inverter", Description: "Nameplate photographed", PhotoRequired: true},
			{Category: "Panels", Description: "Soiling level", InputType: "CHOICE", Options: []string{"clean", "light", "heavy"}},
			{Category: "Inverter", Description: "DC string voltage", InputType: "ELECTRICAL_MEASUREMENT", MinValue: &minV, MaxValue: &maxV},
		},
	}
}

func existingVisit(t *testing.T, status visitvo.VisitStatus) *visit.Visit {
	t.Helper()
	scheduled := time.Now().UTC().Truncate(time.Hour)
	v, err := visit.ReconstructVisit(
		testVisitID, "agr_1", "tech_7",
		1, scheduled, nil,
		status, visitvo.VisitTypeInspection,
		nil, nil, nil,
		"", nil,
		nil, nil, nil, nil,
		1, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return v
}

// fixture wires template creation and checklist creation against shared repos.
type fixture struct {
	templates  *memTemplateRepository
	checklists *memChecklistRepository
	visits     *mockVisitRepository
	publisher  *mockEventPublisher
	metrics    *mockMetrics
	tx         *mockTransactor
}

func newFixture(t *testing.T, visitStatus visitvo.VisitStatus) *fixture {
	t.Helper()
	return &fixture{
		templates:  newMemTemplateRepository(),
		checklists: newMemChecklistRepository(),
		visits:     &mockVisitRepository{stored: existingVisit(t, visitStatus)},
		publisher:  &mockEventPublisher{},
		metrics:    &mockMetrics{},
		tx:         &mockTransactor{},
	}
}

func (f *fixture) createTemplate(t *testing.T, in TemplateInput) string {
	t.Helper()
	tpl, err := NewCreateTemplateUseCase(f.templates, &mockLogger{}).Execute(context.Background(), CreateTemplateCommand{TemplateInput: in})
	require.NoError(t, err)
	return tpl.ID
}

func (f *fixture) createChecklist(t *testing.T, templateID string) string {
	t.Helper()
	uc := NewCreateChecklistUseCase(f.checklists, f.templates, f.visits, f.tx, &mockLogger{})
	c, err := uc.Execute(context.Background(), CreateChecklistCommand{VisitID: testVisitID, TemplateID: templateID})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) updateItems() *UpdateItemsUseCase {
	return NewUpdateItemsUseCase(f.checklists, f.templates, f.tx, &mockLogger{})
}

func (f *fixture) complete() *CompleteChecklistUseCase {
	return NewCompleteChecklistUseCase(f.checklists, f.templates, f.tx, f.publisher, f.metrics, &mockLogger{})
}

// itemIDs returns the checklist's item IDs in template order.
func (f *fixture) itemIDs(t *testing.T, checklistID string) []string {
	t.Helper()
	c, err := f.checklists.GetByID(context.Background(), checklistID)
	require.NoError(t, err)
	var ids []string
	for _, item := range c.Items() {
		ids = append(ids, item.ID())
	}
	return ids
}
