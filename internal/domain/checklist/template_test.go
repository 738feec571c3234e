package checklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "solarops/internal/domain/checklist/valueobjects"
)

func TestNewTemplate(t *testing.T) {
	tpl, err := NewTemplate(inspectionDefinition())
	require.NoError(t, err)

	assert.Equal(t, 1, tpl.Version())
	assert.True(t, tpl.IsActive())
	assert.Equal(t, tpl.ID(), tpl.FamilyID())
	require.Len(t, tpl.Items(), 5)
	for i, item := range tpl.Items() {
		assert.Equal(t, i+1, item.SortOrder())
		assert.Equal(t, tpl.ID(), item.TemplateID())
	}
}

func TestNewTemplate_OrdersBySortOrder(t *testing.T) {
	tpl, err := NewTemplate(TemplateDefinition{
		Name: "Battery check",
		Items: []TemplateItemSpec{
			{Category: "Cells", SortOrder: 20, Description: "Cell temperature", InputType: vo.InputTypeTemperature},
			{Category: "Cells", SortOrder: 10, Description: "State of charge", InputType: vo.InputTypeNumeric},
		},
	})
	require.NoError(t, err)

	items := tpl.Items()
	assert.Equal(t, "State of charge", items[0].Description())
	assert.Equal(t, "Cell temperature", items[1].Description())
}

func TestNewTemplate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TemplateDefinition)
	}{
		{"missing name", func(d *TemplateDefinition) { d.Name = " " }},
		{"unknown system type", func(d *TemplateDefinition) { d.SystemType = "WIND" }},
		{"unknown visit type", func(d *TemplateDefinition) { d.VisitType = "AUDIT" }},
		{"no items", func(d *TemplateDefinition) { d.Items = nil }},
		{"choice without options", func(d *TemplateDefinition) { d.Items[1].Options = nil }},
		{"min above max", func(d *TemplateDefinition) { d.Items[3].MinValue = floatPtr(2000) }},
		{"invalid input type", func(d *TemplateDefinition) { d.Items[0].InputType = "SLIDER" }},
		{"missing category", func(d *TemplateDefinition) { d.Items[0].Category = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := inspectionDefinition()
			tt.mutate(&def)
			_, err := NewTemplate(def)
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

func TestTemplate_Revise(t *testing.T) {
	v1, err := NewTemplate(inspectionDefinition())
	require.NoError(t, err)
	oldItemIDs := make([]string, 0)
	for _, item := range v1.Items() {
		oldItemIDs = append(oldItemIDs, item.ID())
	}

	def := inspectionDefinition()
	def.Items = append(def.Items, TemplateItemSpec{Category: "Safety", Description: "Labels legible", InputType: vo.InputTypeYesNo})
	now := time.Now().UTC()

	v2, err := v1.Revise(def, now)
	require.NoError(t, err)

	assert.False(t, v1.IsActive())
	assert.True(t, v2.IsActive())
	assert.Equal(t, 2, v2.Version())
	assert.Equal(t, v1.FamilyID(), v2.FamilyID())
	assert.NotEqual(t, v1.ID(), v2.ID())
	assert.Len(t, v1.Items(), 5, "the old version keeps its items")
	assert.Len(t, v2.Items(), 6)
	for i, item := range v1.Items() {
		assert.Equal(t, oldItemIDs[i], item.ID())
	}

	evts := v2.GetEvents()
	require.Len(t, evts, 1)
	revised := evts[0].(*TemplateRevisedEvent)
	assert.Equal(t, v1.ID(), revised.PreviousVersionID)

	_, err = v1.Revise(def, now)
	assert.ErrorIs(t, err, ErrTemplateSuperseded)
}

func TestTemplate_Revise_DoesNotAlterExistingChecklists(t *testing.T) {
	v1, err := NewTemplate(inspectionDefinition())
	require.NoError(t, err)
	c, err := NewFromTemplate("vis_1", "tech_1", v1)
	require.NoError(t, err)

	def := inspectionDefinition()
	def.Items[0].Description = "Thermal imaging of modules"
	_, err = v1.Revise(def, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Visual inspection of modules", c.Items()[0].Description())
	assert.Equal(t, v1.ID(), c.TemplateID())
}
