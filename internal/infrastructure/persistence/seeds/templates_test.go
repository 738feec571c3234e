package seeds

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/domain/checklist"
	vo "solarops/internal/domain/checklist/valueobjects"
)

func TestBuiltinTemplates_AreValid(t *testing.T) {
	defs, err := NewBuiltinTemplateSource().Definitions()
	require.NoError(t, err)
	require.Len(t, defs, 3)

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
		tpl, err := checklist.NewTemplate(def)
		require.NoError(t, err, def.Name)
		assert.NotEmpty(t, tpl.MandatoryItemIDs(), def.Name)
	}
	assert.Equal(t, []string{"Battery routine service", "Hybrid repair visit", "Solar annual inspection"}, names)
}

func TestTemplateSource_ParsesItems(t *testing.T) {
	files := fstest.MapFS{
		"seed/b.yaml": {Data: []byte(`
name: Second
items:
  - category: General
    description: Anything
    input_type: TEXT
`)},
		"seed/a.yaml": {Data: []byte(`
name: First
system_type: SOLAR
visit_type: ROUTINE
items:
  - category: Electrical
    description: Voltage
    input_type: ELECTRICAL_MEASUREMENT
    min: 200
    max: 800
    mandatory: true
  - category: Panels
    description: Soiling
    input_type: CHOICE
    options: [Clean, Heavy]
`)},
		"seed/ignored.txt": {Data: []byte("not yaml")},
	}

	defs, err := NewTemplateSource(files, "seed").Definitions()
	require.NoError(t, err)
	require.Len(t, defs, 2)

	first := defs[0]
	assert.Equal(t, "First", first.Name)
	assert.Equal(t, "SOLAR", first.SystemType)
	require.Len(t, first.Items, 2)
	assert.Equal(t, vo.InputTypeElectricalMeasurement, first.Items[0].InputType)
	assert.Equal(t, 10, first.Items[0].SortOrder)
	assert.Equal(t, 20, first.Items[1].SortOrder)
	require.NotNil(t, first.Items[0].MinValue)
	assert.Equal(t, 200.0, *first.Items[0].MinValue)
	assert.True(t, first.Items[0].IsMandatory)
	assert.Equal(t, []string{"Clean", "Heavy"}, first.Items[1].Options)
	assert.Nil(t, first.Items[1].MinValue)

	assert.Equal(t, "Second", defs[1].Name)
}

func TestTemplateSource_RejectsUnknownInputType(t *testing.T) {
	files := fstest.MapFS{
		"seed/bad.yaml": {Data: []byte(`
name: Bad
items:
  - category: General
    description: Wind speed
    input_type: ANEMOMETER
`)},
	}

	_, err := NewTemplateSource(files, "seed").Definitions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
