package checklist

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "solarops/internal/domain/checklist/valueobjects"
)

func TestChecklist_CheckAnswers(t *testing.T) {
	c, tpl := newTestChecklist(t)
	soiling := itemByDescription(t, c, "Soiling level")
	voltage := itemByDescription(t, c, "DC string voltage")

	tests := []struct {
		name    string
		tpl     *Template
		updates []ItemUpdate
		wantErr bool
	}{
		{
			name:    "listed option",
			tpl:     tpl,
			updates: []ItemUpdate{{ItemID: soiling.ID(), Patch: ItemPatch{Value: strPtr("light")}}},
		},
		{
			name:    "option matched case-insensitively",
			tpl:     tpl,
			updates: []ItemUpdate{{ItemID: soiling.ID(), Patch: ItemPatch{Value: strPtr("Heavy")}}},
		},
		{
			name:    "value outside options",
			tpl:     tpl,
			updates: []ItemUpdate{{ItemID: soiling.ID(), Patch: ItemPatch{Value: strPtr("muddy")}}},
			wantErr: true,
		},
		{
			name: "one bad update rejects the batch",
			tpl:  tpl,
			updates: []ItemUpdate{
				{ItemID: voltage.ID(), Patch: ItemPatch{NumericValue: floatPtr(400)}},
				{ItemID: soiling.ID(), Patch: ItemPatch{Value: strPtr("muddy")}},
			},
			wantErr: true,
		},
		{
			name:    "reading out of range is accepted",
			tpl:     tpl,
			updates: []ItemUpdate{{ItemID: voltage.ID(), Patch: ItemPatch{NumericValue: floatPtr(1200)}}},
		},
		{
			name:    "status only",
			tpl:     tpl,
			updates: []ItemUpdate{{ItemID: soiling.ID(), Patch: ItemPatch{Status: outcomePtr(vo.OutcomePassed)}}},
		},
		{
			name:    "no template",
			tpl:     nil,
			updates: []ItemUpdate{{ItemID: soiling.ID(), Patch: ItemPatch{Value: strPtr("muddy")}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.CheckAnswers(tt.updates, tt.tpl)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidItemUpdate))
				assert.Contains(t, err.Error(), "clean, light, heavy")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestChecklist_CheckAnswers_UnknownItem(t *testing.T) {
	c, tpl := newTestChecklist(t)

	err := c.CheckAnswers([]ItemUpdate{{ItemID: "chi_missing", Patch: ItemPatch{Value: strPtr("x")}}}, tpl)
	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func photoDefinition() TemplateDefinition {
	def := inspectionDefinition()
	def.Items = append(def.Items, TemplateItemSpec{
		Category:      "Inverter",
		Description:   "Nameplate photographed",
		InputType:     vo.InputTypeYesNo,
		PhotoRequired: true,
	})
	return def
}

func TestChecklist_Deviations(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		patch  func(t *testing.T, c *Checklist) []ItemUpdate
		want   []DeviationKind
		detail string
	}{
		{
			name: "nothing answered",
			patch: func(t *testing.T, c *Checklist) []ItemUpdate {
				return nil
			},
		},
		{
			name: "reading below minimum",
			patch: func(t *testing.T, c *Checklist) []ItemUpdate {
				return []ItemUpdate{{ItemID: itemByDescription(t, c, "DC string voltage").ID(), Patch: ItemPatch{
					Status: outcomePtr(vo.OutcomePassed), NumericValue: floatPtr(-3),
				}}}
			},
			want:   []DeviationKind{DeviationOutOfRange},
			detail: "-3 below minimum 0",
		},
		{
			name: "reading above maximum",
			patch: func(t *testing.T, c *Checklist) []ItemUpdate {
				return []ItemUpdate{{ItemID: itemByDescription(t, c, "DC string voltage").ID(), Patch: ItemPatch{
					Status: outcomePtr(vo.OutcomePassed), NumericValue: floatPtr(1012.5),
				}}}
			},
			want:   []DeviationKind{DeviationOutOfRange},
			detail: "1012.5 above maximum 1000",
		},
		{
			name: "reading in range",
			patch: func(t *testing.T, c *Checklist) []ItemUpdate {
				return []ItemUpdate{{ItemID: itemByDescription(t, c, "DC string voltage").ID(), Patch: ItemPatch{
					Status: outcomePtr(vo.OutcomePassed), NumericValue: floatPtr(1000),
				}}}
			},
		},
		{
			name: "required photo missing",
			patch: func(t *testing.T, c *Checklist) []ItemUpdate {
				return []ItemUpdate{{ItemID: itemByDescription(t, c, "Nameplate photographed").ID(), Patch: ItemPatch{
					Status: outcomePtr(vo.OutcomePassed),
				}}}
			},
			want:   []DeviationKind{DeviationPhotoMissing},
			detail: "photo required",
		},
		{
			name: "required photo present",
			patch: func(t *testing.T, c *Checklist) []ItemUpdate {
				return []ItemUpdate{{ItemID: itemByDescription(t, c, "Nameplate photographed").ID(), Patch: ItemPatch{
					Status: outcomePtr(vo.OutcomePassed), PhotoURLs: []string{"https://cdn.example.com/p/1.jpg"},
				}}}
			},
		},
		{
			name: "not applicable items are skipped",
			patch: func(t *testing.T, c *Checklist) []ItemUpdate {
				return []ItemUpdate{
					{ItemID: itemByDescription(t, c, "Nameplate photographed").ID(), Patch: ItemPatch{
						Status: outcomePtr(vo.OutcomeNotApplicable),
					}},
					{ItemID: itemByDescription(t, c, "DC string voltage").ID(), Patch: ItemPatch{
						Status: outcomePtr(vo.OutcomeNotApplicable), NumericValue: floatPtr(2000),
					}},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := NewTemplate(photoDefinition())
			require.NoError(t, err)
			c, err := NewFromTemplate("vis_1", "tech_1", tpl)
			require.NoError(t, err)

			if updates := tt.patch(t, c); len(updates) > 0 {
				require.NoError(t, c.UpdateItems(updates, now))
			}

			got := c.Deviations(tpl)
			require.Len(t, got, len(tt.want))
			for i, kind := range tt.want {
				assert.Equal(t, kind, got[i].Kind)
				assert.Equal(t, tt.detail, got[i].Detail)
				assert.NotEmpty(t, got[i].ItemID)
			}
		})
	}
}

func TestChecklist_Deviations_NilTemplate(t *testing.T) {
	c, _ := newTestChecklist(t)
	assert.Nil(t, c.Deviations(nil))
}
