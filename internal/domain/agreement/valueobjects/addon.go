package valueobjects

import "fmt"

type AddonCategory string

const (
	AddonCategoryMaintenance AddonCategory = "MAINTENANCE"
	AddonCategoryMonitoring  AddonCategory = "MONITORING"
	AddonCategoryPriority    AddonCategory = "PRIORITY"
	AddonCategoryEquipment   AddonCategory = "EQUIPMENT"
)

var validAddonCategories = map[AddonCategory]bool{
	AddonCategoryMaintenance: true,
	AddonCategoryMonitoring:  true,
	AddonCategoryPriority:    true,
	AddonCategoryEquipment:   true,
}

func (c AddonCategory) String() string { return string(c) }

func (c AddonCategory) IsValid() bool { return validAddonCategories[c] }

func NewAddonCategory(s string) (AddonCategory, error) {
	c := AddonCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid add-on category: %s", s)
	}
	return c, nil
}

// AddonFrequency is how often an add-on is billed.
type AddonFrequency string

const (
	AddonFrequencyOneTime  AddonFrequency = "ONE_TIME"
	AddonFrequencyPerVisit AddonFrequency = "PER_VISIT"
	AddonFrequencyMonthly  AddonFrequency = "MONTHLY"
	AddonFrequencyAnnual   AddonFrequency = "ANNUAL"
)

var validAddonFrequencies = map[AddonFrequency]bool{
	AddonFrequencyOneTime:  true,
	AddonFrequencyPerVisit: true,
	AddonFrequencyMonthly:  true,
	AddonFrequencyAnnual:   true,
}

func (f AddonFrequency) String() string { return string(f) }

func (f AddonFrequency) IsValid() bool { return validAddonFrequencies[f] }

// IsAnnual reports whether the add-on is part of the agreement's yearly price.
func (f AddonFrequency) IsAnnual() bool { return f == AddonFrequencyAnnual }

func NewAddonFrequency(s string) (AddonFrequency, error) {
	f := AddonFrequency(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid add-on frequency: %s", s)
	}
	return f, nil
}
