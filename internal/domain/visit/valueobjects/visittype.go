package valueobjects

import (
	"fmt"
	"time"
)

type VisitType string

const (
	VisitTypeRoutine      VisitType = "ROUTINE"
	VisitTypeInspection   VisitType = "INSPECTION"
	VisitTypeRepair       VisitType = "REPAIR"
	VisitTypeInstallation VisitType = "INSTALLATION"
	VisitTypeEmergency    VisitType = "EMERGENCY"
)

var expectedVisitDurations = map[VisitType]time.Duration{
	VisitTypeRoutine:      2 * time.Hour,
	VisitTypeInspection:   90 * time.Minute,
	VisitTypeRepair:       3 * time.Hour,
	VisitTypeInstallation: 6 * time.Hour,
	VisitTypeEmergency:    2 * time.Hour,
}

func (t VisitType) String() string {
	return string(t)
}

func (t VisitType) IsValid() bool {
	_, ok := expectedVisitDurations[t]
	return ok
}

// ExpectedDuration is used to fill in the scheduled end when none is given.
func (t VisitType) ExpectedDuration() time.Duration {
	return expectedVisitDurations[t]
}

func NewVisitType(s string) (VisitType, error) {
	t := VisitType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid visit type: %s", s)
	}
	return t, nil
}
