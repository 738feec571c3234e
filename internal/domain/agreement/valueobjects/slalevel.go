package valueobjects

import "fmt"

// SLALevel is the committed response time tier. It does not affect the price.
type SLALevel string

const (
	SLALevelStandard SLALevel = "STANDARD"
	SLALevelPriority SLALevel = "PRIORITY"
	SLALevelCritical SLALevel = "CRITICAL"
)

var slaResponseHours = map[SLALevel]int{
	SLALevelStandard: 72,
	SLALevelPriority: 24,
	SLALevelCritical: 4,
}

func (l SLALevel) String() string {
	return string(l)
}

func (l SLALevel) IsValid() bool {
	_, ok := slaResponseHours[l]
	return ok
}

// ResponseTimeHours is the maximum time from a fault report to a technician on site.
func (l SLALevel) ResponseTimeHours() int {
	return slaResponseHours[l]
}

func NewSLALevel(s string) (SLALevel, error) {
	l := SLALevel(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid SLA level: %s", s)
	}
	return l, nil
}
