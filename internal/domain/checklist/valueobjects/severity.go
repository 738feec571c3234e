package valueobjects

import (
	"fmt"
	"strings"
)

// Severity grades a failed inspection point.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeveritySerious  Severity = "SERIOUS"
	SeverityModerate Severity = "MODERATE"
	SeverityMinor    Severity = "MINOR"
	SeverityInfo     Severity = "INFO"
)

// Severities lists the buckets from most to least severe.
var Severities = []Severity{
	SeverityCritical,
	SeveritySerious,
	SeverityModerate,
	SeverityMinor,
	SeverityInfo,
}

func (s Severity) String() string { return string(s) }

func (s Severity) IsValid() bool {
	return s.Rank() >= 0
}

// Rank is 0 for the most severe level and -1 for unknown values.
func (s Severity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return i
		}
	}
	return -1
}

func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity: %q", s)
	}
	return sev, nil
}
