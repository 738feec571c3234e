package valueobjects

import (
	"fmt"
	"strings"
)

// ItemOutcome is the canonical answer state of a checklist item.
type ItemOutcome string

const (
	OutcomePending       ItemOutcome = "PENDING"
	OutcomePassed        ItemOutcome = "PASSED"
	OutcomeFailed        ItemOutcome = "FAILED"
	OutcomeNotApplicable ItemOutcome = "NOT_APPLICABLE"
)

// outcomeAliases maps every spelling accepted from clients and stored data to
// its canonical outcome. Nothing past ParseItemOutcome compares raw strings.
var outcomeAliases = map[string]ItemOutcome{
	"":               OutcomePending,
	"PENDING":        OutcomePending,
	"OK":             OutcomePassed,
	"PASS":           OutcomePassed,
	"PASSED":         OutcomePassed,
	"NOT_OK":         OutcomeFailed,
	"NOK":            OutcomeFailed,
	"FAIL":           OutcomeFailed,
	"FAILED":         OutcomeFailed,
	"NA":             OutcomeNotApplicable,
	"N/A":            OutcomeNotApplicable,
	"NOT_APPLICABLE": OutcomeNotApplicable,
}

// ParseItemOutcome normalizes an external status string.
func ParseItemOutcome(s string) (ItemOutcome, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if o, ok := outcomeAliases[key]; ok {
		return o, nil
	}
	return "", fmt.Errorf("invalid item status: %q", s)
}

func (o ItemOutcome) String() string { return string(o) }

func (o ItemOutcome) IsValid() bool {
	switch o {
	case OutcomePending, OutcomePassed, OutcomeFailed, OutcomeNotApplicable:
		return true
	}
	return false
}

// IsAnswered reports whether the item has left PENDING.
func (o ItemOutcome) IsAnswered() bool { return o != OutcomePending }

func (o ItemOutcome) IsFailed() bool { return o == OutcomeFailed }
