package valueobjects

import "fmt"

type ChecklistStatus string

const (
	ChecklistStatusPending    ChecklistStatus = "PENDING"
	ChecklistStatusInProgress ChecklistStatus = "IN_PROGRESS"
	ChecklistStatusCompleted  ChecklistStatus = "COMPLETED"
)

var checklistStatusTransitions = map[ChecklistStatus][]ChecklistStatus{
	ChecklistStatusPending: {
		ChecklistStatusInProgress,
		ChecklistStatusCompleted,
	},
	ChecklistStatusInProgress: {
		ChecklistStatusCompleted,
	},
	ChecklistStatusCompleted: {},
}

func (s ChecklistStatus) String() string { return string(s) }

func (s ChecklistStatus) IsValid() bool {
	_, ok := checklistStatusTransitions[s]
	return ok
}

func (s ChecklistStatus) CanTransitionTo(next ChecklistStatus) bool {
	for _, allowed := range checklistStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ChecklistStatus) IsCompleted() bool { return s == ChecklistStatusCompleted }

func NewChecklistStatus(s string) (ChecklistStatus, error) {
	status := ChecklistStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid checklist status: %s", s)
	}
	return status, nil
}
