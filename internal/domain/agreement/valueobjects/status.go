package valueobjects

import "fmt"

type AgreementStatus string

const (
	AgreementStatusDraft           AgreementStatus = "DRAFT"
	AgreementStatusPendingApproval AgreementStatus = "PENDING_APPROVAL"
	AgreementStatusActive          AgreementStatus = "ACTIVE"
	AgreementStatusSuspended       AgreementStatus = "SUSPENDED"
	AgreementStatusExpired         AgreementStatus = "EXPIRED"
	AgreementStatusCancelled       AgreementStatus = "CANCELLED"
)

var validAgreementStatuses = map[AgreementStatus]bool{
	AgreementStatusDraft:           true,
	AgreementStatusPendingApproval: true,
	AgreementStatusActive:          true,
	AgreementStatusSuspended:       true,
	AgreementStatusExpired:         true,
	AgreementStatusCancelled:       true,
}

// Cancellation is legal from every status except CANCELLED, EXPIRED included.
var agreementStatusTransitions = map[AgreementStatus][]AgreementStatus{
	AgreementStatusDraft: {
		AgreementStatusPendingApproval,
		AgreementStatusActive,
		AgreementStatusCancelled,
	},
	AgreementStatusPendingApproval: {
		AgreementStatusActive,
		AgreementStatusCancelled,
	},
	AgreementStatusActive: {
		AgreementStatusSuspended,
		AgreementStatusExpired,
		AgreementStatusCancelled,
	},
	AgreementStatusSuspended: {
		AgreementStatusActive,
		AgreementStatusExpired,
		AgreementStatusCancelled,
	},
	AgreementStatusExpired: {
		AgreementStatusCancelled,
	},
	AgreementStatusCancelled: {},
}

func (s AgreementStatus) String() string {
	return string(s)
}

func (s AgreementStatus) IsValid() bool {
	return validAgreementStatuses[s]
}

func (s AgreementStatus) CanTransitionTo(next AgreementStatus) bool {
	for _, allowed := range agreementStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the agreement can no longer be edited or scheduled.
func (s AgreementStatus) IsTerminal() bool {
	return s == AgreementStatusCancelled || s == AgreementStatusExpired
}

func (s AgreementStatus) IsActive() bool {
	return s == AgreementStatusActive
}

func NewAgreementStatus(s string) (AgreementStatus, error) {
	status := AgreementStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid agreement status: %s", s)
	}
	return status, nil
}
