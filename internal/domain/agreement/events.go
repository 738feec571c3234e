package agreement

import (
	"time"

	"solarops/internal/domain/shared/events"
)

const (
	EventAgreementCreated   = "agreement.created"
	EventAgreementActivated = "agreement.activated"
	EventAgreementCancelled = "agreement.cancelled"
	EventAgreementExpired   = "agreement.expired"
	EventAgreementRenewed   = "agreement.renewed"
)

type AgreementCreatedEvent struct {
	events.BaseEvent
	AgreementNumber string `json:"agreement_number"`
	InstallationID  string `json:"installation_id"`
}

type AgreementActivatedEvent struct {
	events.BaseEvent
	AgreementNumber string    `json:"agreement_number"`
	SignedAt        time.Time `json:"signed_at"`
}

type AgreementCancelledEvent struct {
	events.BaseEvent
	AgreementNumber string `json:"agreement_number"`
	Reason          string `json:"reason"`
}

// AgreementLapsedEvent covers both expiry and automatic renewal.
type AgreementLapsedEvent struct {
	events.BaseEvent
	AgreementNumber string     `json:"agreement_number"`
	NewEndDate      *time.Time `json:"new_end_date,omitempty"`
}
