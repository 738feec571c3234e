package visit

import (
	"time"

	"solarops/internal/domain/shared/events"
)

const (
	EventVisitCompleted = "visit.completed"
	EventVisitCancelled = "visit.cancelled"
)

type VisitCompletedEvent struct {
	events.BaseEvent
	AgreementID     string    `json:"agreement_id"`
	VisitNumber     int       `json:"visit_number"`
	TechnicianID    string    `json:"technician_id"`
	CompletedAt     time.Time `json:"completed_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

type VisitCancelledEvent struct {
	events.BaseEvent
	AgreementID string `json:"agreement_id"`
	Reason      string `json:"reason"`
}
