package checklist

import (
	"time"

	"solarops/internal/domain/shared/events"
)

const (
	EventChecklistCompleted = "checklist.completed"
	EventTemplateRevised    = "checklist_template.revised"
)

type ChecklistCompletedEvent struct {
	events.BaseEvent
	VisitID     string    `json:"visit_id"`
	TemplateID  string    `json:"template_id"`
	FailedItems int       `json:"failed_items"`
	CompletedAt time.Time `json:"completed_at"`
}

type TemplateRevisedEvent struct {
	events.BaseEvent
	FamilyID          string `json:"family_id"`
	PreviousVersionID string `json:"previous_version_id"`
	Version           int    `json:"version"`
}
