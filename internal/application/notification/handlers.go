// Package notification reacts to domain events with outbound messages.
package notification

import (
	"context"
	"fmt"
	"time"

	"solarops/internal/application/notification/usecases"
	"solarops/internal/domain/shared/events"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/logger"
)

const reportTimeout = 30 * time.Second

// VisitCompletedHandler sends the service report when a visit completes.
// Failures are logged and never reach the publisher.
type VisitCompletedHandler struct {
	sendReport usecases.SendServiceReportExecutor
	timeout    time.Duration
	logger     logger.Interface
}

func NewVisitCompletedHandler(sendReport usecases.SendServiceReportExecutor, logger logger.Interface) *VisitCompletedHandler {
	return &VisitCompletedHandler{
		sendReport: sendReport,
		timeout:    reportTimeout,
		logger:     logger,
	}
}

func (h *VisitCompletedHandler) Handle(event events.DomainEvent) error {
	if event.GetEventType() != visit.EventVisitCompleted {
		return fmt.Errorf("unexpected event type %q", event.GetEventType())
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.sendReport.Execute(ctx, usecases.SendServiceReportCommand{VisitID: event.GetAggregateID()}); err != nil {
		h.logger.Warnw("service report not sent", "visit_id", event.GetAggregateID(), "error", err)
	}
	return nil
}
