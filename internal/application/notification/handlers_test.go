package notification

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarops/internal/application/notification/usecases"
	"solarops/internal/domain/shared/events"
	"solarops/internal/domain/visit"
	"solarops/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (n nopLogger) With(...any) logger.Interface  { return n }
func (n nopLogger) Named(string) logger.Interface { return n }
func (nopLogger) Debugw(string, ...any)           {}
func (nopLogger) Infow(string, ...any)            {}
func (nopLogger) Warnw(string, ...any)            {}
func (nopLogger) Errorw(string, ...any)           {}

type fakeSendReport struct {
	cmds        []usecases.SendServiceReportCommand
	hadDeadline bool
	err         error
}

func (f *fakeSendReport) Execute(ctx context.Context, cmd usecases.SendServiceReportCommand) error {
	_, f.hadDeadline = ctx.Deadline()
	f.cmds = append(f.cmds, cmd)
	return f.err
}

func completedEvent() *visit.VisitCompletedEvent {
	return &visit.VisitCompletedEvent{
		BaseEvent:   events.NewBaseEvent(visit.EventVisitCompleted, "vis_1", time.Now()),
		AgreementID: "agr_1",
		VisitNumber: 1,
	}
}

func TestVisitCompletedHandler_SendsReportForVisit(t *testing.T) {
	send := &fakeSendReport{}
	h := NewVisitCompletedHandler(send, nopLogger{})

	require.NoError(t, h.Handle(completedEvent()))

	require.Len(t, send.cmds, 1)
	assert.Equal(t, "vis_1", send.cmds[0].VisitID)
	assert.True(t, send.hadDeadline)
}

func TestVisitCompletedHandler_SwallowsSendFailures(t *testing.T) {
	send := &fakeSendReport{err: stderrors.New("smtp down")}
	h := NewVisitCompletedHandler(send, nopLogger{})

	assert.NoError(t, h.Handle(completedEvent()))
	assert.Len(t, send.cmds, 1)
}

func TestVisitCompletedHandler_RejectsOtherEvents(t *testing.T) {
	send := &fakeSendReport{}
	h := NewVisitCompletedHandler(send, nopLogger{})

	err := h.Handle(events.NewBaseEvent(visit.EventVisitCancelled, "vis_1", time.Now()))

	assert.Error(t, err)
	assert.Empty(t, send.cmds)
}

func TestVisitCompletedHandler_ThroughDispatcher(t *testing.T) {
	done := make(chan string, 1)
	send := &fakeSendReport{}
	d := events.NewInMemoryEventDispatcher(4, nopLogger{})
	h := NewVisitCompletedHandler(send, nopLogger{})
	require.NoError(t, d.Subscribe(visit.EventVisitCompleted, events.HandlerFunc(func(e events.DomainEvent) error {
		err := h.Handle(e)
		done <- e.GetAggregateID()
		return err
	})))
	require.NoError(t, d.Start())
	defer func() { _ = d.Stop() }()

	require.NoError(t, d.Publish(completedEvent()))

	select {
	case id := <-done:
		assert.Equal(t, "vis_1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}
