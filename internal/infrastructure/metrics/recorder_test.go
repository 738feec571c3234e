package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_DomainCounters(t *testing.T) {
	r := NewRecorder()

	r.AgreementCreated()
	r.AgreementCreated()
	r.VisitCompleted()
	r.VisitCompletionRejected()
	r.ChecklistCompleted()
	r.ChecklistCompletionRejected()
	r.ChecklistCompletionRejected()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.agreementsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.visitsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.visitCompletionRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.checklistsCompleted))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.checklistCompletionRejected))
}

func TestRecorder_ObserveRequest(t *testing.T) {
	r := NewRecorder()

	r.ObserveRequest(http.MethodGet, "/api/v1/visits/:id", http.StatusOK, 30*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(r.requestDuration))
}

func TestRecorder_HandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.VisitCompleted()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "solarops_visits_completed_total 1")
	assert.Contains(t, string(body), "solarops_agreements_created_total 0")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRecorders_AreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.AgreementCreated()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.agreementsCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.agreementsCreated))
}
