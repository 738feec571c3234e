// Package metrics exposes domain counters and HTTP latency to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solarops"

// Recorder owns a private registry instead of the global default one.
type Recorder struct {
	registry *prometheus.Registry

	agreementsCreated           prometheus.Counter
	visitsCompleted             prometheus.Counter
	visitCompletionRejected     prometheus.Counter
	checklistsCompleted         prometheus.Counter
	checklistCompletionRejected prometheus.Counter
	requestDuration             *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		agreementsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agreements_created_total",
			Help:      "Service agreements created.",
		}),
		visitsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_completed_total",
			Help:      "Service visits completed.",
		}),
		visitCompletionRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visit_completion_rejected_total",
			Help:      "Visit completions rejected because checklists were open.",
		}),
		checklistsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checklists_completed_total",
			Help:      "Checklists completed.",
		}),
		checklistCompletionRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checklist_completion_rejected_total",
			Help:      "Checklist completions rejected because mandatory items were pending.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (r *Recorder) AgreementCreated()            { r.agreementsCreated.Inc() }
func (r *Recorder) VisitCompleted()              { r.visitsCompleted.Inc() }
func (r *Recorder) VisitCompletionRejected()     { r.visitCompletionRejected.Inc() }
func (r *Recorder) ChecklistCompleted()          { r.checklistsCompleted.Inc() }
func (r *Recorder) ChecklistCompletionRejected() { r.checklistCompletionRejected.Inc() }

// ObserveRequest records one HTTP request. route is the matched route
// template, never the raw path, to keep label cardinality bounded.
func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
