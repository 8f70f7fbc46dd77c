// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "forget_bot"

// Metrics methods are no-ops on a nil receiver so components can run without it.
type Metrics struct {
	registry *prometheus.Registry

	runsStarted  *prometheus.CounterVec
	runsFinished *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	stepRetries  *prometheus.CounterVec
	interactions *prometheus.CounterVec
	janitorPurge *prometheus.CounterVec
	reminders    *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		runsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "runs_started_total",
			Help:      "Workflow runs created, by kind.",
		}, []string{"kind"}),
		runsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "runs_finished_total",
			Help:      "Workflow runs that reached a terminal status.",
		}, []string{"kind", "status"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "step_duration_seconds",
			Help:      "Time spent executing one workflow step.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "phase", "outcome"}),
		stepRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "step_retries_total",
			Help:      "Workflow steps rescheduled after an error.",
		}, []string{"kind", "phase"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "interaction",
			Name:      "handled_total",
			Help:      "Invocations dispatched, by command and outcome.",
		}, []string{"command", "outcome"}),
		janitorPurge: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "janitor",
			Name:      "purged_rows_total",
			Help:      "Rows removed by the retention janitor.",
		}, []string{"table"}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminder",
			Name:      "events_total",
			Help:      "Reminder lifecycle events: scheduled, delivered, follow_up_sent, acknowledged, exhausted, cancelled, reaped.",
		}, []string{"event"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.runsStarted,
		m.runsFinished,
		m.stepDuration,
		m.stepRetries,
		m.interactions,
		m.janitorPurge,
		m.reminders,
	)
	return m
}

// Gatherer backs the /metrics handler.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) RunStarted(kind string) {
	if m == nil {
		return
	}
	m.runsStarted.WithLabelValues(kind).Inc()
}

func (m *Metrics) RunFinished(kind, status string) {
	if m == nil {
		return
	}
	m.runsFinished.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) ObserveStep(kind, phase, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.stepDuration.WithLabelValues(kind, phase, outcome).Observe(d.Seconds())
}

func (m *Metrics) StepRetried(kind, phase string) {
	if m == nil {
		return
	}
	m.stepRetries.WithLabelValues(kind, phase).Inc()
}

func (m *Metrics) InteractionHandled(command, outcome string) {
	if m == nil {
		return
	}
	m.interactions.WithLabelValues(command, outcome).Inc()
}

func (m *Metrics) Purged(table string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.janitorPurge.WithLabelValues(table).Add(float64(n))
}

// Reminder lifecycle events.
const (
	EventScheduled    = "scheduled"
	EventDelivered    = "delivered"
	EventFollowUpSent = "follow_up_sent"
	EventAcknowledged = "acknowledged"
	EventExhausted    = "exhausted"
	EventCancelled    = "cancelled"
	EventReaped       = "reaped"
)

func (m *Metrics) ReminderEvent(event string) {
	if m == nil {
		return
	}
	m.reminders.WithLabelValues(event).Inc()
}
