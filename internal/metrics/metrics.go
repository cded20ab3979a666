// Package metrics exposes prometheus counters for lifecycle operations.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder counts lifecycle events.
type Recorder struct {
	transitions *prometheus.CounterVec
	assignments *prometheus.CounterVec
	comments    *prometheus.CounterVec
}

var defaultRecorder = sync.OnceValue(func() *Recorder {
	return NewRecorder(prometheus.DefaultRegisterer)
})

// Default returns the process-wide recorder registered on the default registry.
func Default() *Recorder {
	return defaultRecorder()
}

// NewRecorder registers the lifecycle counters on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "participium",
			Subsystem: "lifecycle",
			Name:      "transitions_total",
			Help:      "Report status transitions by source, target and result.",
		}, []string{"from", "to", "result"}),
		assignments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "participium",
			Subsystem: "lifecycle",
			Name:      "assignments_total",
			Help:      "Officer and maintainer assignments by result.",
		}, []string{"kind", "result"}),
		comments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "participium",
			Subsystem: "lifecycle",
			Name:      "comments_total",
			Help:      "Comment writes by actor type and result.",
		}, []string{"actor", "result"}),
	}
}

// Transition records a status change attempt.
func (r *Recorder) Transition(from, to string, err error) {
	r.transitions.WithLabelValues(from, to, result(err)).Inc()
}

// Assignment records an officer ("officer") or maintainer ("maintainer") assignment attempt.
func (r *Recorder) Assignment(kind string, err error) {
	r.assignments.WithLabelValues(kind, result(err)).Inc()
}

// Comment records a comment write attempt.
func (r *Recorder) Comment(actor string, err error) {
	r.comments.WithLabelValues(actor, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
