// Package observability exports machine activity as Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/michalsustr/automata"
)

// Collector counts fired transitions and failures per machine. Plug its
// Hooks into automata.WithHooks; one Collector may observe any number of
// machine instances.
type Collector struct {
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewCollector registers the metrics on reg and returns the collector.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "automata_transitions_total",
			Help: "Fired transitions, by machine and edge.",
		}, []string{"machine", "from", "to"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "automata_failures_total",
			Help: "Machines that entered the Failure state, by machine and last state.",
		}, []string{"machine", "from"}),
	}
}

// Hooks returns the hook set feeding this collector.
func (c *Collector) Hooks() automata.Hooks {
	return automata.Hooks{
		OnTransition: func(ev automata.TransitionEvent) {
			c.transitions.WithLabelValues(ev.Machine, ev.From, ev.To).Inc()
		},
		OnFailure: func(ev automata.TransitionEvent) {
			c.failures.WithLabelValues(ev.Machine, ev.From).Inc()
		},
	}
}
