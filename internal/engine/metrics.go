package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transition outcome labels.
const (
	outcomeStart   = "start"
	outcomeAdvance = "advance"
	outcomeRepeat  = "repeat"
	outcomeHome    = "home"
)

// Metrics holds the driver's Prometheus instruments. A nil *Metrics is a
// valid no-op receiver so tests and the local REPL can skip registration.
type Metrics struct {
	transitions  *prometheus.CounterVec
	sendFailures prometheus.Counter
}

// NewMetrics registers the driver metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kompis_transitions_total",
			Help: "Conversation transitions by outcome.",
		}, []string{"outcome"}),
		sendFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "kompis_send_failures_total",
			Help: "Outbound deliveries that failed and aborted a transition.",
		}),
	}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) sendFailed() {
	if m == nil {
		return
	}
	m.sendFailures.Inc()
}
