package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Mock counts and times requests answered by the mock API.
type Mock struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMock creates the collectors and registers them with reg.
func NewMock(reg prometheus.Registerer) (*Mock, error) {
	m := &Mock{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "classattend",
			Subsystem: "mock",
			Name:      "requests_total",
			Help:      "Requests answered by the mock API, by route and status.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "classattend",
			Subsystem: "mock",
			Name:      "request_duration_seconds",
			Help:      "Time from submission to response, including the simulated delay.",
			Buckets:   []float64{.05, .1, .25, .3, .5, 1, 2.5},
		}, []string{"route"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one answered request. A nil Mock is a no-op.
func (m *Mock) Observe(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}
