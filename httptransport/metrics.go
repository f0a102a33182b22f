package httptransport

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by a Transport. A nil
// *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "swingby",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Requests sent to Swingby APIs by method and status class.",
			},
			[]string{"method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "swingby",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Round-trip latency of requests sent to Swingby APIs.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.latency} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(method string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, statusClass(statusCode)).Inc()
	m.latency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// statusClass maps 404 to "4xx"; 429 keeps its own label and 0 (no response)
// becomes "error".
func statusClass(code int) string {
	switch {
	case code == 0:
		return "error"
	case code == 429:
		return "429"
	default:
		return strconv.Itoa(code/100) + "xx"
	}
}
