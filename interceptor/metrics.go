package interceptor

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/adamwoolhether/restpipe/client"
)

// Metrics is a response interceptor counting responses by method and
// status code. Transport failures never reach it.
type Metrics struct {
	responses *prometheus.CounterVec
	bytes     *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_responses_total",
				Help:      "Total number of HTTP responses received",
			},
			[]string{"method", "code"},
		),
		bytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "client_response_size_bytes",
				Help:      "Size of buffered HTTP response bodies in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method"},
		),
	}

	for _, c := range []prometheus.Collector{m.responses, m.bytes} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) InterceptResponse(rc *client.RequestContext, resp *client.Response) {
	m.responses.WithLabelValues(rc.Method, strconv.Itoa(resp.StatusCode)).Inc()
	m.bytes.WithLabelValues(rc.Method).Observe(float64(len(resp.Body)))
}
