// Package metrics records client-side request telemetry with Prometheus.
package metrics

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shop_client"

// Observer implements clients.RequestObserver.
type Observer struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	authenticated prometheus.Gauge
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// to expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)
	return &Observer{
		// Labels:
		//   - method: HTTP method
		//   - route: request path with ids collapsed to ":id"
		//   - outcome: success, error, network or cancelled
		//   - status: HTTP status, "0" when no response arrived
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of API requests issued by the client.",
			},
			[]string{"method", "route", "outcome", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Latency of API requests from build to normalized result.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		authenticated: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "session_authenticated",
				Help:      "1 while the admin session is authenticated, 0 otherwise.",
			},
		),
	}
}

func (o *Observer) ObserveRequest(method, path, outcome string, status int, elapsed time.Duration) {
	route := Route(path)
	o.requests.WithLabelValues(method, route, outcome, strconv.Itoa(status)).Inc()
	o.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (o *Observer) SetAuthenticated(authenticated bool) {
	if authenticated {
		o.authenticated.Set(1)
		return
	}
	o.authenticated.Set(0)
}

// Route collapses path segments that look like identifiers so label
// cardinality stays bounded: "/admin/orders/o-42/status" becomes
// "/admin/orders/:id/status".
func Route(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if i > 1 && !isWord(s) {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLower(r) && r != '-' {
			return false
		}
	}
	return true
}
