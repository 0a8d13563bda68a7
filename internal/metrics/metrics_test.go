package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	tests := map[string]string{
		"/admin/products":                  "/admin/products",
		"/admin/products/42":               "/admin/products/:id",
		"/admin/orders/o-1f3a/status":      "/admin/orders/:id/status",
		"/admin/categories/reorder":        "/admin/categories/reorder",
		"/admin/flash-sales/7/products/p9": "/admin/flash-sales/:id/products/:id",
		"/upload/images":                   "/upload/images",
		"admin/auth/me":                    "/admin/auth/me",
	}
	for in, want := range tests {
		assert.Equal(t, want, Route(in), in)
	}
}

func TestObserver_CountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := New(reg)

	o.ObserveRequest("GET", "/admin/products/1", "success", 200, 20*time.Millisecond)
	o.ObserveRequest("GET", "/admin/products/2", "success", 200, 30*time.Millisecond)
	o.ObserveRequest("GET", "/admin/orders", "network", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.requests.WithLabelValues("GET", "/admin/products/:id", "success", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.requests.WithLabelValues("GET", "/admin/orders", "network", "0")))
	assert.Equal(t, 2, testutil.CollectAndCount(o.duration))
}

func TestObserver_SessionGauge(t *testing.T) {
	o := New(prometheus.NewRegistry())

	o.SetAuthenticated(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(o.authenticated))
	o.SetAuthenticated(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(o.authenticated))
}
