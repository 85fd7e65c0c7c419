package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStoreMetrics_Contadores(t *testing.T) {
	m := NewStoreMetrics(prometheus.NewRegistry())

	m.ObserveAdjustment(nil)
	m.ObserveAdjustment(nil)
	m.ObserveAdjustment(errors.New("x"))
	m.ObserveSale(decimal.RequireFromString("12.50"))
	m.ObserveShopOp("create", nil)
	m.IncAlert("email")
	m.IncAlert("")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.adjustments.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adjustments.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sales))
	assert.Equal(t, 12.5, testutil.ToFloat64(m.revenue))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shopOps.WithLabelValues("create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alerts.WithLabelValues("unknown")))
}

func TestStoreMetrics_NilNoHaceNada(t *testing.T) {
	var m *StoreMetrics
	assert.NotPanics(t, func() {
		m.ObserveAdjustment(nil)
		m.ObserveSale(decimal.NewFromInt(1))
		m.ObserveShopOp("delete", nil)
		m.IncAlert("sms")
	})
	assert.NotPanics(t, func() { NewStoreMetrics(nil).ObserveSale(decimal.NewFromInt(1)) })
}

func TestHTTPMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/products", 200, 15*time.Millisecond)
	m.Observe("GET", "/api/products", 200, 5*time.Millisecond)
	m.Observe("POST", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/products", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "unknown", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))

	var nilMetrics *HTTPMetrics
	assert.NotPanics(t, func() { nilMetrics.Observe("GET", "/", 200, time.Millisecond) })
}
