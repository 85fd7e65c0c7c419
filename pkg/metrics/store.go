package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// StoreMetrics contadores de negocio del ledger, ventas y tiendas.
// Un *StoreMetrics nil es válido y no registra nada.
type StoreMetrics struct {
	adjustments *prometheus.CounterVec
	sales       prometheus.Counter
	revenue     prometheus.Counter
	shopOps     *prometheus.CounterVec
	alerts      *prometheus.CounterVec
}

// NewStoreMetrics registra las métricas en el registerer dado.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_adjustments_total",
		Help: "Stock adjustments by outcome.",
	}, []string{"outcome"})
	sales := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_recorded_total",
		Help: "Sales recorded.",
	})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_revenue_total",
		Help: "Accumulated revenue of recorded sales.",
	})
	shopOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_operations_total",
		Help: "Shop registry operations by kind and outcome.",
	}, []string{"op", "outcome"})
	alerts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "low_stock_alerts_total",
		Help: "Low stock alerts dispatched by channel.",
	}, []string{"channel"})
	reg.MustRegister(adjustments, sales, revenue, shopOps, alerts)
	return &StoreMetrics{
		adjustments: adjustments,
		sales:       sales,
		revenue:     revenue,
		shopOps:     shopOps,
		alerts:      alerts,
	}
}

// ObserveAdjustment cuenta un ajuste según su resultado.
func (m *StoreMetrics) ObserveAdjustment(err error) {
	if m == nil || m.adjustments == nil {
		return
	}
	m.adjustments.WithLabelValues(outcome(err)).Inc()
}

// ObserveSale suma una venta y su importe.
func (m *StoreMetrics) ObserveSale(total decimal.Decimal) {
	if m == nil || m.sales == nil {
		return
	}
	m.sales.Inc()
	f, _ := total.Float64()
	m.revenue.Add(f)
}

// ObserveShopOp cuenta una operación del registro de tiendas.
func (m *StoreMetrics) ObserveShopOp(op string, err error) {
	if m == nil || m.shopOps == nil {
		return
	}
	m.shopOps.WithLabelValues(normalizeLabel(op), outcome(err)).Inc()
}

// IncAlert cuenta una alerta enviada por canal.
func (m *StoreMetrics) IncAlert(channel string) {
	if m == nil || m.alerts == nil {
		return
	}
	m.alerts.WithLabelValues(normalizeLabel(channel)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func normalizeLabel(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
