package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PoolMetrics tracks operation counts and the headline accounting gauges for
// the staking pool engine.
type PoolMetrics struct {
	operations  *prometheus.CounterVec
	pooledValue prometheus.Gauge
	supply      prometheus.Gauge
	rate        prometheus.Gauge
}

var (
	poolMetricsOnce sync.Once
	poolRegistry    *PoolMetrics
)

// Pool returns the lazily-initialised pool metrics registry.
func Pool() *PoolMetrics {
	poolMetricsOnce.Do(func() {
		poolRegistry = &PoolMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "stakepool",
				Name:      "operations_total",
				Help:      "Total pool operations segmented by method and outcome.",
			}, []string{"method", "outcome"}),
			pooledValue: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "stakepool",
				Name:      "pooled_value",
				Help:      "Total pooled base-asset value including accrued yield.",
			}),
			supply: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "stakepool",
				Name:      "receipt_supply",
				Help:      "Outstanding receipt-token supply.",
			}),
			rate: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "stakepool",
				Name:      "exchange_rate",
				Help:      "Base-asset value of one receipt token.",
			}),
		}
		prometheus.MustRegister(
			poolRegistry.operations,
			poolRegistry.pooledValue,
			poolRegistry.supply,
			poolRegistry.rate,
		)
	})
	return poolRegistry
}

// ObserveOperation records one completed operation with its outcome label.
func (m *PoolMetrics) ObserveOperation(method, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(method, outcome).Inc()
}

// SetAccounting updates the headline gauges after a state mutation.
func (m *PoolMetrics) SetAccounting(pooled, supply, rate float64) {
	if m == nil {
		return
	}
	m.pooledValue.Set(pooled)
	m.supply.Set(supply)
	m.rate.Set(rate)
}
