package metrics

import (
	"errors"
	"sync"

	"loans/core"
	"loans/pkg/fixed"

	"github.com/prometheus/client_golang/prometheus"
)

type engineMetrics struct {
	operations      *prometheus.CounterVec
	accrualFailures *prometheus.CounterVec
	marketRates     *prometheus.GaugeVec
	marketTotals    *prometheus.GaugeVec
	shortfalls      prometheus.Gauge
	lastAccrued     prometheus.Gauge
}

var (
	once     sync.Once
	registry *engineMetrics
)

func get() *engineMetrics {
	once.Do(func() {
		registry = &engineMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "loans",
				Subsystem: "engine",
				Name:      "operations_total",
				Help:      "Engine operations segmented by operation and outcome.",
			}, []string{"operation", "outcome"}),
			accrualFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "loans",
				Subsystem: "engine",
				Name:      "accrual_failures_total",
				Help:      "Per block accrual passes rolled back, by currency.",
			}, []string{"currency"}),
			marketRates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "loans",
				Subsystem: "market",
				Name:      "rate",
				Help:      "Market rates after the last accrual.",
			}, []string{"currency", "rate"}),
			marketTotals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "loans",
				Subsystem: "market",
				Name:      "total",
				Help:      "Market totals in the smallest unit after the last accrual.",
			}, []string{"currency", "total"}),
			shortfalls: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "loans",
				Subsystem: "account",
				Name:      "shortfalls",
				Help:      "Accounts in shortfall found by the last liquidity scan.",
			}),
			lastAccrued: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "loans",
				Subsystem: "engine",
				Name:      "last_accrued_timestamp",
				Help:      "Unix time of the last accrual pass.",
			}),
		}

		prometheus.MustRegister(
			registry.operations,
			registry.accrualFailures,
			registry.marketRates,
			registry.marketTotals,
			registry.shortfalls,
			registry.lastAccrued,
		)
	})

	return registry
}

// ObserveOperation count an engine operation
func ObserveOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		var code core.ErrorCode
		if errors.As(err, &code) {
			outcome = code.String()
		}
	}

	get().operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveAccrualFailure count a rolled back accrual
func ObserveAccrualFailure(currency core.CurrencyID) {
	get().accrualFailures.WithLabelValues(currency.String()).Inc()
}

// ObserveMarket export the ledger of a market
func ObserveMarket(currency core.CurrencyID, ledger *core.MarketLedger) {
	m := get()
	c := currency.String()

	rates := map[string]fixed.Fixed{
		"exchange_rate":     ledger.ExchangeRate,
		"borrow_index":      ledger.BorrowIndex,
		"utilization_ratio": ledger.UtilizationRatio,
		"borrow_rate":       ledger.BorrowRate,
		"supply_rate":       ledger.SupplyRate,
	}
	for name, v := range rates {
		m.marketRates.WithLabelValues(c, name).Set(v.Decimal().InexactFloat64())
	}

	totals := map[string]fixed.Balance{
		"supply":   ledger.TotalSupply,
		"borrows":  ledger.TotalBorrows,
		"reserves": ledger.TotalReserves,
	}
	for name, v := range totals {
		m.marketTotals.WithLabelValues(c, name).Set(v.Decimal().InexactFloat64())
	}
}

// SetShortfalls accounts in shortfall
func SetShortfalls(n int) {
	get().shortfalls.Set(float64(n))
}

// SetLastAccrued unix time of the last accrual
func SetLastAccrued(ts uint64) {
	get().lastAccrued.Set(float64(ts))
}
