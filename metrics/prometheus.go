package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements Collector backed by client_golang metrics.
// Metrics are created and registered on first use.
type Prometheus struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	strategyRuns          *prometheus.CounterVec
	strategyDuration      *prometheus.HistogramVec
	strategyReimbursement *prometheus.GaugeVec
	strategyCovered       *prometheus.GaugeVec
	solverSolves          *prometheus.CounterVec
	solverNodes           prometheus.Histogram
	solverDuration        prometheus.Histogram
	restartReimbursement  *prometheus.HistogramVec
}

// Compile-time assertion that Prometheus implements Collector.
var _ Collector = (*Prometheus)(nil)

// NewPrometheus creates a Prometheus-backed collector.
//
// Parameters:
//   - reg: registerer (prometheus.DefaultRegisterer when nil)
//   - namespace: metric namespace ("cepgroup" when empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "cepgroup"
	}

	return &Prometheus{reg: reg, namespace: namespace}
}

func (p *Prometheus) ensureRegistered() {
	p.once.Do(func() {
		p.strategyRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "strategy",
			Name:      "runs_total",
			Help:      "Strategy grouping runs by strategy and result.",
		}, []string{"strategy", "result"})

		p.strategyDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "strategy",
			Name:      "duration_seconds",
			Help:      "Wall time of one strategy grouping run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"strategy"})

		p.strategyReimbursement = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "strategy",
			Name:      "reimbursement_dollars",
			Help:      "Estimated annual reimbursement of the last grouping per strategy.",
		}, []string{"strategy"})

		p.strategyCovered = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "strategy",
			Name:      "students_covered",
			Help:      "Covered students of the last grouping per strategy.",
		}, []string{"strategy"})

		p.solverSolves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Integer-program solves by final status.",
		}, []string{"status"})

		p.solverNodes = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "nodes",
			Help:      "Branch-and-bound nodes explored per solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		})

		p.solverDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Wall time of one integer-program solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		})

		p.restartReimbursement = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "anneal",
			Name:      "restart_reimbursement_dollars",
			Help:      "Final reimbursement of each annealing fresh start.",
			Buckets:   prometheus.ExponentialBuckets(10000, 2, 12),
		}, []string{"objective"})

		p.reg.MustRegister(
			p.strategyRuns,
			p.strategyDuration,
			p.strategyReimbursement,
			p.strategyCovered,
			p.solverSolves,
			p.solverNodes,
			p.solverDuration,
			p.restartReimbursement,
		)
	})
}

// StrategyCompleted implements Collector.
func (p *Prometheus) StrategyCompleted(strategy string, elapsed time.Duration, reimbursement float64, covered int) {
	p.ensureRegistered()
	p.strategyRuns.WithLabelValues(strategy, "ok").Inc()
	p.strategyDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	p.strategyReimbursement.WithLabelValues(strategy).Set(reimbursement)
	p.strategyCovered.WithLabelValues(strategy).Set(float64(covered))
}

// StrategyFailed implements Collector.
func (p *Prometheus) StrategyFailed(strategy string) {
	p.ensureRegistered()
	p.strategyRuns.WithLabelValues(strategy, "error").Inc()
}

// SolverFinished implements Collector.
func (p *Prometheus) SolverFinished(status string, nodes int, elapsed time.Duration) {
	p.ensureRegistered()
	p.solverSolves.WithLabelValues(status).Inc()
	p.solverNodes.Observe(float64(nodes))
	p.solverDuration.Observe(elapsed.Seconds())
}

// RestartFinished implements Collector.
func (p *Prometheus) RestartFinished(objective string, reimbursement float64) {
	p.ensureRegistered()
	p.restartReimbursement.WithLabelValues(objective).Observe(reimbursement)
}
