package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/metrics"
)

func TestPrometheus_StrategyCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewPrometheus(reg, "test")

	c.StrategyCompleted("pairs", 5*time.Millisecond, 1234.0, 17)
	c.StrategyCompleted("pairs", 3*time.Millisecond, 1500.0, 19)
	c.StrategyFailed("exhaustive")

	n, err := testutil.GatherAndCount(reg, "test_strategy_runs_total")
	require.NoError(t, err)
	require.Equal(t, 2, n, "one series per (strategy,result)")

	families, err := reg.Gather()
	require.NoError(t, err)

	var gauge float64
	for _, mf := range families {
		if mf.GetName() != "test_strategy_reimbursement_dollars" {
			continue
		}
		gauge = mf.GetMetric()[0].GetGauge().GetValue()
	}
	require.Equal(t, 1500.0, gauge, "gauge keeps the latest run")
}

func TestPrometheus_SolverAndRestart(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewPrometheus(reg, "")

	c.SolverFinished("optimal", 12, time.Millisecond)
	c.SolverFinished("infeasible", 1, time.Millisecond)
	c.RestartFinished("reimbursement", 250000)

	n, err := testutil.GatherAndCount(reg, "cepgroup_solver_solves_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(reg, "cepgroup_anneal_restart_reimbursement_dollars")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNop_Discards(t *testing.T) {
	c := metrics.OrNop(nil)
	require.NotPanics(t, func() {
		c.StrategyCompleted("x", 0, 0, 0)
		c.StrategyFailed("x")
		c.SolverFinished("optimal", 0, 0)
		c.RestartFinished("coverage", 0)
	})
}
