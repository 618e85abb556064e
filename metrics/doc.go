// Package metrics defines the instrumentation surface of the grouping
// optimizers and two implementations: a no-op collector (the default) and a
// Prometheus-backed collector.
//
// Callers accept a Collector and never check for nil; pass NewNop() when no
// instrumentation is wanted.
package metrics
