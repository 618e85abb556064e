package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/cep"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/config"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/internal/logging"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/metrics"
	"github.com/VenkataKoppada/CEPAlgorithms-MealsCount/strategies"
)

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run every configured strategy and print the best",
		Example: `
# Sample roster, default strategies
cepgroup evaluate

# Own roster, rank by covered students, YAML output
cepgroup evaluate --roster sites.yaml --objective coverage --yaml
`,
		Args: cobra.NoArgs,
		RunE: runEvaluate,
	}
	f := cmd.Flags()
	f.StringP("config", "c", "", "Run configuration file (YAML, JSON or TOML)")
	f.StringP("roster", "r", "", "Roster file; overrides the configuration")
	f.StringP("objective", "o", "", "reimbursement or coverage; overrides the configuration")
	f.Int("concurrency", 0, "Strategies run in parallel; overrides the configuration")
	f.Bool("yaml", false, "Print the best strategy as YAML")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address while evaluating")

	return cmd
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	var (
		f          = cmd.Flags()
		start      = time.Now()
		debug, _   = f.GetBool("debug")
		cfgPath, _ = f.GetString("config")
		asYAML, _  = f.GetBool("yaml")
		addr, _    = f.GetString("metrics-addr")
	)

	logger, err := logging.NewLogger(debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	ctx := logging.IntoContext(cmd.Context(), logger)

	run, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(f, run)
	if err := run.Validate(); err != nil {
		return err
	}
	objective, _ := run.ObjectiveValue()

	roster := config.SampleRoster()
	if run.Roster != "" {
		if roster, err = config.LoadRoster(run.Roster); err != nil {
			return err
		}
	}
	sponsor, err := run.NewSponsor(roster)
	if err != nil {
		return err
	}

	var collector metrics.Collector = metrics.NewNop()
	if addr != "" {
		reg := prometheus.NewRegistry()
		collector = metrics.NewPrometheus(reg, "")
		stop, err := serveMetrics(ctx, logger, addr, reg)
		if err != nil {
			return err
		}
		defer stop()
	}

	built, err := strategies.Default(collector).NewAll(run.Entries())
	if err != nil {
		return err
	}
	sponsor.AddStrategy(built...)

	logger.V(logging.DEBUG).Info("evaluating strategies",
		"sponsor", sponsor.String(),
		"sites", len(sponsor.Sites),
		"strategies", len(built),
		"objective", objective.String())
	if err := sponsor.EvaluateStrategies(ctx, objective,
		cep.WithConcurrency(run.Concurrency),
		cep.WithMetrics(collector),
	); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(cep.Summarize(sponsor.Best())); err != nil {
			return err
		}
		return enc.Close()
	}
	fmt.Fprint(out, cep.Report(sponsor.Best()))
	fmt.Fprintf(out, "Execution Time: %.3f seconds\n", time.Since(start).Seconds())

	return nil
}

// applyOverrides copies explicitly set flags over the loaded configuration.
func applyOverrides(f *pflag.FlagSet, run *config.Run) {
	if f.Changed("roster") {
		run.Roster, _ = f.GetString("roster")
	}
	if f.Changed("objective") {
		run.Objective, _ = f.GetString("objective")
	}
	if f.Changed("concurrency") {
		run.Concurrency, _ = f.GetInt("concurrency")
	}
}

// serveMetrics exposes reg on addr under /metrics until the returned stop
// function is called.
func serveMetrics(ctx context.Context, logger logr.Logger, addr string, reg *prometheus.Registry) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "metrics server stopped")
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}
