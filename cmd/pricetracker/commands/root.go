// Package commands holds the pricetracker command line.
package commands

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/light-bringer/pricetracker/internal/pkg/config"
	"github.com/light-bringer/pricetracker/internal/pkg/logger"
	"github.com/light-bringer/pricetracker/internal/pkg/metrics"
)

var rootCmd = &cobra.Command{
	Use:   "pricetracker",
	Short: "Provincial price monitoring service",
	Long: `pricetracker stores weekly and monthly price sheets per province and
compares each sheet against the previous week, month and three months.

Examples:
  pricetracker serve
  pricetracker report --province quirino --file rice-november --out ./reports
  pricetracker migrate --migrations migrations
  pricetracker cleanup-outbox --dry-run`,
	SilenceUsage: true,
}

// Execute runs the command line. It is called once by main.
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads configuration and builds the logger every command shares.
func bootstrap(component string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		Service:     "pricetracker",
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log.With(zap.String("component", component)), nil
}

// newMetrics registers the service collectors next to the runtime ones.
func newMetrics() *metrics.Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(reg)
}
