package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nbtaylor/nstree/internal/config"
	"github.com/nbtaylor/nstree/internal/metrics"
	"github.com/nbtaylor/nstree/nstree"
)

var (
	cfgPath     string
	metricsAddr string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nstreed",
		Short: "Drive an in-memory hierarchical namespace",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to an optional YAML config file")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (disabled if empty)")

	root.AddCommand(newCreateCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newMoveCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newStressCmd())
	return root
}

// loadTree builds a Tree from the configured limits, wiring in a metrics
// Recorder and an HTTP metrics server when --metrics-addr is set.
func loadTree() (*nstree.Tree, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	opts := []nstree.Option{nstree.WithLimits(cfg.Limits())}

	addr := metricsAddr
	if addr == "" {
		addr = cfg.MetricsAddr
	}
	if addr != "" {
		reg := prometheus.NewRegistry()
		rec := metrics.New(reg)
		opts = append(opts, nstree.WithRecorder(rec))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.WithError(err).Error("nstreed: metrics server stopped")
			}
		}()
		log.WithField("addr", addr).Info("nstreed: serving metrics")
	}

	return nstree.New(opts...), nil
}
