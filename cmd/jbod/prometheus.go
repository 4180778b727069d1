package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/herver/jbod-rs/internal/enclosure"
	"github.com/herver/jbod-rs/internal/exporter"
)

var prometheusCmd = &cobra.Command{
	Use:   "prometheus",
	Short: "Serve inventory metrics for Prometheus",
	Long: `Run an HTTP endpoint exposing the enclosure inventory as Prometheus
metrics on /metrics. Every scrape runs a fresh inventory pass against
the hardware.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Exporter.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("ip-address") {
			cfg.Exporter.ListenAddress, _ = cmd.Flags().GetString("ip-address")
		}

		inv := enclosure.NewInventory(run, cfg, log)

		registry := prometheus.NewRegistry()
		if err := registry.Register(exporter.NewCollector(inv, log)); err != nil {
			return err
		}

		addr := exporter.FormatPort(cfg.Exporter.ListenAddress, cfg.Exporter.Port)
		log.Info().Str("addr", addr).Msg("serving metrics on /metrics")

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		return http.ListenAndServe(addr, mux)
	},
}

func init() {
	prometheusCmd.Flags().Int("port", 9945, "listen port")
	prometheusCmd.Flags().String("ip-address", "0.0.0.0", "listen address")
}
