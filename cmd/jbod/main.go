package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/herver/jbod-rs/internal/config"
	"github.com/herver/jbod-rs/internal/runner"
	"github.com/herver/jbod-rs/internal/version"
)

var (
	cfgFile string
	debug   bool

	log zerolog.Logger
	cfg *config.Config
	run runner.Runner = &runner.Exec{}
)

var rootCmd = &cobra.Command{
	Use:   "jbod",
	Short: "JBOD enclosure inventory and health tool",
	Long: `jbod inventories SCSI enclosures (JBOD shelves) and reports their
fans, temperature sensors, voltage sensors and attached disks. It can
also drive slot LEDs and expose everything as Prometheus metrics.

All information comes from lsscsi and the sg3-utils binaries, which
must be installed and usually need root to talk to the enclosures.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if debug {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		return runner.VerifyError(runner.Verify(cfg.Requirements()))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/jbod/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(ledCmd)
	rootCmd.AddCommand(prometheusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
