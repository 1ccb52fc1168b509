package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aure/fgtusage/internal/config"
	"github.com/aure/fgtusage/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fgtusage",
	Short: "FortiGate ASIC usage reporter",
	Long: `fgtusage reads the ASIC-offloaded byte counter of a FortiGate firewall
policy, converts it to GiB and posts a monthly usage message to a Discord webhook.

Running without a subcommand is the same as 'fgtusage report'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          reportRunE,
}

// Execute is the only place that terminates the process on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fgtusage.yaml)")
}

// setup loads the configuration and builds the logger for a command run.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cfg, nil, fmt.Errorf("creating logger: %w", err)
	}

	if cfg.ConfigFile != "" {
		log.Debug("using config file", zap.String("path", cfg.ConfigFile))
	}
	return cfg, log, nil
}
