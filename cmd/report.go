package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aure/fgtusage/internal/api"
	"github.com/aure/fgtusage/internal/config"
	"github.com/aure/fgtusage/internal/notifier"
)

type usageFetcher interface {
	FetchUsageGiB(ctx context.Context, policyID int) (float64, error)
}

type usageNotifier interface {
	Notify(ctx context.Context, usageGiB float64) error
}

var (
	_ usageFetcher  = (*api.Client)(nil)
	_ usageNotifier = (*notifier.DiscordNotifier)(nil)
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch policy usage and post it to the webhook",
	RunE:  reportRunE,
}

func reportRunE(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		return err
	}

	client := api.NewClient(cfg.FGTHost, cfg.APIToken, cfg.VerifySSL, log)
	discord := notifier.NewDiscordNotifier(cfg.WebhookURL, log)

	return runReport(cmd.Context(), cfg, client, discord, cmd.OutOrStdout(), log)
}

// runReport fetches first and only notifies once the fetch has succeeded.
func runReport(ctx context.Context, cfg config.Config, fetcher usageFetcher, n usageNotifier, out io.Writer, log *zap.Logger) error {
	usageGiB, err := fetcher.FetchUsageGiB(ctx, cfg.PolicyID)
	if err != nil {
		return err
	}

	log.Info("policy usage fetched",
		zap.Int("policy_id", cfg.PolicyID),
		zap.Float64("asic_gib", usageGiB),
	)

	if err := n.Notify(ctx, usageGiB); err != nil {
		return err
	}

	fmt.Fprintln(out, "Message sent to Discord.")
	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
