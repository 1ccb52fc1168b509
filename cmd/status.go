package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aure/fgtusage/internal/api"
	"github.com/aure/fgtusage/internal/models"
)

var statusOutput string

type readingFetcher interface {
	GetPolicyUsage(ctx context.Context, policyID int) (*models.UsageReading, error)
}

var _ readingFetcher = (*api.Client)(nil)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current policy usage without notifying",
	Long: `Fetch the ASIC byte counter for the configured policy and print it.
Nothing is posted to the webhook.

Output formats:
  text  - human readable summary (default)
  json  - for agents/scripts
  yaml  - for agents/scripts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if err := cfg.ValidateFetch(); err != nil {
			return err
		}

		client := api.NewClient(cfg.FGTHost, cfg.APIToken, cfg.VerifySSL, log)
		return runStatus(cmd.Context(), client, cfg.PolicyID, statusOutput, cmd.OutOrStdout())
	},
}

type CurrentUsage struct {
	Timestamp  string  `json:"timestamp" yaml:"timestamp"`
	PolicyID   int     `json:"policy_id" yaml:"policy_id"`
	ASICBytes  int64   `json:"asic_bytes" yaml:"asic_bytes"`
	ASICGiB    float64 `json:"asic_gib" yaml:"asic_gib"`
	MonthLabel string  `json:"month" yaml:"month"`
}

func runStatus(ctx context.Context, fetcher readingFetcher, policyID int, format string, out io.Writer) error {
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s (valid: text, json, yaml)", format)
	}

	reading, err := fetcher.GetPolicyUsage(ctx, policyID)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		output, err := json.MarshalIndent(newCurrentUsage(reading), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(output))
	case "yaml":
		output, err := yaml.Marshal(newCurrentUsage(reading))
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		fmt.Fprint(out, string(output))
	default:
		printStatus(out, reading)
	}
	return nil
}

func newCurrentUsage(r *models.UsageReading) CurrentUsage {
	return CurrentUsage{
		Timestamp:  r.CollectedAt.Format(time.RFC3339),
		PolicyID:   r.PolicyID,
		ASICBytes:  r.ASICBytes,
		ASICGiB:    r.GiB(),
		MonthLabel: models.MonthLabel(r.CollectedAt),
	}
}

func printStatus(out io.Writer, r *models.UsageReading) {
	fmt.Fprintf(out, "Policy %d Usage (as of %s)\n", r.PolicyID, r.CollectedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(out, "─────────────────────────────")
	fmt.Fprintf(out, "  ASIC bytes: %d (%s)\n", r.ASICBytes, humanize.IBytes(uint64(r.ASICBytes)))
	fmt.Fprintf(out, "  ASIC GiB:   %.2f\n", r.GiB())
	fmt.Fprintf(out, "  Month:      %s\n", models.MonthLabel(r.CollectedAt))
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(statusCmd)
}
