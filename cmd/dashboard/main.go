// dashboard is a terminal view over the analytics API.
//
// Usage:
//
//	dashboard summary
//	dashboard list --status CONCLUIDO --type COMPANY -o json
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/config"
	"github.com/PratikDhanave/enrichment-analytics-service/internal/dashboard"
)

var (
	version   = "dev"
	outputFmt string
	apiURL    string
	timeout   time.Duration
	limit     int
	statuses  []string
	types     []string
	timezone  string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	defaultURL := "http://localhost:3000"
	if cfg, err := config.Load(); err == nil {
		defaultURL = cfg.APIURL
	}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Inspect enrichment jobs from the analytics API",
		Long: `dashboard reads /analytics/list and /analytics/overview from a running
API and prints KPIs, the status breakdown and the job table.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "Analytics API base URL (API_URL)")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "HTTP timeout")
	cmd.PersistentFlags().IntVar(&limit, "limit", 0, "Rows to fetch (server default when 0)")
	cmd.PersistentFlags().StringSliceVar(&statuses, "status", nil, "Keep only these statuses")
	cmd.PersistentFlags().StringSliceVar(&types, "type", nil, "Keep only these contact types")
	cmd.PersistentFlags().StringVar(&timezone, "timezone", dashboard.DisplayTimezone, "Timezone for timestamps")

	cmd.AddCommand(summaryCmd())
	cmd.AddCommand(listCmd())
	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show KPIs and the status breakdown",
		Long: `Compute KPIs from the filtered job list and show the server-side
average processing time next to them.

Examples:
  dashboard summary
  dashboard summary --type PERSON -o yaml`,
		RunE: runSummary,
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the most recent jobs",
		Long: `List the most recent jobs, newest first, with timestamps in the
display timezone.

Examples:
  dashboard list --limit 20
  dashboard list --status FALHOU,CANCELADO -o json`,
		RunE: runList,
	}
}

// SummaryResult is what `dashboard summary` prints.
type SummaryResult struct {
	dashboard.Summary  `yaml:",inline"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes" yaml:"avg_duration_minutes"`
}

// ListResult is what `dashboard list` prints.
type ListResult struct {
	Timezone string              `json:"timezone" yaml:"timezone"`
	Jobs     []dashboard.JobView `json:"jobs" yaml:"jobs"`
}

func filter() dashboard.Filter {
	return dashboard.Filter{Statuses: statuses, ContactTypes: types}
}

func runSummary(cmd *cobra.Command, _ []string) error {
	client := dashboard.NewClient(apiURL, timeout)

	rows, err := client.Jobs(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to fetch jobs: %w", err)
	}
	overview, err := client.Overview(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch overview: %w", err)
	}

	result := SummaryResult{
		Summary:            dashboard.Summarize(filter().Apply(rows)),
		AvgDurationMinutes: overview.AvgDurationMinutes,
	}
	return outputResult(cmd.OutOrStdout(), result, outputFmt)
}

func runList(cmd *cobra.Command, _ []string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}

	rows, err := dashboard.NewClient(apiURL, timeout).Jobs(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to fetch jobs: %w", err)
	}

	result := ListResult{
		Timezone: loc.String(),
		Jobs:     dashboard.Views(filter().Apply(rows), loc),
	}
	return outputResult(cmd.OutOrStdout(), result, outputFmt)
}
