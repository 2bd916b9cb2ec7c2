package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirestack/recruit-agent/internal/aptitude"
	"github.com/hirestack/recruit-agent/internal/config"
	"github.com/hirestack/recruit-agent/internal/logging"
	"github.com/hirestack/recruit-agent/internal/observability"
)

var dashboardCommand = &cobra.Command{
	Use:   "dashboard",
	Short: "Show assessment completion stats and per-candidate detail",
	RunE:  runDashboardCmd,
}

var (
	dashConfigPath string
	dashDetails    string
	dashVerbose    bool
)

func init() {
	dashboardCommand.Flags().StringVar(&dashConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	dashboardCommand.Flags().StringVarP(&dashDetails, "details", "d", "", "Show per-candidate rows for this assessment token")
	dashboardCommand.Flags().BoolVarP(&dashVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(dashboardCommand)
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(dashConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = dashVerbose
		}
	})
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Verbose)
	printer := observability.NewPrinter(os.Stdout)

	svc := aptitude.New(cfg.AptitudeURL, aptitude.WithLogger(logger))
	analytics, err := svc.FetchAnalytics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch analytics: %w", err)
	}

	if dashDetails != "" {
		rows, err := aptitude.CandidateRows(analytics, dashDetails)
		if err != nil {
			return err
		}
		printer.PrintCandidateRows(dashDetails, rows)
		return nil
	}

	summary := aptitude.Summarize(analytics)
	printer.PrintAssessmentSummary(&summary)
	return nil
}
