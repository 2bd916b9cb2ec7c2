package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hirestack/recruit-agent/internal/client"
	"github.com/hirestack/recruit-agent/internal/config"
	"github.com/hirestack/recruit-agent/internal/ingestion"
	"github.com/hirestack/recruit-agent/internal/logging"
	"github.com/hirestack/recruit-agent/internal/observability"
	"github.com/hirestack/recruit-agent/internal/screening"
	"github.com/hirestack/recruit-agent/internal/session"
	"github.com/hirestack/recruit-agent/internal/types"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Submit resumes for screening and wait for the ranked results",
	Long: `Submits a job description and a set of resumes to the screening backend,
polls the analysis job until it finishes, and prints the shortlist alongside
the non-selected candidates.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath   string
	analyzeJD           string
	analyzeJDURL        string
	analyzeJDText       string
	analyzeResumes      []string
	analyzeTopN         int
	analyzeMailboxStart string
	analyzeMailboxEnd   string
	analyzeBackendURL   string
	analyzePollInterval int
	analyzeMaxPolls     int
	analyzeUseBrowser   bool
	analyzeVerbose      bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeJD, "jd", "j", "", "Path to job description file (PDF, DOCX, or text)")
	analyzeCommand.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL to fetch the job posting from")
	analyzeCommand.Flags().StringVar(&analyzeJDText, "jd-text", "", "Job description as inline text")
	analyzeCommand.Flags().StringSliceVarP(&analyzeResumes, "resumes", "r", nil, "Resume files to screen (repeatable or comma-separated)")
	analyzeCommand.Flags().IntVarP(&analyzeTopN, "top-n", "n", 0, "Shortlist size (default 5)")
	analyzeCommand.Flags().StringVar(&analyzeMailboxStart, "mailbox-start", "", "Pull mailbox resumes from this date (YYYY-MM-DD)")
	analyzeCommand.Flags().StringVar(&analyzeMailboxEnd, "mailbox-end", "", "Pull mailbox resumes up to this date (YYYY-MM-DD)")
	analyzeCommand.Flags().StringVar(&analyzeBackendURL, "backend", "", "Screening backend base URL")
	analyzeCommand.Flags().IntVar(&analyzePollInterval, "poll-interval-ms", 0, "Delay between status polls in milliseconds")
	analyzeCommand.Flags().IntVar(&analyzeMaxPolls, "max-polls", 0, "Abort after this many status polls (0 = poll forever)")
	analyzeCommand.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(analyzeConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("top-n") {
			cfg.TopN = analyzeTopN
		}
		if cmd.Flags().Changed("backend") {
			cfg.BackendURL = analyzeBackendURL
		}
		if cmd.Flags().Changed("poll-interval-ms") {
			cfg.PollIntervalMS = analyzePollInterval
		}
		if cmd.Flags().Changed("use-browser") {
			cfg.UseBrowser = analyzeUseBrowser
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = analyzeVerbose
		}
	})
	if err != nil {
		return err
	}

	// The merge treats zero as unset, but --max-polls 0 is a deliberate
	// request for unbounded polling, so the flag wins verbatim.
	maxPolls := cfg.MaxPolls
	if cmd.Flags().Changed("max-polls") {
		maxPolls = analyzeMaxPolls
	}

	logger := logging.New(cfg.Verbose)
	printer := observability.NewPrinter(os.Stdout)

	statePath := cfg.StatePath
	if statePath == "" {
		statePath = session.DefaultStatePath()
	}
	sess, err := session.Load(statePath)
	if err != nil {
		return fmt.Errorf("failed to load session state: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jdText, jdFile, err := ingestion.LoadJD(ctx, ingestion.JDSource{
		Text:       analyzeJDText,
		Path:       analyzeJD,
		URL:        analyzeJDURL,
		UseBrowser: cfg.UseBrowser,
	}, logger)
	if err != nil {
		return err
	}
	// session prefill: a URL or file JD has no stable inline text to reuse
	if jdText == "" && sess.Snapshot().LastJDText != "" && jdFile == nil && analyzeJDURL == "" {
		jdText = sess.Snapshot().LastJDText
		logger.Info().Msg("reusing job description from the previous run")
	}

	resumes, err := ingestion.LoadResumes(ctx, analyzeResumes)
	if err != nil {
		return err
	}

	req := &client.AnalysisRequest{
		JDText:  jdText,
		JDFile:  jdFile,
		TopN:    cfg.TopN,
		Resumes: resumes,
	}
	if analyzeMailboxStart != "" || analyzeMailboxEnd != "" {
		req.Mailbox = &client.DateRange{Start: analyzeMailboxStart, End: analyzeMailboxEnd}
	}

	api := client.New(cfg.BackendURL,
		client.WithLogger(logger),
		client.WithPollInterval(time.Duration(cfg.PollIntervalMS)*time.Millisecond),
		client.WithMaxPolls(maxPolls),
	)

	if active := sess.ActiveJob(); active != "" {
		return fmt.Errorf("analysis job %s is already running", active)
	}

	jobID, err := api.Submit(ctx, req)
	if err != nil {
		return err
	}
	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := sess.Begin(jobID, cancel); err != nil {
		return err
	}
	defer sess.End(jobID)

	fmt.Fprintf(os.Stdout, "Submitted analysis job %s\n", jobID)

	result, err := api.Poll(pollCtx, jobID, func(status types.JobStatus) {
		printer.PrintProgress(&status)
	})
	if err != nil {
		return err
	}

	part := screening.Split(result, cfg.TopN, logger)
	printer.PrintPartition(&part)

	var candidatesURL string
	if result.CampaignFolder != "" {
		candidatesURL = fmt.Sprintf("%s/campaigns/%s", cfg.BackendURL, result.CampaignFolder)
	}

	sess.Update(func(state *session.State) {
		if jdText != "" {
			state.LastJDText = jdText
		}
		if result.ReportPath != "" {
			state.LastReportPath = result.ReportPath
		}
		if candidatesURL != "" {
			state.CandidatesURL = candidatesURL
		}
		// Remembered so "aptitude send" can address the shortlist directly.
		state.ShortlistEmails = nil
		for _, c := range part.Selected {
			if c.Email != "" {
				state.ShortlistEmails = append(state.ShortlistEmails, c.Email)
			}
		}
	})
	if err := sess.Save(); err != nil {
		logger.Warn().Err(err).Msg("failed to persist session state")
	}

	printer.PrintResultLinks(result.ReportPath, candidatesURL)
	return nil
}
