package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hirestack/recruit-agent/internal/aptitude"
	"github.com/hirestack/recruit-agent/internal/config"
	"github.com/hirestack/recruit-agent/internal/logging"
	"github.com/hirestack/recruit-agent/internal/observability"
	"github.com/hirestack/recruit-agent/internal/session"
	"github.com/hirestack/recruit-agent/internal/types"
)

var aptitudeCommand = &cobra.Command{
	Use:   "aptitude",
	Short: "Generate, send, and manage aptitude assessments",
}

var aptitudeGenerateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Generate an assessment from a job description",
	RunE:  runAptitudeGenerateCmd,
}

var aptitudeSendCommand = &cobra.Command{
	Use:   "send",
	Short: "Send an assessment to candidates by email",
	Long: `Sends an assessment link to the given candidate emails. Questions are
loaded from a file previously produced by "aptitude generate --out", or
generated fresh from the job description when no file is given.`,
	RunE: runAptitudeSendCmd,
}

var aptitudeDeleteCommand = &cobra.Command{
	Use:   "delete <token>",
	Short: "Delete an assessment and its submissions",
	Args:  cobra.ExactArgs(1),
	RunE:  runAptitudeDeleteCmd,
}

var (
	aptConfigPath string
	aptJD         string
	aptJDText     string
	aptOut        string
	aptQuestions  string
	aptEmails     []string
	aptTestURL    string
	aptVerbose    bool
)

func init() {
	for _, c := range []*cobra.Command{aptitudeGenerateCommand, aptitudeSendCommand, aptitudeDeleteCommand} {
		c.Flags().StringVar(&aptConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
		c.Flags().BoolVarP(&aptVerbose, "verbose", "v", false, "Print detailed debug information")
	}
	for _, c := range []*cobra.Command{aptitudeGenerateCommand, aptitudeSendCommand} {
		c.Flags().StringVarP(&aptJD, "jd", "j", "", "Path to job description text file (defaults to the last generated JD)")
		c.Flags().StringVar(&aptJDText, "jd-text", "", "Job description as inline text")
	}
	aptitudeGenerateCommand.Flags().StringVarP(&aptOut, "out", "o", "", "Write the generated questions to this JSON file")
	aptitudeSendCommand.Flags().StringVarP(&aptQuestions, "questions", "q", "", "Path to a questions JSON file from 'aptitude generate --out'")
	aptitudeSendCommand.Flags().StringSliceVarP(&aptEmails, "emails", "e", nil, "Candidate emails (repeatable or comma-separated)")
	aptitudeSendCommand.Flags().StringVar(&aptTestURL, "test-url", "", "Base URL of the assessment page included in the invitation link")

	aptitudeCommand.AddCommand(aptitudeGenerateCommand)
	aptitudeCommand.AddCommand(aptitudeSendCommand)
	aptitudeCommand.AddCommand(aptitudeDeleteCommand)
	rootCmd.AddCommand(aptitudeCommand)
}

// resolveJDText finds the job description for assessment generation,
// preferring explicit input over the session's remembered JD.
func resolveJDText(sess *session.Session) (string, error) {
	if aptJDText != "" {
		return strings.TrimSpace(aptJDText), nil
	}
	if aptJD != "" {
		content, err := os.ReadFile(aptJD)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return strings.TrimSpace(string(content)), nil
	}
	if jd := sess.Snapshot().LastJDText; jd != "" {
		return jd, nil
	}
	return "", fmt.Errorf("no job description: pass --jd or --jd-text, or run generate-jd first")
}

func aptitudeSetup() (config.Config, zerolog.Logger, *session.Session, error) {
	cfg, err := resolveConfig(aptConfigPath, func(cfg *config.Config) {
		if aptVerbose {
			cfg.Verbose = true
		}
	})
	if err != nil {
		return cfg, zerolog.Nop(), nil, err
	}

	logger := logging.New(cfg.Verbose)

	statePath := cfg.StatePath
	if statePath == "" {
		statePath = session.DefaultStatePath()
	}
	sess, err := session.Load(statePath)
	if err != nil {
		return cfg, logger, nil, fmt.Errorf("failed to load session state: %w", err)
	}
	return cfg, logger, sess, nil
}

func runAptitudeGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, sess, err := aptitudeSetup()
	if err != nil {
		return err
	}

	jdText, err := resolveJDText(sess)
	if err != nil {
		return err
	}

	svc := aptitude.New(cfg.AptitudeURL, aptitude.WithLogger(logger))
	set, err := svc.Generate(cmd.Context(), jdText)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintQuestionSet(set)

	if aptOut != "" {
		data, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode questions: %w", err)
		}
		if err := os.WriteFile(aptOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write questions: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Questions written to %s\n", aptOut)
	}
	return nil
}

func loadQuestionSet(path string) (*types.QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file: %w", err)
	}
	var set types.QuestionSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse questions file: %w", err)
	}
	return &set, nil
}

func runAptitudeSendCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, sess, err := aptitudeSetup()
	if err != nil {
		return err
	}
	emails := aptEmails
	if len(emails) == 0 {
		// Fall back to the shortlist from the last analyze run.
		emails = sess.Snapshot().ShortlistEmails
	}
	if len(emails) == 0 {
		return fmt.Errorf("at least one candidate email is required (--emails, or run analyze first)")
	}

	jdText, err := resolveJDText(sess)
	if err != nil {
		return err
	}

	svc := aptitude.New(cfg.AptitudeURL, aptitude.WithLogger(logger))

	var set *types.QuestionSet
	if aptQuestions != "" {
		set, err = loadQuestionSet(aptQuestions)
	} else {
		set, err = svc.Generate(cmd.Context(), jdText)
	}
	if err != nil {
		return err
	}

	testURL := aptTestURL
	if testURL == "" {
		testURL = cfg.AptitudeURL + "/test"
	}

	token, err := svc.Send(cmd.Context(), testURL, aptitude.ExtractJobTitle(jdText), emails, set)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Assessment sent to %d candidate(s). Token: %s\n", len(emails), token)
	return nil
}

func runAptitudeDeleteCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, _, err := aptitudeSetup()
	if err != nil {
		return err
	}

	token := args[0]
	svc := aptitude.New(cfg.AptitudeURL, aptitude.WithLogger(logger))
	if err := svc.Delete(cmd.Context(), token); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Deleted assessment %s\n", token)
	return nil
}
