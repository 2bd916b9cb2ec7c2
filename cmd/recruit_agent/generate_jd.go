package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirestack/recruit-agent/internal/config"
	"github.com/hirestack/recruit-agent/internal/jdgen"
	"github.com/hirestack/recruit-agent/internal/logging"
	"github.com/hirestack/recruit-agent/internal/session"
)

var generateJDCommand = &cobra.Command{
	Use:   "generate-jd",
	Short: "Generate a job description from a role briefing",
	Long: `Sends the company and role details to the JD generator service and prints
the generated job description. The briefing and the result are remembered in
the session state so later runs can reuse them.`,
	RunE: runGenerateJDCmd,
}

var (
	genJDConfigPath     string
	genJDCompany        string
	genJDCompanyType    string
	genJDIndustry       string
	genJDLocation       string
	genJDRole           string
	genJDExperience     string
	genJDEmploymentType string
	genJDWorkMode       string
	genJDOut            string
	genJDVerbose        bool
)

func init() {
	generateJDCommand.Flags().StringVar(&genJDConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateJDCommand.Flags().StringVarP(&genJDCompany, "company", "c", "", "Company name (required)")
	generateJDCommand.Flags().StringVar(&genJDCompanyType, "company-type", "", "Company type (e.g. Startup, Enterprise)")
	generateJDCommand.Flags().StringVar(&genJDIndustry, "industry", "", "Industry")
	generateJDCommand.Flags().StringVar(&genJDLocation, "location", "", "Location")
	generateJDCommand.Flags().StringVar(&genJDRole, "role", "", "Role title (required)")
	generateJDCommand.Flags().StringVar(&genJDExperience, "experience", "", "Experience range (e.g. 3-5 years)")
	generateJDCommand.Flags().StringVar(&genJDEmploymentType, "employment-type", "", "Employment type (e.g. Full-time)")
	generateJDCommand.Flags().StringVar(&genJDWorkMode, "work-mode", "", "Work mode (e.g. Remote, Hybrid, On-site)")
	generateJDCommand.Flags().StringVarP(&genJDOut, "out", "o", "", "Write the job description to this file instead of stdout")
	generateJDCommand.Flags().BoolVarP(&genJDVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(generateJDCommand)
}

func runGenerateJDCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(genJDConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = genJDVerbose
		}
	})
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Verbose)

	statePath := cfg.StatePath
	if statePath == "" {
		statePath = session.DefaultStatePath()
	}
	sess, err := session.Load(statePath)
	if err != nil {
		return fmt.Errorf("failed to load session state: %w", err)
	}

	form := jdgen.FormInput{
		CompanyName:    genJDCompany,
		CompanyType:    genJDCompanyType,
		Industry:       genJDIndustry,
		Location:       genJDLocation,
		RoleTitle:      genJDRole,
		Experience:     genJDExperience,
		EmploymentType: genJDEmploymentType,
		WorkMode:       genJDWorkMode,
	}

	// Reuse the last briefing for anything left blank.
	if saved := sess.Snapshot().JDForm; saved != nil {
		fillFromSaved(&form, saved)
	}

	jd, err := jdgen.New(cfg.JDGenURL, jdgen.WithLogger(logger)).Generate(cmd.Context(), form)
	if err != nil {
		return err
	}

	sess.Update(func(state *session.State) {
		state.LastJDText = jd
		state.JDForm = map[string]string{
			"companyName":    form.CompanyName,
			"companyType":    form.CompanyType,
			"industry":       form.Industry,
			"location":       form.Location,
			"roleTitle":      form.RoleTitle,
			"experience":     form.Experience,
			"employmentType": form.EmploymentType,
			"workMode":       form.WorkMode,
		}
	})
	if err := sess.Save(); err != nil {
		logger.Warn().Err(err).Msg("failed to persist session state")
	}

	if genJDOut != "" {
		if err := os.WriteFile(genJDOut, []byte(jd), 0o644); err != nil {
			return fmt.Errorf("failed to write job description: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Job description written to %s\n", genJDOut)
		return nil
	}

	fmt.Fprintln(os.Stdout, jd)
	return nil
}

func fillFromSaved(form *jdgen.FormInput, saved map[string]string) {
	fields := []struct {
		dst *string
		key string
	}{
		{&form.CompanyName, "companyName"},
		{&form.CompanyType, "companyType"},
		{&form.Industry, "industry"},
		{&form.Location, "location"},
		{&form.RoleTitle, "roleTitle"},
		{&form.Experience, "experience"},
		{&form.EmploymentType, "employmentType"},
		{&form.WorkMode, "workMode"},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = saved[f.key]
		}
	}
}
