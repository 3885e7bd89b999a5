// Command groupassign runs the project-group assignment pipeline over a
// survey CSV and a roster CSV, writing the group-numbered assignment
// table and the plain-text report (spec.md §6).
//
// Grounded on _examples/other_examples/
// bf6e29f1_LorisFriedel-best-time-to-meet-gcal__cmd-root.go.go (a cobra
// root command with package-level flag variables and persistent config
// flags) — the only cobra usage in the retrieval pack.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/udp-cs/groupassign/internal/config"
	"github.com/udp-cs/groupassign/internal/orchestrator"
	"github.com/udp-cs/groupassign/internal/report"
)

var (
	surveyPath      string
	rosterPath      string
	outputPath      string
	reportPath      string
	configPath      string
	includeMissing  bool
	timeBudgetS     int
	wAvail          int
	wMeet           int
	wSection        int
	seed            int64
	validateOnly    bool
	diagnosticsJSON string
)

var rootCmd = &cobra.Command{
	Use:   "groupassign",
	Short: "Assign students to project groups under hard and soft constraints",
	RunE:  run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file (default is flag defaults)")

	rootCmd.Flags().StringVar(&surveyPath, "survey", "", "survey CSV path (required)")
	rootCmd.Flags().StringVar(&rosterPath, "roster", "", "roster CSV path (required)")
	rootCmd.Flags().StringVar(&outputPath, "out", "assignment.csv", "assignment table output path")
	rootCmd.Flags().StringVar(&reportPath, "report", "report.txt", "plain-text report output path")
	rootCmd.Flags().BoolVar(&includeMissing, "include-missing", false, "synthesize placeholders for roster-only students")
	rootCmd.Flags().IntVar(&timeBudgetS, "time-budget-s", 0, "solver wall-clock budget in seconds (0 = use config default)")
	rootCmd.Flags().IntVar(&wAvail, "w-avail", 0, "availability conflict weight (0 = use config default)")
	rootCmd.Flags().IntVar(&wMeet, "w-meet", 0, "meeting-mode conflict weight (0 = use config default)")
	rootCmd.Flags().IntVar(&wSection, "w-section", 0, "section conflict weight (0 = use config default)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "solver seed")
	rootCmd.Flags().BoolVar(&validateOnly, "validate-only", false, "reconcile and analyze preference loops only, skip solving")
	rootCmd.Flags().StringVar(&diagnosticsJSON, "diagnostics-json", "", "optional path to dump the diagnostics bag as JSON")

	rootCmd.MarkFlagRequired("survey")
	rootCmd.MarkFlagRequired("roster")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(&cfg)

	surveyFile, err := os.Open(surveyPath)
	if err != nil {
		return fmt.Errorf("opening survey file: %w", err)
	}
	defer surveyFile.Close()

	rosterFile, err := os.Open(rosterPath)
	if err != nil {
		return fmt.Errorf("opening roster file: %w", err)
	}
	defer rosterFile.Close()

	if validateOnly {
		return runValidateOnly(surveyFile, rosterFile, cfg)
	}

	result, err := orchestrator.Run(context.Background(), surveyFile, rosterFile, cfg)
	if err != nil {
		os.Exit(orchestrator.ExitCode(err))
	}

	if err := writeOutputs(result); err != nil {
		return err
	}

	if diagnosticsJSON != "" {
		if err := writeDiagnosticsJSON(diagnosticsJSON, result); err != nil {
			return err
		}
	}

	os.Exit(orchestrator.ExitCode(nil))
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if cmdFlagChanged("include-missing") {
		cfg.IncludeMissing = includeMissing
	}
	if timeBudgetS > 0 {
		cfg.TimeBudgetS = timeBudgetS
	}
	if wAvail > 0 {
		cfg.WAvail = wAvail
	}
	if wMeet > 0 {
		cfg.WMeet = wMeet
	}
	if wSection > 0 {
		cfg.WSection = wSection
	}
	if cmdFlagChanged("seed") {
		cfg.Seed = seed
	}
}

func cmdFlagChanged(name string) bool {
	f := rootCmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func writeOutputs(result orchestrator.Result) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating assignment output: %w", err)
	}
	defer out.Close()
	if err := report.WriteAssignment(out, result.Groups); err != nil {
		return fmt.Errorf("writing assignment table: %w", err)
	}

	rep, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("creating report output: %w", err)
	}
	defer rep.Close()
	return report.Write(rep, result.Report)
}
