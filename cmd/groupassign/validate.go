package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/config"
	"github.com/udp-cs/groupassign/internal/orchestrator"
	"github.com/udp-cs/groupassign/internal/prefgraph"
	"github.com/udp-cs/groupassign/internal/roster"
)

// runValidateOnly implements --validate-only (SPEC_FULL.md §9): reconcile
// and analyze preference loops, print the missing-student report and
// detected loops, and stop before ever invoking the solver.
func runValidateOnly(surveyR, rosterR io.Reader, cfg config.Config) error {
	diag := apperr.NewDiagnostics()

	survey, err := roster.ParseSurvey(surveyR, diag)
	if err != nil {
		return err
	}
	rosterRows, err := roster.ParseRoster(rosterR)
	if err != nil {
		return err
	}
	participants, missing := roster.Reconcile(survey, rosterRows, cfg.IncludeMissing, diag)

	graph := prefgraph.Build(participants)
	loops := prefgraph.FindLoops(graph)

	fmt.Printf("participants: %d\n", len(participants))
	fmt.Printf("missing from survey: %d\n", len(missing))
	for _, m := range missing {
		fmt.Printf("  %s (%s)\n", m.Name, m.Email)
	}
	fmt.Printf("preference loops: %d\n", len(loops))
	for _, l := range loops {
		names := l.Names()
		fmt.Printf("  %v\n", names)
	}
	for _, w := range diag.Warnings {
		fmt.Printf("warning: %s\n", w.Message)
	}
	return nil
}

// diagnosticsDump is the JSON shape written by --diagnostics-json,
// grounded on the teacher's exporter.ScheduleExport summary pattern.
type diagnosticsDump struct {
	RunID        string             `json:"run_id"`
	SolverStatus string             `json:"solver_status"`
	Warnings     []string           `json:"warnings"`
	StageElapsed map[string]float64 `json:"stage_elapsed_seconds"`
	GroupsFormed int                `json:"groups_formed"`
	Size3Groups  int                `json:"size3_groups"`
	Size4Groups  int                `json:"size4_groups"`
}

func writeDiagnosticsJSON(path string, result orchestrator.Result) error {
	dump := diagnosticsDump{
		RunID:        result.RunID,
		SolverStatus: result.Diag.SolverStatus,
		StageElapsed: result.Diag.StageElapsed,
		GroupsFormed: result.Diag.GroupsFormed,
		Size3Groups:  result.Diag.Size3Groups,
		Size4Groups:  result.Diag.Size4Groups,
	}
	for _, w := range result.Diag.Warnings {
		dump.Warnings = append(dump.Warnings, w.Message)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating diagnostics output: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}
