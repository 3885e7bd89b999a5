// Package orchestrator sequences the pipeline (spec.md §4.6): reconcile
// → analyze preference loops → build the model → solve → post-process,
// threading a diagnostics bag through every stage. Grounded on the
// teacher's cmd/api/main.go, which runs the same staged
// load-build-color-optimize-assign sequence, printing a banner per stage
// and collecting summary statistics along the way.
package orchestrator

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/config"
	"github.com/udp-cs/groupassign/internal/domain"
	"github.com/udp-cs/groupassign/internal/model"
	"github.com/udp-cs/groupassign/internal/postprocess"
	"github.com/udp-cs/groupassign/internal/prefgraph"
	"github.com/udp-cs/groupassign/internal/report"
	"github.com/udp-cs/groupassign/internal/roster"
	"github.com/udp-cs/groupassign/internal/solver"
)

// Result is everything a caller needs to render the two spec.md §6
// outputs: the final groups and the report data.
type Result struct {
	RunID      string
	Groups     []*domain.Group
	Unassigned []*domain.Student
	Loops      []domain.PreferenceLoop
	Report     report.Data
	Diag       *apperr.Diagnostics
	Status     solver.Status
}

// Run executes the full pipeline once, synchronously (spec.md §5: no
// suspension points are exposed to callers). It guarantees the solver's
// context is always canceled on every exit path via defer, mirroring the
// teacher's scoped-resource pattern around the solver handle.
func Run(ctx context.Context, surveyR, rosterR io.Reader, cfg config.Config) (Result, error) {
	runID := uuid.NewString()
	diag := apperr.NewDiagnostics()

	weights, err := cfg.Weights()
	if err != nil {
		return Result{}, err
	}

	log.Printf("[%s] [1/5] reconciling roster...", runID)
	t0 := time.Now()
	survey, err := roster.ParseSurvey(surveyR, diag)
	if err != nil {
		return Result{}, err
	}
	rosterRows, err := roster.ParseRoster(rosterR)
	if err != nil {
		return Result{}, err
	}
	participants, missing := roster.Reconcile(survey, rosterRows, cfg.IncludeMissing, diag)
	diag.StageElapsed["reconcile"] = time.Since(t0).Seconds()

	log.Printf("[%s] [2/5] analyzing preference graph...", runID)
	t1 := time.Now()
	graph := prefgraph.Build(participants)
	loops := prefgraph.FindLoops(graph)
	diag.StageElapsed["prefgraph"] = time.Since(t1).Seconds()

	log.Printf("[%s] [3/5] building assignment model...", runID)
	t2 := time.Now()
	problem, err := model.Build(participants, loops, weights)
	if err != nil {
		return Result{}, err
	}
	diag.StageElapsed["model"] = time.Since(t2).Seconds()

	log.Printf("[%s] [4/5] solving (budget=%ds)...", runID, cfg.TimeBudgetS)
	t3 := time.Now()

	solveCtx, cancel := context.WithCancel(ctx)
	defer cancel() // guarantee the solver handle is released on every exit path

	status, sol, err := solver.Solve(solveCtx, problem, time.Duration(cfg.TimeBudgetS)*time.Second, cfg.Seed)
	diag.StageElapsed["solve"] = time.Since(t3).Seconds()
	diag.SolverStatus = status.String()
	if err != nil {
		return Result{}, err
	}

	log.Printf("[%s] [5/5] post-processing solution...", runID)
	t4 := time.Now()
	decoded := postprocess.Decode(problem, sol)
	diag.StageElapsed["postprocess"] = time.Since(t4).Seconds()

	diag.GroupsFormed = len(decoded.Groups)
	for _, g := range decoded.Groups {
		switch len(g.Members) {
		case 3:
			diag.Size3Groups++
		case 4:
			diag.Size4Groups++
		}
	}
	loopStudents := map[string]bool{}
	for _, l := range loops {
		for _, m := range l.Members {
			loopStudents[m.Email] = true
		}
	}
	diag.StudentsInLoops = len(loopStudents)

	reportData := report.BuildData(decoded.Groups, missing, loops, diag.Warnings)

	log.Printf("[%s] done: %d groups (%d size-3, %d size-4), status=%s", runID, diag.GroupsFormed, diag.Size3Groups, diag.Size4Groups, status)

	return Result{
		RunID:      runID,
		Groups:     decoded.Groups,
		Unassigned: decoded.Unassigned,
		Loops:      loops,
		Report:     reportData,
		Diag:       diag,
		Status:     status,
	}, nil
}

// ExitCode maps a pipeline error to the exit status spec.md §6 defines.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, apperr.ErrInfeasible):
		return 2
	case errors.Is(err, apperr.ErrSolverTimeout):
		return 3
	case errors.Is(err, apperr.ErrInvalidSurveyRow), errors.Is(err, apperr.ErrInvalidRoster):
		return 4
	default:
		return 1
	}
}
