// Package apperr defines the sentinel error kinds the pipeline can raise
// (spec.md §7) and the diagnostics bag that threads warnings, counts and
// elapsed times from the Orchestrator to the report writer. Grounded on
// the teacher's internal/loader/validator.go ValidationError, which
// aggregates multiple row-level problems into a single structural error
// while keeping fatal and recoverable issues apart.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors, checked with errors.Is. Exit codes (spec.md §6) are
// derived from these by orchestrator.ExitCode.
var (
	ErrInvalidSurveyRow      = errors.New("invalid survey row")
	ErrInvalidRoster         = errors.New("invalid roster")
	ErrUnresolvablePreference = errors.New("unresolvable preferred-partner email")
	ErrDuplicateEmail        = errors.New("duplicate email coalesced")
	ErrInfeasible            = errors.New("infeasible: no assignment satisfies the hard constraints")
	ErrSolverTimeout         = errors.New("solver timeout: no feasible solution found before the deadline")
	ErrInternalSolver        = errors.New("internal solver error")
)

// ValidationError aggregates structural, fatal problems found while
// reconciling a single input file (missing required columns, empty
// roster, etc). Mirrors the teacher's ValidationError: one error that can
// report everything wrong at once instead of failing on the first row.
type ValidationError struct {
	Kind   error
	Issues []string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d issue(s) found:\n- %s", v.Kind, len(v.Issues), joinLines(v.Issues))
}

func (v *ValidationError) Unwrap() error { return v.Kind }

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += l
	}
	return out
}

// Warning is a single recoverable, row-level issue: the row or edge was
// dropped but the run continues. Accumulated in a Diagnostics bag and
// rendered in the report; never affects exit status (spec.md §7).
type Warning struct {
	Kind    error
	Message string
}

func (w Warning) String() string { return w.Message }

// Diagnostics is the bag threaded through the whole pipeline: counts,
// elapsed times per stage, solver status, and accumulated warnings.
type Diagnostics struct {
	Warnings []Warning

	StudentsProcessed int
	MissingStudents   int
	GroupsFormed      int
	Size3Groups       int
	Size4Groups       int
	StudentsInLoops   int

	SolverStatus string
	StageElapsed map[string]float64 // seconds, keyed by stage name
}

// NewDiagnostics returns an empty bag ready to accumulate.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{StageElapsed: make(map[string]float64)}
}

// Warn records a recoverable warning.
func (d *Diagnostics) Warn(kind error, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{Kind: kind, Message: fmt.Sprintf(format, args...)})
}
