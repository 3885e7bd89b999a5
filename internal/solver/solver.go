// Package solver implements the Solver Driver (spec.md §4.4): it takes a
// model.Problem, relaxes and branches it to an integer-feasible solution
// within a wall-clock budget, and reports status distinctly for
// Infeasible vs. SolverTimeout vs. TimeLimit-with-incumbent.
//
// Grounded on _examples/other_examples/0cc7b06d_jjhbw-GoMILP__ilp.go.go: a
// branch-and-bound MILP solver over gonum's LP simplex (milpProblem /
// subProblem / incumbent tracking, context-deadline cancellation). That
// file's generic MILP shape is adapted here to the model package's
// participant/group 0/1 variables.
package solver

import (
	"context"
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/model"
)

// Status is the outcome of a solve attempt (spec.md §4.4/§7).
type Status int

const (
	StatusOptimal Status = iota
	StatusTimeLimit
	StatusInfeasible
	StatusSolverTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusTimeLimit:
		return "TimeLimit"
	case StatusInfeasible:
		return "Infeasible"
	case StatusSolverTimeout:
		return "SolverTimeout"
	default:
		return "Unknown"
	}
}

// Solution is the decoded primal assignment: X[v] is the value gonum's
// simplex found for variable v, rounded to the nearest integer for
// integer-constrained variables.
type Solution struct {
	X []float64
}

// subProblem is one node of the branch-and-bound tree: the original
// relaxation plus additional variable-bound tightenings accumulated by
// branching, mirroring jjhbw-GoMILP's subProblem/bnbConstraint pair.
type subProblem struct {
	lb, ub []float64
}

// Solve drives the branch-and-bound search with a wall-clock deadline
// (spec.md §4.4). Default budget is 600s; callers pass the configured
// value. Cancellation is coarse: if the deadline elapses before any
// feasible integer solution is found, it returns StatusSolverTimeout,
// distinct from running out of time with a usable incumbent
// (StatusTimeLimit) or proving infeasibility (StatusInfeasible).
//
// seed breaks ties among equally-fractional branch variables (see
// mostFractional): it rotates each node's scan order, so two runs with the
// same seed explore the tree identically and, when several assignments tie
// on the objective, consistently surface the same one (spec.md §6's
// deterministic-seeding requirement). It has no bearing on completeness —
// every branch is still explored or bounded — only on which tied optimum a
// run reports.
func Solve(ctx context.Context, p *model.Problem, budget time.Duration, seed int64) (Status, *Solution, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	root := subProblem{lb: make([]float64, p.NumVars), ub: append([]float64(nil), p.UB...)}

	var incumbent *Solution
	var incumbentObj float64 = math.Inf(1)
	stack := []subProblem{root}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			if incumbent != nil {
				return StatusTimeLimit, incumbent, nil
			}
			return StatusSolverTimeout, nil, apperr.ErrSolverTimeout
		default:
		}

		sp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, obj, ok := relax(p, sp)
		if !ok {
			continue // this branch is LP-infeasible, prune
		}

		if incumbent != nil && obj >= incumbentObj {
			continue // bound: this branch can't beat the incumbent
		}

		branchVar, frac := mostFractional(p, x, seed)
		if branchVar < 0 {
			// Integer-feasible: candidate incumbent.
			for i := range x {
				if p.Integer[i] {
					x[i] = math.Round(x[i])
				}
			}
			incumbent = &Solution{X: x}
			incumbentObj = obj
			continue
		}

		floorSP := sp
		floorSP.ub = cloneBounds(sp.ub)
		floorSP.ub[branchVar] = math.Floor(frac)
		stack = append(stack, floorSP)

		ceilSP := sp
		ceilSP.lb = cloneBounds(sp.lb)
		ceilSP.lb[branchVar] = math.Ceil(frac)
		stack = append(stack, ceilSP)
	}

	// The stack is only ever emptied once every node has been solved,
	// bounded against the incumbent, or pruned as LP-infeasible — with
	// lower bounds now enforced inside relax (see relax's doc comment),
	// that is an exhaustive search, so a surviving incumbent is proven
	// optimal rather than merely the result of a one-sided dive.
	if incumbent != nil {
		return StatusOptimal, incumbent, nil
	}
	// The search tree was exhausted before the deadline with no integer-
	// feasible node found: the hard constraints admit no assignment.
	return StatusInfeasible, nil, apperr.ErrInfeasible
}

// relax solves the LP relaxation of sp: minimize c^T x s.t. Eq*x=EqRHS,
// Le*x<=LeRHS, lb<=x<=ub. gonum's lp.Simplex only accepts equality
// constraints in standard form (Ax=b, x>=0), so inequalities and both
// variable bounds are converted to equalities with slack/surplus
// variables, the same technique jjhbw-GoMILP's toInitialSubproblem uses.
// Lower bounds above the implicit x>=0 floor — the ones branching
// introduces via ceilSP.lb — get their own row (x_i - surplus_i = lb_i) so
// the simplex itself is constrained by them; without this row a ceil
// branch would re-solve the identical LP as its parent and always be
// pruned, degenerating the search into a floor-only dive.
func relax(p *model.Problem, sp subProblem) ([]float64, float64, bool) {
	eqA, eqB := p.EqMatrix()
	leA, leB := p.LeMatrix()

	numOrig := p.NumVars

	var lbIdx []int
	for i := 0; i < numOrig; i++ {
		if sp.ub[i] < sp.lb[i] {
			return nil, 0, false // branch tightened past feasibility
		}
		if sp.lb[i] > 0 {
			lbIdx = append(lbIdx, i)
		}
	}

	numSlack := numOrig // one slack row per variable upper bound
	if leA != nil {
		numSlack += leA.RawMatrix().Rows
	}
	numSlack += len(lbIdx) // one surplus row per active lower bound

	total := numOrig + numSlack
	rows := 0
	if eqA != nil {
		rows += eqA.RawMatrix().Rows
	}
	if leA != nil {
		rows += leA.RawMatrix().Rows
	}
	rows += numOrig    // upper-bound rows
	rows += len(lbIdx) // lower-bound rows

	A := mat.NewDense(rows, total, nil)
	b := make([]float64, rows)
	c := make([]float64, total)
	copy(c, p.Objective)

	r := 0
	if eqA != nil {
		er, ec := eqA.Dims()
		for i := 0; i < er; i++ {
			for j := 0; j < ec; j++ {
				A.Set(r+i, j, eqA.At(i, j))
			}
			b[r+i] = eqB[i]
		}
		r += er
	}

	slackCol := numOrig
	if leA != nil {
		lr, lc := leA.Dims()
		for i := 0; i < lr; i++ {
			for j := 0; j < lc; j++ {
				A.Set(r+i, j, leA.At(i, j))
			}
			A.Set(r+i, slackCol, 1)
			b[r+i] = leB[i]
			slackCol++
		}
		r += lr
	}

	// x_i + slack_i = ub_i (upper-bound row).
	for i := 0; i < numOrig; i++ {
		A.Set(r, i, 1)
		A.Set(r, slackCol, 1)
		b[r] = sp.ub[i]
		slackCol++
		r++
	}

	// x_i - surplus_i = lb_i (lower-bound row): only emitted where
	// branching raised lb above 0, since x>=0 already holds for every
	// variable in standard form.
	for _, i := range lbIdx {
		A.Set(r, i, 1)
		A.Set(r, slackCol, -1)
		b[r] = sp.lb[i]
		slackCol++
		r++
	}

	x, obj, ok := solveLP(c, A, b)
	if !ok {
		return nil, 0, false
	}

	return x[:numOrig], obj, true
}

func solveLP(c []float64, A *mat.Dense, b []float64) ([]float64, float64, bool) {
	obj, x, err := lp.Simplex(c, A, b, 1e-10, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) || errors.Is(err, lp.ErrSingular) {
			return nil, 0, false
		}
		return nil, 0, false
	}
	return x, obj, true
}

// mostFractional returns the integer-constrained variable whose LP value
// is farthest from an integer, and that value — the classic
// most-fractional branching heuristic jjhbw-GoMILP also defaults to.
// Returns -1 if the solution is already integer-feasible.
//
// seed rotates the scan's starting index so that, when two or more
// variables tie on fractional distance, which one wins the (strict) "dist
// > bestDist" comparison depends on seed rather than always favoring the
// lowest index — this is the variable-selection tie-break spec.md §6's
// seed option promises.
func mostFractional(p *model.Problem, x []float64, seed int64) (int, float64) {
	n := len(x)
	if n == 0 {
		return -1, 0
	}
	offset := int(((seed % int64(n)) + int64(n)) % int64(n))

	best := -1
	bestDist := 1e-6
	for k := 0; k < n; k++ {
		i := (offset + k) % n
		if !p.Integer[i] {
			continue
		}
		frac := x[i] - math.Floor(x[i])
		dist := math.Min(frac, 1-frac)
		if dist > bestDist {
			bestDist = dist
			best = i
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, x[best]
}

func cloneBounds(b []float64) []float64 {
	out := make([]float64, len(b))
	copy(out, b)
	return out
}
