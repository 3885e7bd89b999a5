// Package model implements the Assignment Model Builder (spec.md §4.3):
// it turns a participant set and the detected preference loops into an
// explicit 0/1 integer program — decision variables, hard constraints,
// soft-cost literals, and the lexicographic objective scalarized into a
// single linear expression.
//
// Grounded on the teacher's internal/solver/solution.go (a builder that
// produces an explicit struct consumed by a separate solve step); the
// constraint-matrix shape mirrors _examples/other_examples/
// 0cc7b06d_jjhbw-GoMILP__ilp.go.go's milpProblem (c, A, b, G, h plus an
// integrality mask), which is what internal/solver.Solve consumes.
package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/domain"
)

// Var is an opaque handle to a decision variable.
type Var int

// Problem is a 0/1 (and a few continuous slack) linear program:
//
//	minimize   c^T x
//	subject to Eq*x = EqRHS
//	           Le*x <= LeRHS
//	           0 <= x <= UB, x_i integer where Integer[i]
type Problem struct {
	NumVars   int
	Names     []string
	Integer   []bool
	UB        []float64
	Objective []float64

	eqRows [][]float64
	eqRHS  []float64
	leRows [][]float64
	leRHS  []float64

	// GroupVar[s][g] is the x[s,g] handle, kept for the Post-Processor to
	// decode the solution back into groups.
	GroupVar [][]Var
	Students []*domain.Student
	NumSlots int
}

func newProblem() *Problem {
	return &Problem{}
}

func (p *Problem) newVar(name string, ub float64, integer bool) Var {
	p.Names = append(p.Names, name)
	p.UB = append(p.UB, ub)
	p.Integer = append(p.Integer, integer)
	p.Objective = append(p.Objective, 0)
	p.NumVars++
	return Var(p.NumVars - 1)
}

func (p *Problem) addObjective(v Var, coeff float64) {
	p.Objective[v] += coeff
}

func (p *Problem) addEq(coeffs map[Var]float64, rhs float64) {
	row := make([]float64, p.NumVars)
	for v, c := range coeffs {
		row[v] = c
	}
	p.eqRows = append(p.eqRows, row)
	p.eqRHS = append(p.eqRHS, rhs)
}

func (p *Problem) addLE(coeffs map[Var]float64, rhs float64) {
	row := make([]float64, p.NumVars)
	for v, c := range coeffs {
		row[v] = c
	}
	p.leRows = append(p.leRows, row)
	p.leRHS = append(p.leRHS, rhs)
}

// finalize pads every accumulated row out to NumVars (rows added before
// later variables existed are shorter). The dense matrices the solver
// consumes are built on demand by EqMatrix and LeMatrix.
func (p *Problem) finalize() {
	for i, row := range p.eqRows {
		if len(row) < p.NumVars {
			p.eqRows[i] = growRow(row, p.NumVars)
		}
	}
	for i, row := range p.leRows {
		if len(row) < p.NumVars {
			p.leRows[i] = growRow(row, p.NumVars)
		}
	}
}

func growRow(row []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, row)
	return out
}

// EqMatrix returns the equality constraint matrix (may be nil if there are
// no equality constraints).
func (p *Problem) EqMatrix() (*mat.Dense, []float64) {
	if len(p.eqRows) == 0 {
		return nil, nil
	}
	m := mat.NewDense(len(p.eqRows), p.NumVars, nil)
	for i, row := range p.eqRows {
		m.SetRow(i, row)
	}
	return m, p.eqRHS
}

// LeMatrix returns the inequality constraint matrix (Le*x <= LeRHS).
func (p *Problem) LeMatrix() (*mat.Dense, []float64) {
	if len(p.leRows) == 0 {
		return nil, nil
	}
	m := mat.NewDense(len(p.leRows), p.NumVars, nil)
	for i, row := range p.leRows {
		m.SetRow(i, row)
	}
	return m, p.leRHS
}

func participantName(idx int) string { return fmt.Sprintf("s%d", idx) }

// groupCount computes G_max = floor(N/3) and validates size-feasibility
// (spec.md §4.3). Any N >= 3 admits a partition into groups of size 3 or
// 4 except N == ... well N mod 4 == 1 with N < 9 is infeasible (e.g. N=5
// needs one group of 5, impossible; N=1 likewise) — the solver's hard
// constraints will catch any remaining infeasibility, this only rejects
// the trivially-impossible N < 3 case per spec.md §4.3.
func groupCount(n int) (int, error) {
	if n < 3 {
		return 0, apperr.ErrInfeasible
	}
	return n / 3, nil
}

// sortedEmails returns participant emails in ascending order. Build does
// not call it; it sorts its own copy of the participant slice by email.
func sortedEmails(students []*domain.Student) []string {
	emails := make([]string, len(students))
	for i, s := range students {
		emails[i] = s.Email
	}
	sort.Strings(emails)
	return emails
}
