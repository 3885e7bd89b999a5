package model

import (
	"sort"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/domain"
)

type pair struct{ i, j int }

// Build constructs the full 0/1 program for spec.md §4.3: decision
// variables x[s,g]/used[g]/four[g], the six hard constraints, the three
// soft-conflict literal families, the preference-satisfaction count, the
// skill-spread slack, and the scalarized lexicographic objective.
func Build(participants []*domain.Student, loops []domain.PreferenceLoop, weights domain.SoftConflictWeights) (*Problem, error) {
	n := len(participants)
	gmax, err := groupCount(n)
	if err != nil {
		return nil, err
	}
	if !weights.Valid() {
		return nil, apperr.ErrInternalSolver
	}

	// Stable participant order (by email) so variable indices — and
	// therefore the solver's search order — are reproducible (P9).
	students := make([]*domain.Student, n)
	copy(students, participants)
	sort.Slice(students, func(i, j int) bool { return students[i].Email < students[j].Email })
	indexOf := make(map[string]int, n)
	for i, s := range students {
		indexOf[s.Email] = i
	}

	p := newProblem()
	p.Students = students
	p.NumSlots = gmax

	x := make([][]Var, n)
	for s := range x {
		x[s] = make([]Var, gmax)
		for g := range x[s] {
			x[s][g] = p.newVar(participantName(s), 1, true)
		}
	}
	p.GroupVar = x

	used := make([]Var, gmax)
	four := make([]Var, gmax)
	for g := 0; g < gmax; g++ {
		used[g] = p.newVar("used", 1, true)
		four[g] = p.newVar("four", 1, true)
	}

	// Hard constraint 1: exactly-one group per participant.
	for s := 0; s < n; s++ {
		coeffs := make(map[Var]float64, gmax)
		for g := 0; g < gmax; g++ {
			coeffs[x[s][g]] = 1
		}
		p.addEq(coeffs, 1)
	}

	for g := 0; g < gmax; g++ {
		groupSum := make(map[Var]float64, n)
		for s := 0; s < n; s++ {
			groupSum[x[s][g]] = 1
		}

		// Hard constraint 2: 3*used <= sum x <= 4*used.
		leUpper := cloneCoeffs(groupSum)
		leUpper[used[g]] = -4
		p.addLE(leUpper, 0) // sum x - 4*used <= 0

		leLower := negateCoeffs(groupSum)
		leLower[used[g]] = 3
		p.addLE(leLower, 0) // -sum x + 3*used <= 0

		// Hard constraint 3: four[g] == 1 iff sum x == 4.
		foursLower := cloneCoeffs(map[Var]float64{four[g]: 4})
		foursLower = subtract(foursLower, groupSum)
		p.addLE(foursLower, 0) // 4*four - sum x <= 0

		foursUpper := cloneCoeffs(groupSum)
		foursUpper[four[g]] = -1
		p.addLE(foursUpper, 3) // sum x - four <= 3

		// Hard constraint 4: skill floor, total skill >= 5*size.
		skillRow := make(map[Var]float64, n)
		for s := 0; s < n; s++ {
			skillRow[x[s][g]] = 5 - float64(students[s].SkillTotal())
		}
		p.addLE(skillRow, 0) // 5*sum x - sum skill*x <= 0

		// Hard constraint 5: at most one placeholder per group.
		placeholderRow := make(map[Var]float64)
		for s := 0; s < n; s++ {
			if students[s].IsPlaceholder {
				placeholderRow[x[s][g]] = 1
			}
		}
		if len(placeholderRow) > 0 {
			p.addLE(placeholderRow, 1)
		}
	}

	// Hard constraint 6: mutual preferred-partner pairs co-locate.
	mutualPairs := map[pair]bool{}
	for _, l := range loops {
		if l.IsMutualPair() {
			a, b := indexOf[l.Members[0].Email], indexOf[l.Members[1].Email]
			mutualPairs[sortedPair(a, b)] = true
		}
	}
	sortedMutual := make([]pair, 0, len(mutualPairs))
	for pr := range mutualPairs {
		sortedMutual = append(sortedMutual, pr)
	}
	sort.Slice(sortedMutual, func(a, b int) bool {
		if sortedMutual[a].i != sortedMutual[b].i {
			return sortedMutual[a].i < sortedMutual[b].i
		}
		return sortedMutual[a].j < sortedMutual[b].j
	})
	for _, pr := range sortedMutual {
		for g := 0; g < gmax; g++ {
			p.addEq(map[Var]float64{x[pr.i][g]: 1, x[pr.j][g]: -1}, 0)
		}
	}

	weightsTotal := weights.Avail + weights.Meet + weights.Section
	uC := float64(weightsTotal * n * n)
	uS := float64(15 * n)

	// Soft-conflict literals: only materialized for pairs that actually
	// conflict statically, since a non-conflicting pair's c_t is always
	// forced to 0 and contributes nothing to C either way.
	type softFamily struct {
		weight int
		check  func(a, b *domain.Student) bool
	}
	families := []softFamily{
		{weights.Avail, domain.AvailabilityConflict},
		{weights.Meet, domain.MeetingConflict},
		{weights.Section, domain.SectionConflict},
	}

	for _, fam := range families {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if !fam.check(students[i], students[j]) {
					continue
				}
				for g := 0; g < gmax; g++ {
					c := p.newVar("conflict", 1, false)
					p.addObjective(c, uS*float64(fam.weight))

					p.addLE(map[Var]float64{x[i][g]: 1, x[j][g]: 1, c: -1}, 1) // x_i+x_j-c<=1
					p.addLE(map[Var]float64{c: 1, x[i][g]: -1}, 0)             // c<=x_i
					p.addLE(map[Var]float64{c: 1, x[j][g]: -1}, 0)             // c<=x_j
				}
			}
		}
	}

	// Preference-satisfaction count: one indicator per non-mutual directed
	// edge per group.
	var nonMutualEdges []pair
	for _, s := range students {
		if s.PreferredPartnerEmail == "" {
			continue
		}
		u := indexOf[s.Email]
		v, ok := indexOf[s.PreferredPartnerEmail]
		if !ok {
			continue
		}
		if mutualPairs[sortedPair(u, v)] {
			continue
		}
		nonMutualEdges = append(nonMutualEdges, pair{u, v})
	}
	uP := float64(len(nonMutualEdges) * gmax)

	for _, e := range nonMutualEdges {
		for g := 0; g < gmax; g++ {
			pv := p.newVar("pref", 1, false)
			p.addLE(map[Var]float64{pv: 1, x[e.i][g]: -1}, 0)
			p.addLE(map[Var]float64{pv: 1, x[e.j][g]: -1}, 0)
			p.addObjective(pv, -k2(uC, uS))
		}
	}

	// Loop co-location hints: loops of length 3 or 4 get a soft reward for
	// landing entirely in one group; longer loops cannot fit a group and
	// get no variable (still reported by the graph analyzer).
	k2LoopVal := k2Loop(uC, uS)
	k1Val := k1(uP, k2(uC, uS))

	for _, l := range loops {
		if l.Len() < 3 || l.Len() > 4 {
			continue
		}
		members := make([]int, len(l.Members))
		for i, m := range l.Members {
			members[i] = indexOf[m.Email]
		}
		for g := 0; g < gmax; g++ {
			lv := p.newVar("loop", 1, false)
			for _, s := range members {
				p.addLE(map[Var]float64{lv: 1, x[s][g]: -1}, 0)
			}
			p.addObjective(lv, -k2LoopVal)
		}
	}

	// Skill-spread slack: T_max >= T_g, T_min <= T_g + M*(1-used[g]).
	bigM := uS
	tMax := p.newVar("t_max", uS, false)
	tMin := p.newVar("t_min", uS, false)
	p.addObjective(tMax, 1)
	p.addObjective(tMin, -1)

	for g := 0; g < gmax; g++ {
		tRow := make(map[Var]float64, n+1)
		for s := 0; s < n; s++ {
			tRow[x[s][g]] = float64(students[s].SkillTotal())
		}

		upperRow := cloneCoeffs(tRow)
		upperRow[tMax] = -1
		p.addLE(upperRow, 0) // sum skill*x - T_max <= 0  (T_max >= T_g)

		lowerRow := negateCoeffs(tRow)
		lowerRow[tMin] = 1
		lowerRow[used[g]] = bigM
		p.addLE(lowerRow, bigM) // T_min - sum skill*x + M*used <= M
	}

	// Objective: -K1*four[g] (maximize size-4 count) and the already-set
	// per-variable coefficients above for P, loops, C and S.
	for g := 0; g < gmax; g++ {
		p.addObjective(four[g], -k1Val)
	}

	p.finalize()
	return p, nil
}

func sortedPair(a, b int) pair {
	if a < b {
		return pair{a, b}
	}
	return pair{b, a}
}

func cloneCoeffs(m map[Var]float64) map[Var]float64 {
	out := make(map[Var]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func negateCoeffs(m map[Var]float64) map[Var]float64 {
	out := make(map[Var]float64, len(m))
	for k, v := range m {
		out[k] = -v
	}
	return out
}

func subtract(a, b map[Var]float64) map[Var]float64 {
	out := cloneCoeffs(a)
	for k, v := range b {
		out[k] -= v
	}
	return out
}

// k3 is the base unit weight of the scalarization (spec.md §4.3).
func k3() float64 { return 1 }

// k2 separates O2 (honored preferences) from the combined O3+O4 terms:
// K2 = U_C*(U_S+1), an upper bound on w*C + S for any feasible solution.
func k2(uC, uS float64) float64 { return uC * (uS + 1) }

// k2Loop sits strictly between O2 and O3: it must exceed the worst-case
// O3+O4 bound (U_S*U_C + U_S) but stay below K2 so it never outweighs a
// single honored preference. K2Loop is placed at exactly that bound plus a
// unit of slack; K2 = U_C*(U_S+1) = U_S*U_C + U_C is larger whenever
// U_C > U_S + 1, which holds for every N >= 3 with valid weights
// (U_C >= 6*N*N, U_S = 15*N).
func k2Loop(uC, uS float64) float64 { return uS*uC + uS + 1 }

// k1 separates O1 (size-4 count) from everything below it: it must exceed
// U_P honored preferences each weighted K2, per spec.md §4.3.
func k1(uP, k2Val float64) float64 { return uP*k2Val + k2Val }
