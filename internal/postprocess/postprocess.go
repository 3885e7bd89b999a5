// Package postprocess implements the Post-Processor (spec.md §4.5):
// decoding x[s,g] into concrete groups, renumbering them stably, and
// sorting members. Grounded on the teacher's
// internal/exporter/json_exporter.go, which sorts derived keys
// (sort.Slice) before serializing — the same sort-then-renumber shape,
// applied here to groups instead of a schedule grid.
package postprocess

import (
	"sort"

	"github.com/udp-cs/groupassign/internal/domain"
	"github.com/udp-cs/groupassign/internal/model"
	"github.com/udp-cs/groupassign/internal/solver"
)

// Result is the final (participant, group_number) table plus the
// unassigned list, which must be empty on success (spec.md §4.5).
type Result struct {
	Groups     []*domain.Group
	Unassigned []*domain.Student
}

// Decode turns a solver.Solution's x[s,g] values into domain.Group
// records, discards empty slots, renumbers the remaining groups starting
// at 1 in ascending order of the minimum member email, and sorts members
// within each group by email.
func Decode(p *model.Problem, sol *solver.Solution) Result {
	slots := make([][]*domain.Student, p.NumSlots)
	assigned := make(map[string]bool, len(p.Students))

	for s, row := range p.GroupVar {
		for g, v := range row {
			if sol.X[v] > 0.5 {
				slots[g] = append(slots[g], p.Students[s])
				assigned[p.Students[s].Email] = true
			}
		}
	}

	var groups []*domain.Group
	for _, members := range slots {
		if len(members) == 0 {
			continue
		}
		sorted := append([]*domain.Student(nil), members...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Email < sorted[j].Email })
		groups = append(groups, &domain.Group{Members: sorted})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Members[0].Email < groups[j].Members[0].Email
	})
	for i, g := range groups {
		g.Number = i + 1
	}

	var unassigned []*domain.Student
	for _, st := range p.Students {
		if !assigned[st.Email] {
			unassigned = append(unassigned, st)
		}
	}
	sort.Slice(unassigned, func(i, j int) bool { return unassigned[i].Email < unassigned[j].Email })

	return Result{Groups: groups, Unassigned: unassigned}
}
