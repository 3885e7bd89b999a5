// Package report renders the two outputs spec.md §6 defines: the
// group-numbered assignment table (CSV) and the plain-text report.
// Grounded on the teacher's internal/exporter package (a dedicated
// serialization layer downstream of the solver), using encoding/csv for
// the table exactly as the teacher's internal/loader/parser_csv.go does
// for input.
package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/udp-cs/groupassign/internal/domain"
)

var assignmentColumns = []string{
	"Group Number", "Email Address", "What is your name?",
	"What is your student ID?", "What is your github.com username?",
}

// WriteAssignment writes one row per participant, sorted by group number
// then email (spec.md §6).
func WriteAssignment(w io.Writer, groups []*domain.Group) error {
	sorted := make([]*domain.Group, len(groups))
	copy(sorted, groups)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(assignmentColumns); err != nil {
		return err
	}
	for _, g := range sorted {
		members := make([]*domain.Student, len(g.Members))
		copy(members, g.Members)
		sort.Slice(members, func(i, j int) bool { return members[i].Email < members[j].Email })
		for _, m := range members {
			row := []string{
				strconv.Itoa(g.Number),
				m.Email,
				m.Name,
				m.StudentID,
				m.GitHub,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return cw.Error()
}
