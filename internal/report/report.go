package report

import (
	"io"
	"strings"
	"text/template"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/domain"
	"github.com/udp-cs/groupassign/internal/roster"
)

// Data is everything the report template needs, assembled by the
// orchestrator from the diagnostics bag and the final groups.
type Data struct {
	TotalStudents   int
	GroupsFormed    int
	Size3Groups     int
	Size4Groups     int
	StudentsInLoops int
	Unassigned      []roster.MissingStudent
	Loops           []domain.PreferenceLoop
	Warnings        []apperr.Warning
}

const reportTemplate = `Total students processed: {{.TotalStudents}}
Number of groups formed: {{.GroupsFormed}}
Size-3 groups: {{.Size3Groups}}
Size-4 groups: {{.Size4Groups}}
Students in a preference loop: {{.StudentsInLoops}}

Unassigned students:
{{- range .Unassigned}}
{{.Name}} ({{.Email}})
{{- end}}

Detected {{len .Loops}} preference loop(s) involving {{.StudentsInLoops}} students:
{{- range .Loops}}
{{loopLine .}}
{{- end}}
`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"loopLine": loopLine,
}).Parse(reportTemplate))

func loopLine(l domain.PreferenceLoop) string {
	names := l.Names()
	names = append(names, names[0])
	return strings.Join(names, " -> ")
}

// Write renders the plain-text report in the fixed section order spec.md
// §6 defines.
func Write(w io.Writer, d Data) error {
	return tmpl.Execute(w, d)
}

// BuildData assembles Data from the pipeline's final state. Kept separate
// from Data itself so the orchestrator can pass raw results without this
// package reaching back into orchestrator internals.
func BuildData(groups []*domain.Group, unassigned []roster.MissingStudent, loops []domain.PreferenceLoop, warnings []apperr.Warning) Data {
	size3, size4 := 0, 0
	total := 0
	for _, g := range groups {
		total += len(g.Members)
		switch len(g.Members) {
		case 3:
			size3++
		case 4:
			size4++
		}
	}

	loopStudents := map[string]bool{}
	for _, l := range loops {
		for _, m := range l.Members {
			loopStudents[m.Email] = true
		}
	}

	return Data{
		TotalStudents:   total,
		GroupsFormed:    len(groups),
		Size3Groups:     size3,
		Size4Groups:     size4,
		StudentsInLoops: len(loopStudents),
		Unassigned:      unassigned,
		Loops:           loops,
		Warnings:        warnings,
	}
}
