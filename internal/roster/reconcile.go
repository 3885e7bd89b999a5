// Package roster implements the Roster Reconciler (spec.md §4.1): merging
// survey respondents with roster records, flagging missing students, and
// optionally synthesizing placeholders for them. Grounded on the
// teacher's internal/loader/domain_builder.go (a builder that assembles
// a domain model from raw rows in dependency order) and
// internal/loader/validator.go (structural vs. row-level error split).
package roster

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/domain"
)

var surveyRequiredColumns = []string{
	"Student ID", "Name", "Email", "GitHub Username",
	"Preferred Partner Email", "Ruby Skill", "HTML/CSS Skill",
	"JavaScript Skill", "Meeting Preference", "Available Times", "Section",
}

var rosterRequiredColumns = []string{"Student ID", "Name", "Email"}

// MissingStudent is a roster entry with no matching survey response.
type MissingStudent struct {
	Name  string
	Email string
}

// ParseSurvey reads the survey CSV into Student records keyed by email
// (an unordered map); duplicates are coalesced keeping the last (most recent by
// submission order) occurrence, with a warning recorded for each.
// Structural errors (a missing required column) fail immediately with
// ErrInvalidSurveyRow wrapped in a ValidationError; per-row parse errors
// are recovered by dropping the row with a warning (spec.md §7).
func ParseSurvey(r io.Reader, diag *apperr.Diagnostics) (map[string]*domain.Student, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if missing := t.requireColumns(surveyRequiredColumns...); len(missing) > 0 {
		return nil, &apperr.ValidationError{
			Kind:   apperr.ErrInvalidSurveyRow,
			Issues: []string{fmt.Sprintf("survey is missing required column(s): %s", strings.Join(missing, ", "))},
		}
	}

	byEmail := make(map[string]*domain.Student)
	order := make(map[string]int)
	for i, row := range t.rows {
		email := strings.ToLower(t.cell(row, "Email"))
		if email == "" {
			diag.Warn(apperr.ErrInvalidSurveyRow, "survey row %d: empty email, dropped", i+2)
			continue
		}

		student, err := parseSurveyRow(t, row, email)
		if err != nil {
			diag.Warn(apperr.ErrInvalidSurveyRow, "survey row %d (%s): %v, dropped", i+2, email, err)
			continue
		}

		if _, exists := byEmail[email]; exists {
			diag.Warn(apperr.ErrDuplicateEmail, "duplicate survey submission for %s, keeping most recent", email)
		}
		byEmail[email] = student
		order[email] = i
	}

	return byEmail, nil
}

func parseSurveyRow(t *table, row []string, email string) (*domain.Student, error) {
	ruby, err := parseSkill(t.cell(row, "Ruby Skill"))
	if err != nil {
		return nil, fmt.Errorf("ruby skill: %w", err)
	}
	html, err := parseSkill(t.cell(row, "HTML/CSS Skill"))
	if err != nil {
		return nil, fmt.Errorf("html/css skill: %w", err)
	}
	js, err := parseSkill(t.cell(row, "JavaScript Skill"))
	if err != nil {
		return nil, fmt.Errorf("javascript skill: %w", err)
	}

	return &domain.Student{
		StudentID:             t.cell(row, "Student ID"),
		Name:                  t.cell(row, "Name"),
		Email:                 email,
		GitHub:                t.cell(row, "GitHub Username"),
		RubySkill:             ruby,
		HTMLSkill:             html,
		JSSkill:               js,
		MeetingMode:           parseMeetingMode(t.cell(row, "Meeting Preference")),
		Availability:          parseAvailability(t.cell(row, "Available Times")),
		Section:               t.cell(row, "Section"),
		PreferredPartnerEmail: strings.ToLower(strings.TrimSpace(t.cell(row, "Preferred Partner Email"))),
	}, nil
}

func parseSkill(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("out of range [1,5]: %d", n)
	}
	return n, nil
}

func parseMeetingMode(s string) domain.MeetingMode {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(lower, "in person"):
		return domain.MeetingInPerson
	case strings.HasPrefix(lower, "remote"):
		return domain.MeetingRemote
	case strings.HasPrefix(lower, "no preference"):
		return domain.MeetingNoPreference
	default:
		return domain.MeetingNoPreference
	}
}

// parseAvailability splits a delimiter-separated token list into a set.
// An empty cell means "unknown" (nil map); a non-empty cell that yields no
// tokens after trimming still counts as "known, empty".
func parseAvailability(s string) map[string]struct{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}

// rosterRow is one line of the course roster.
type rosterRow struct {
	StudentID string
	Name      string
	Email     string
}

// ParseRoster reads the roster CSV. Only Student ID, Name and Email are
// required; extra columns are ignored (spec.md §6).
func ParseRoster(r io.Reader) ([]rosterRow, error) {
	t, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	if missing := t.requireColumns(rosterRequiredColumns...); len(missing) > 0 {
		return nil, &apperr.ValidationError{
			Kind:   apperr.ErrInvalidRoster,
			Issues: []string{fmt.Sprintf("roster is missing required column(s): %s", strings.Join(missing, ", "))},
		}
	}

	rows := make([]rosterRow, 0, len(t.rows))
	for _, row := range t.rows {
		email := strings.ToLower(t.cell(row, "Email"))
		if email == "" {
			continue
		}
		rows = append(rows, rosterRow{
			StudentID: t.cell(row, "Student ID"),
			Name:      t.cell(row, "Name"),
			Email:     email,
		})
	}
	return rows, nil
}

// Reconcile merges survey respondents with roster records (spec.md
// §4.1). A roster entry with no matching survey email is "missing"; when
// includeMissing is true each missing entry becomes a placeholder
// participant, otherwise it is excluded entirely. Unresolvable preferred-
// partner emails are dropped with a warning, never failing the run.
func Reconcile(survey map[string]*domain.Student, rosterRows []rosterRow, includeMissing bool, diag *apperr.Diagnostics) ([]*domain.Student, []MissingStudent) {
	participants := make([]*domain.Student, 0, len(survey))
	seen := make(map[string]bool, len(survey))

	rosterEmails := make(map[string]rosterRow, len(rosterRows))
	for _, r := range rosterRows {
		rosterEmails[r.Email] = r
	}

	var missing []MissingStudent
	for _, r := range rosterRows {
		if s, ok := survey[r.Email]; ok {
			if !seen[r.Email] {
				participants = append(participants, s)
				seen[r.Email] = true
			}
			continue
		}
		missing = append(missing, MissingStudent{Name: r.Name, Email: r.Email})
		if includeMissing {
			placeholder := domain.NewPlaceholder(r.StudentID, r.Name, r.Email)
			participants = append(participants, placeholder)
			seen[r.Email] = true
		}
	}

	// Survey respondents who never appear on the roster are still
	// eligible participants: the roster is the source of truth for
	// "missing", not for exclusion.
	extraEmails := make([]string, 0)
	for email, s := range survey {
		if seen[email] {
			continue
		}
		extraEmails = append(extraEmails, email)
		_ = s
	}
	sort.Strings(extraEmails)
	for _, email := range extraEmails {
		participants = append(participants, survey[email])
		seen[email] = true
	}

	byEmail := make(map[string]*domain.Student, len(participants))
	for _, p := range participants {
		byEmail[p.Email] = p
	}

	for _, p := range participants {
		if p.PreferredPartnerEmail == "" {
			continue
		}
		if _, ok := byEmail[p.PreferredPartnerEmail]; !ok {
			diag.Warn(apperr.ErrUnresolvablePreference, "%s's preferred partner %q does not resolve to a participant, dropped", p.Email, p.PreferredPartnerEmail)
			p.PreferredPartnerEmail = ""
		}
	}

	diag.MissingStudents = len(missing)
	diag.StudentsProcessed = len(participants)

	sort.Slice(missing, func(i, j int) bool { return missing[i].Email < missing[j].Email })
	return participants, missing
}
