// Package domain holds the plain value types shared by every stage of the
// group-assignment pipeline: Student, PreferenceLoop, Group and the
// soft-conflict weights. Nothing here talks to a file, a solver, or a
// graph; those live in their own packages and borrow these types.
package domain

// MeetingMode is a student's stated preference for how their group should
// meet.
type MeetingMode string

const (
	MeetingInPerson     MeetingMode = "IN_PERSON"
	MeetingRemote       MeetingMode = "REMOTE"
	MeetingNoPreference MeetingMode = "NO_PREFERENCE"
)

// Student is one participant in the solve: a real survey/roster respondent
// or a synthesized placeholder standing in for a roster-only student.
type Student struct {
	StudentID string
	Name      string
	Email     string
	GitHub    string

	RubySkill int
	HTMLSkill int
	JSSkill   int

	MeetingMode MeetingMode

	// Availability is the set of weekly time-slot tokens the student is
	// free. A nil map means "unknown"; a non-nil empty map means "known,
	// and empty". Neither ever conflicts: AvailabilityConflict only fires
	// for two known, non-empty, disjoint sets.
	Availability map[string]struct{}

	// Section is the student's course section. Empty string means unknown.
	Section string

	// PreferredPartnerEmail is the email the student asked to be grouped
	// with, already lower-cased and trimmed. Empty if none was given.
	PreferredPartnerEmail string

	IsPlaceholder bool
}

// SkillTotal is the sum of the three skill ratings, used for the skill
// floor (hard constraint) and the skill-spread slack (O4).
func (s *Student) SkillTotal() int {
	return s.RubySkill + s.HTMLSkill + s.JSSkill
}

// HasKnownAvailability reports whether the student's availability set was
// ever observed (as opposed to absent/unknown).
func (s *Student) HasKnownAvailability() bool {
	return s.Availability != nil
}

// NewPlaceholder synthesizes a roster-only student per spec.md §3: all
// skills at 2, no meeting preference, no availability, no section.
func NewPlaceholder(studentID, name, email string) *Student {
	return &Student{
		StudentID:     studentID,
		Name:          name,
		Email:         email,
		RubySkill:     2,
		HTMLSkill:     2,
		JSSkill:       2,
		MeetingMode:   MeetingNoPreference,
		IsPlaceholder: true,
	}
}

// AvailabilityConflict reports whether two students' availabilities
// conflict: both known and non-empty, and disjoint.
func AvailabilityConflict(a, b *Student) bool {
	if a.Availability == nil || b.Availability == nil {
		return false
	}
	if len(a.Availability) == 0 || len(b.Availability) == 0 {
		return false
	}
	for slot := range a.Availability {
		if _, ok := b.Availability[slot]; ok {
			return false
		}
	}
	return true
}

// MeetingConflict reports whether two students' meeting-mode preferences
// conflict: one wants IN_PERSON, the other REMOTE.
func MeetingConflict(a, b *Student) bool {
	if a.MeetingMode == MeetingNoPreference || b.MeetingMode == MeetingNoPreference {
		return false
	}
	return a.MeetingMode != b.MeetingMode
}

// SectionConflict reports whether two students are both in a known
// section, and those sections differ.
func SectionConflict(a, b *Student) bool {
	if a.Section == "" || b.Section == "" {
		return false
	}
	return a.Section != b.Section
}
