package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udp-cs/groupassign/internal/domain"
)

func student(email string, ruby, html, js int) *domain.Student {
	return &domain.Student{Email: email, RubySkill: ruby, HTMLSkill: html, JSSkill: js}
}

func TestSkillTotal(t *testing.T) {
	s := student("a@example.com", 3, 4, 5)
	assert.Equal(t, 12, s.SkillTotal())
}

func TestNewPlaceholder(t *testing.T) {
	p := domain.NewPlaceholder("S1", "Placeholder One", "p1@example.com")
	assert.True(t, p.IsPlaceholder)
	assert.Equal(t, 6, p.SkillTotal())
	assert.Equal(t, domain.MeetingNoPreference, p.MeetingMode)
	assert.False(t, p.HasKnownAvailability())
}

func TestHasKnownAvailability(t *testing.T) {
	known := &domain.Student{Availability: map[string]struct{}{}}
	unknown := &domain.Student{}
	assert.True(t, known.HasKnownAvailability())
	assert.False(t, unknown.HasKnownAvailability())
}

func TestAvailabilityConflict(t *testing.T) {
	cases := []struct {
		name     string
		a, b     *domain.Student
		conflict bool
	}{
		{
			name:     "disjoint known sets conflict",
			a:        &domain.Student{Availability: map[string]struct{}{"Mon10": {}}},
			b:        &domain.Student{Availability: map[string]struct{}{"Tue10": {}}},
			conflict: true,
		},
		{
			name:     "overlapping known sets do not conflict",
			a:        &domain.Student{Availability: map[string]struct{}{"Mon10": {}, "Tue10": {}}},
			b:        &domain.Student{Availability: map[string]struct{}{"Tue10": {}}},
			conflict: false,
		},
		{
			name:     "unknown availability never conflicts",
			a:        &domain.Student{Availability: nil},
			b:        &domain.Student{Availability: map[string]struct{}{"Tue10": {}}},
			conflict: false,
		},
		{
			name:     "known empty set never conflicts",
			a:        &domain.Student{Availability: map[string]struct{}{}},
			b:        &domain.Student{Availability: map[string]struct{}{"Tue10": {}}},
			conflict: false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.conflict, domain.AvailabilityConflict(c.a, c.b))
		})
	}
}

func TestMeetingConflict(t *testing.T) {
	inPerson := &domain.Student{MeetingMode: domain.MeetingInPerson}
	remote := &domain.Student{MeetingMode: domain.MeetingRemote}
	noPref := &domain.Student{MeetingMode: domain.MeetingNoPreference}

	assert.True(t, domain.MeetingConflict(inPerson, remote))
	assert.False(t, domain.MeetingConflict(inPerson, noPref))
	assert.False(t, domain.MeetingConflict(inPerson, inPerson))
}

func TestSectionConflict(t *testing.T) {
	a := &domain.Student{Section: "A"}
	b := &domain.Student{Section: "B"}
	unknown := &domain.Student{Section: ""}

	assert.True(t, domain.SectionConflict(a, b))
	assert.False(t, domain.SectionConflict(a, a))
	assert.False(t, domain.SectionConflict(a, unknown))
}
