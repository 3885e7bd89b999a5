package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/domain"
	"github.com/udp-cs/groupassign/internal/model"
)

func mkStudents(n int, skill int) []*domain.Student {
	students := make([]*domain.Student, n)
	for i := 0; i < n; i++ {
		students[i] = &domain.Student{
			Name:        string(rune('A' + i)),
			Email:       string(rune('a'+i)) + "@x.com",
			RubySkill:   skill,
			HTMLSkill:   skill,
			JSSkill:     skill,
			MeetingMode: domain.MeetingNoPreference,
		}
	}
	return students
}

func TestBuildTooFewParticipantsIsInfeasible(t *testing.T) {
	_, err := model.Build(mkStudents(2, 2), nil, domain.DefaultWeights())
	assert.ErrorIs(t, err, apperr.ErrInfeasible)
}

func TestBuildRejectsInvalidWeights(t *testing.T) {
	bad := domain.SoftConflictWeights{Avail: 1, Meet: 1, Section: 1}
	_, err := model.Build(mkStudents(4, 3), nil, bad)
	require.Error(t, err)
}

func TestBuildGroupSlotCount(t *testing.T) {
	p, err := model.Build(mkStudents(9, 3), nil, domain.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, 3, p.NumSlots)
	assert.Len(t, p.GroupVar, 9)
	for _, row := range p.GroupVar {
		assert.Len(t, row, 3)
	}
}

func TestBuildMutualPairDoesNotErrorAndPreservesSlots(t *testing.T) {
	students := mkStudents(6, 3)
	loop := domain.PreferenceLoop{Members: []*domain.Student{students[0], students[1]}}

	p, err := model.Build(students, []domain.PreferenceLoop{loop}, domain.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumSlots)
}

func TestBuildNonMutualPreferenceAddsIndicatorVariables(t *testing.T) {
	students := mkStudents(6, 3)
	students[0].PreferredPartnerEmail = students[1].Email

	withPref, err := model.Build(students, nil, domain.DefaultWeights())
	require.NoError(t, err)

	students[0].PreferredPartnerEmail = ""
	withoutPref, err := model.Build(students, nil, domain.DefaultWeights())
	require.NoError(t, err)

	assert.Greater(t, withPref.NumVars, withoutPref.NumVars)
}
