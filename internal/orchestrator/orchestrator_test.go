package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-cs/groupassign/internal/apperr"
	"github.com/udp-cs/groupassign/internal/config"
	"github.com/udp-cs/groupassign/internal/orchestrator"
)

const header = "Student ID,Name,Email,GitHub Username,Preferred Partner Email,Ruby Skill,HTML/CSS Skill,JavaScript Skill,Meeting Preference,Available Times,Section\n"

func surveyRow(id, name, email, pref string) string {
	return id + "," + name + "," + email + ",gh" + id + "," + pref + ",5,5,5,No Preference,,\n"
}

// TestRunEndToEndSixStudents covers S1-style full-pipeline execution: six
// well-qualified students with no constraints beyond the hard ones should
// solve to two groups of 3 with status Optimal.
func TestRunEndToEndSixStudents(t *testing.T) {
	var survey strings.Builder
	survey.WriteString(header)
	var rosterCSV strings.Builder
	rosterCSV.WriteString("Student ID,Name,Email\n")

	emails := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com", "f@x.com"}
	for i, email := range emails {
		id := string(rune('1' + i))
		survey.WriteString(surveyRow(id, "Student"+id, email, ""))
		rosterCSV.WriteString(id + ",Student" + id + "," + email + "\n")
	}

	cfg := config.Default()
	cfg.TimeBudgetS = 10

	result, err := orchestrator.Run(context.Background(), strings.NewReader(survey.String()), strings.NewReader(rosterCSV.String()), cfg)
	require.NoError(t, err)
	assert.Len(t, result.Groups, 2)
	assert.Empty(t, result.Unassigned)
	assert.Equal(t, "Optimal", result.Diag.SolverStatus)
	assert.NotEmpty(t, result.RunID)
}

func TestRunPropagatesInvalidSurveyAsValidationError(t *testing.T) {
	cfg := config.Default()
	_, err := orchestrator.Run(context.Background(), strings.NewReader("Name,Email\n"), strings.NewReader("Student ID,Name,Email\n"), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidSurveyRow)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, orchestrator.ExitCode(nil))
	assert.Equal(t, 2, orchestrator.ExitCode(apperr.ErrInfeasible))
	assert.Equal(t, 3, orchestrator.ExitCode(apperr.ErrSolverTimeout))
	assert.Equal(t, 4, orchestrator.ExitCode(apperr.ErrInvalidSurveyRow))
	assert.Equal(t, 4, orchestrator.ExitCode(apperr.ErrInvalidRoster))
	assert.Equal(t, 1, orchestrator.ExitCode(errors.New("boom")))
}
