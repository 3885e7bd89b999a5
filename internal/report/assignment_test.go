package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-cs/groupassign/internal/domain"
	"github.com/udp-cs/groupassign/internal/report"
)

func TestWriteAssignmentOrdersByGroupThenEmail(t *testing.T) {
	g1 := &domain.Group{Number: 1, Members: []*domain.Student{
		{Email: "b@x.com", Name: "Bob", StudentID: "S2", GitHub: "bobgh"},
		{Email: "a@x.com", Name: "Alice", StudentID: "S1", GitHub: "alicegh"},
	}}
	g2 := &domain.Group{Number: 2, Members: []*domain.Student{
		{Email: "c@x.com", Name: "Carol", StudentID: "S3", GitHub: "carolgh"},
	}}

	var buf bytes.Buffer
	require.NoError(t, report.WriteAssignment(&buf, []*domain.Group{g2, g1}))

	out := buf.String()
	assert.Contains(t, out, "Group Number,Email Address")
	idxA := bytes.Index(buf.Bytes(), []byte("a@x.com"))
	idxB := bytes.Index(buf.Bytes(), []byte("b@x.com"))
	idxC := bytes.Index(buf.Bytes(), []byte("c@x.com"))
	assert.Less(t, idxA, idxB)
	assert.Less(t, idxB, idxC)
}
