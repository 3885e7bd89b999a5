package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udp-cs/groupassign/internal/domain"
)

func TestPreferenceLoopIsMutualPair(t *testing.T) {
	pair := domain.PreferenceLoop{Members: []*domain.Student{{Name: "A"}, {Name: "B"}}}
	triple := domain.PreferenceLoop{Members: []*domain.Student{{Name: "A"}, {Name: "B"}, {Name: "C"}}}

	assert.True(t, pair.IsMutualPair())
	assert.Equal(t, 2, pair.Len())
	assert.False(t, triple.IsMutualPair())
	assert.Equal(t, 3, triple.Len())
}

func TestPreferenceLoopNames(t *testing.T) {
	l := domain.PreferenceLoop{Members: []*domain.Student{{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"}}}
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, l.Names())
}
