package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seatmap/internal/layout"
)

func TestSearchGateDiscardsStaleResponses(t *testing.T) {
	gate := &layout.SearchGate{}

	first := gate.Begin()
	second := gate.Begin()

	// The later dispatch wins even when the earlier response arrives last.
	assert.True(t, gate.Accept(second))
	assert.False(t, gate.Accept(first))

	third := gate.Begin()
	assert.False(t, gate.Accept(second))
	assert.True(t, gate.Accept(third))
}
