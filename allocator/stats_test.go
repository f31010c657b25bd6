package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRational_Percent(t *testing.T) {
	assert.Equal(t, 25.0, Rational{Nominator: 4, Denominator: 16}.Percent())
	assert.Equal(t, 100.0, Rational{Nominator: 16, Denominator: 16}.Percent())
	assert.Equal(t, 0.0, Rational{Nominator: 3, Denominator: 0}.Percent())
}

func TestAllocator_Stats(t *testing.T) {
	a := newTestAllocator(t, 16)

	assert.Equal(t, Stats{
		Capacity:    16,
		Free:        16,
		NumNodes:    1,
		NumLeaves:   1,
		Utilization: Rational{Nominator: 0, Denominator: 16},
	}, a.Stats())

	b1 := mustAllocate(t, a, 5)
	mustAllocate(t, a, 3)

	assert.Equal(t, Stats{
		Capacity:    16,
		Used:        12,
		Free:        4,
		NumBlocks:   2,
		NumNodes:    5,
		NumLeaves:   3,
		Utilization: Rational{Nominator: 12, Denominator: 16},
	}, a.Stats())
	assert.Equal(t, 75.0, a.Stats().Utilization.Percent())

	a.Free(b1.Handle)
	s := a.Stats()
	assert.Equal(t, 4, s.Used)
	assert.Equal(t, 12, s.Free)
	assert.Equal(t, 1, s.NumBlocks)
}
