package table

import (
	"errors"
	"math"
	"testing"

	"github.com/akualab/hmmtag/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counts() *Table {
	t := New()
	t.Add("a", "b", 1)
	t.Add("a", "c", 3)
	t.Add("b", "a", 2)
	t.Add("c", "c", 1)
	t.Add("c", "a", 1)
	t.Add("c", "c", 2)
	return t
}

func TestNormalize(t *testing.T) {

	tab := counts()
	tab.Normalize()

	assert.InDelta(t, 0.25, tab.Prob("a", "b"), 1e-12)
	assert.InDelta(t, 0.75, tab.Prob("a", "c"), 1e-12)
	assert.InDelta(t, 1.0, tab.Prob("b", "a"), 1e-12)
	assert.InDelta(t, 0.75, tab.Prob("c", "c"), 1e-12)
	require.NoError(t, tab.Check(1e-9))

	for _, src := range tab.Sources() {
		assert.InDelta(t, 1.0, tab.Row(src).Sum(), 1e-9, "row %s", src)
	}
}

func TestMissing(t *testing.T) {

	tab := counts()
	tab.Normalize()

	assert.Equal(t, 0.0, tab.Prob("b", "c"))
	assert.Equal(t, 0.0, tab.Prob("zz", "a"))
	assert.True(t, math.IsInf(tab.LogProb("b", "c"), -1))
	assert.Nil(t, tab.Row("zz"))
	assert.Equal(t, 0, tab.Row("zz").Len())
}

func TestZeroRow(t *testing.T) {

	tab := New()
	tab.Add("a", "b", 0)
	tab.Normalize()
	assert.Equal(t, 0, tab.Row("a").Len())
	require.NoError(t, tab.Check(1e-9))
}

func TestReverse(t *testing.T) {

	tab := counts()
	tab.Normalize()
	rev := tab.Reverse()

	for _, src := range tab.Sources() {
		row := tab.Row(src)
		for i, dst := range row.Labels() {
			assert.Equal(t, row.Values()[i], rev.Prob(dst, src))
		}
	}
	// Predecessors of c in insertion order.
	assert.Equal(t, []model.Label{"a", "c"}, rev.Row("c").Labels())
}

func TestOrder(t *testing.T) {

	tab := counts()
	assert.Equal(t, []model.Label{"a", "b", "c"}, tab.Sources())
	assert.Equal(t, []model.Label{"c", "a"}, tab.Row("c").Labels())
	assert.Equal(t, []float64{3, 1}, tab.Row("c").Values())
}

func TestCheck(t *testing.T) {

	tab := New()
	tab.Add("a", "b", 0.5)
	tab.Add("a", "c", 0.4)
	err := tab.Check(1e-9)
	assert.True(t, errors.Is(err, model.ErrInvariantViolation))
}
