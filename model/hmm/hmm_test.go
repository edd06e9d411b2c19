package hmm

import (
	"errors"
	"math"
	"testing"

	"github.com/akualab/hmmtag"
	"github.com/akualab/hmmtag/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toyModel(t *testing.T, options ...Option) *Model {
	m, err := ToyModel(options...)
	require.NoError(t, err)
	return m
}

func sampleSeq(t *testing.T, m *Model, n int, seed int64) []model.Obs {
	s, err := m.Sample(SampleSeed(seed))
	require.NoError(t, err)
	seq, err := s.Take(n)
	require.NoError(t, err)
	require.Len(t, seq, n)
	return seq
}

func labeled(labs string, vals ...float64) []model.Obs {
	seq := make([]model.Obs, len(vals))
	for i, v := range vals {
		seq[i] = model.NewObs(model.Label(labs[i:i+1]), v)
	}
	return seq
}

// Tests

func TestTrainByHand(t *testing.T) {

	seq := labeled("AABAB", 1, 3, 10, 2, 12)
	m, err := Train(seq, Name("hand"))
	require.NoError(t, err)

	assert.Equal(t, []model.Label{"A", "B"}, m.Labels())
	assert.Equal(t, "hand", m.Name())

	assert.InDelta(t, 1.0/3.0, m.Transition("A", "A"), 1e-12)
	assert.InDelta(t, 2.0/3.0, m.Transition("A", "B"), 1e-12)
	assert.InDelta(t, 1.0, m.Transition("B", "A"), 1e-12)
	assert.Equal(t, 0.0, m.Transition("B", "B"))
	assert.InDelta(t, 1.0, m.Transition(model.Start, "A"), 1e-12)

	ga, ok := m.Emission("A")
	require.True(t, ok)
	gb, ok := m.Emission("B")
	require.True(t, ok)
	hmmtag.CompareFloats(t, 2, ga.Mean, "mean A", 1e-12)
	hmmtag.CompareFloats(t, 1, ga.StdDev, "sd A", 1e-12)
	hmmtag.CompareFloats(t, 11, gb.Mean, "mean B", 1e-12)
	hmmtag.CompareFloats(t, math.Sqrt2, gb.StdDev, "sd B", 1e-12)
}

func TestTrainEmpty(t *testing.T) {

	m, err := Train(nil)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, model.ErrEmptyTrainingSet))
}

func TestNotTrained(t *testing.T) {

	m := &Model{}
	_, err := m.Decode([]float64{1, 2})
	assert.True(t, errors.Is(err, model.ErrModelNotTrained))
	_, err = m.LogScore(labeled("A", 1))
	assert.True(t, errors.Is(err, model.ErrModelNotTrained))
	_, err = m.Sample()
	assert.True(t, errors.Is(err, model.ErrModelNotTrained))
	_, err = m.EmissionDistribution(0)
	assert.True(t, errors.Is(err, model.ErrModelNotTrained))
}

func TestTableInvariants(t *testing.T) {

	m, err := Train(sampleSeq(t, toyModel(t), 2000, 7))
	require.NoError(t, err)

	trans := m.Transitions()
	rev := m.ReverseTransitions()
	for _, src := range trans.Sources() {
		row := trans.Row(src)
		if row.Len() == 0 {
			continue
		}
		assert.InDelta(t, 1.0, row.Sum(), 1e-9, "row %s", src)
		for i, dst := range row.Labels() {
			p, ok := rev.Row(dst).Prob(src)
			require.True(t, ok, "missing reverse entry %s<-%s", dst, src)
			assert.Equal(t, row.Values()[i], p)
		}
	}
}

func TestSingleObservationLabel(t *testing.T) {

	seq := labeled("AAAB", 1, 2, 3, 7)
	m, err := Train(seq)
	require.NoError(t, err)

	_, err = m.EmissionProb("B", 7)
	assert.True(t, errors.Is(err, model.ErrDegenerateDistribution), "got %v", err)

	_, err = m.Decode([]float64{1, 7})
	assert.True(t, errors.Is(err, model.ErrDegenerateDistribution), "got %v", err)

	// A floor makes the density finite.
	m, err = Train(seq, MinStdDev(0.5))
	require.NoError(t, err)
	p, err := m.EmissionProb("B", 7)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
}

// Training on samples of a known model recovers its transitions.
func TestRoundTrip(t *testing.T) {

	toy := toyModel(t)
	m, err := Train(sampleSeq(t, toy, 10000, 33))
	require.NoError(t, err)
	assert.ElementsMatch(t, toy.Labels(), m.Labels())

	for _, src := range toy.Labels() {
		for _, dst := range toy.Labels() {
			want := toy.Transition(src, dst)
			got := m.Transition(src, dst)
			assert.InDelta(t, want, got, 0.05, "transition %s->%s", src, dst)
		}
	}
	for _, lab := range toy.Labels() {
		want, _ := toy.Emission(lab)
		got, _ := m.Emission(lab)
		assert.InDelta(t, want.Mean, got.Mean, 0.05, "mean of %s", lab)
		assert.InDelta(t, want.StdDev, got.StdDev, 0.05, "sd of %s", lab)
	}
}

func TestIndependentModels(t *testing.T) {

	m1, err := Train(labeled("AB", 1, 2), MinStdDev(1))
	require.NoError(t, err)
	m2, err := Train(labeled("CD", 1, 2), MinStdDev(1))
	require.NoError(t, err)

	assert.Equal(t, []model.Label{"A", "B"}, m1.Labels())
	assert.Equal(t, []model.Label{"C", "D"}, m2.Labels())
	assert.Equal(t, 0.0, m1.Transition("C", "D"))
}
