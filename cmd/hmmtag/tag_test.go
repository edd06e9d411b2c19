package main

import (
	"testing"

	"github.com/akualab/hmmtag"
	"github.com/akualab/hmmtag/model"
	"github.com/akualab/hmmtag/model/hmm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corpus cuts a random walk of the toy model into sequences of length n.
func corpus(t *testing.T, numSeqs, n int) [][]model.Obs {

	m, err := hmm.ToyModel()
	require.NoError(t, err)
	s, err := m.Sample(hmm.SampleSeed(21))
	require.NoError(t, err)
	walk, err := s.Take(numSeqs * n)
	require.NoError(t, err)

	seqs := make([][]model.Obs, numSeqs)
	for i := range seqs {
		seqs[i] = walk[i*n : (i+1)*n]
	}
	return seqs
}

func TestTagPipeline(t *testing.T) {

	config := hmmtag.DefaultConfig()
	train, validation, test := hmmtag.Split(corpus(t, 100, 20), config.Corpus.TrainFrac, config.Corpus.ValidationFrac)

	m, err := trainTagger(config, train)
	require.NoError(t, err)
	assert.Contains(t, m.Labels(), model.Stop)
	assert.Contains(t, m.Labels(), model.Start)

	g, ok := m.Emission(model.Stop)
	require.True(t, ok)
	assert.Equal(t, config.Corpus.BoundaryMinStdDev, g.StdDev)

	ev, err := newEvaluator(m, m, nil, config)
	require.NoError(t, err)
	for _, part := range [][][]model.Obs{validation, test} {
		for _, seq := range part {
			ev.eval("seq", seq)
		}
	}
	ev.report("pipeline")
	assert.Equal(t, 0, ev.failed)
	assert.Equal(t, 0, ev.violations)
	assert.Equal(t, 20*(len(validation)+len(test)), ev.total)
	assert.True(t, ev.correct > 0)
}

func TestTagMinStdDev(t *testing.T) {

	config := hmmtag.DefaultConfig()
	config.HMM.MinStdDev = 0.2
	m, err := trainTagger(config, corpus(t, 10, 20))
	require.NoError(t, err)
	g, ok := m.Emission(model.Start)
	require.True(t, ok)
	assert.Equal(t, 0.2, g.StdDev)
}

func TestTagNoFloor(t *testing.T) {

	config := hmmtag.DefaultConfig()
	config.Corpus.BoundaryMinStdDev = 0
	_, err := trainTagger(config, corpus(t, 10, 20))
	assert.Error(t, err)
}
