// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmm provides a first-order hidden Markov model with one univariate
Gaussian output distribution per state.

The model is estimated from labeled data (Train) or built from known
parameters (NewModel). Once built it is read-only: Decode, Score, and Sample
may be called from multiple goroutines without synchronization.

Iteration over labels always follows the label order of the model. For
trained models this is the order in which labels were first seen in the
training data. Ties in every argmax go to the earliest label.
*/
package hmm

import (
	"fmt"
	"math"

	"github.com/akualab/hmmtag/floatx"
	"github.com/akualab/hmmtag/model"
	"github.com/akualab/hmmtag/model/gaussian"
	"github.com/akualab/hmmtag/model/table"
	"github.com/golang/glog"
	"go.uber.org/atomic"
)

const (
	// DefaultBurnIn is the number of transitions discarded before a random
	// walk without a start label yields its first sample.
	DefaultBurnIn = 1000

	tolerance = 1e-9
)

// Model is a hidden Markov model.
type Model struct {

	// Model name.
	ModelName string `json:"name"`

	// Label set in model order.
	labels []model.Label
	index  map[model.Label]int

	// Transition probabilities P(dst | src) and the mirror table keyed by
	// dst then src.
	trans *table.Table
	rev   *table.Table

	// logRev[j][k] = log P(labels[j] | labels[k]), -Inf for missing entries.
	logRev [][]float64

	// Output distributions in model order.
	emissions []*gaussian.Gaussian

	// Initial state distribution in model order (log scale).
	prior    PriorType
	logPrior []float64

	burnIn    int
	seed      int64
	minStdDev float64
	walks     atomic.Int64
}

// Option type is used to pass options to Train() and NewModel().
type Option func(*Model)

func newModel(options ...Option) *Model {

	m := &Model{
		ModelName: "HMM",
		seed:      model.DefaultSeed,
		burnIn:    DefaultBurnIn,
		prior:     UniformPrior,
	}

	// Set options.
	for _, option := range options {
		option(m)
	}
	return m
}

// NewModel creates an HMM from known parameters. transProbs[i][j] is the
// probability of moving from labels[i] to labels[j]; every row must sum to
// one. Zero entries are not stored.
func NewModel(labels []model.Label, transProbs [][]float64, emissions []*gaussian.Gaussian, options ...Option) (*Model, error) {

	if len(labels) == 0 {
		return nil, model.ErrEmptyTrainingSet
	}
	n, err := floatx.CheckSquare(transProbs)
	if err != nil {
		return nil, err
	}
	if n != len(labels) || len(emissions) != len(labels) {
		return nil, fmt.Errorf("num states mismatch: %d labels, transProbs has [%d], emissions have [%d]",
			len(labels), n, len(emissions))
	}

	trans := table.New()
	for i, src := range labels {
		for j, dst := range labels {
			if p := transProbs[i][j]; p > 0 {
				trans.Add(src, dst, p)
			}
		}
	}
	if err := trans.Check(tolerance); err != nil {
		return nil, err
	}

	m := newModel(options...)
	m.trans = trans
	if err := m.finalize(labels, emissions); err != nil {
		return nil, err
	}
	glog.Infof("New HMM [%s]. Num states = %d.", m.ModelName, len(labels))
	return m, nil
}

// finalize freezes the label set and builds the derived tables. The model
// keeps its own copies of labels and emissions.
func (m *Model) finalize(labels []model.Label, emissions []*gaussian.Gaussian) error {

	m.labels = append([]model.Label(nil), labels...)
	m.emissions = make([]*gaussian.Gaussian, len(emissions))
	for i, g := range emissions {
		m.emissions[i] = g.Clone()
	}
	m.index = make(map[model.Label]int, len(m.labels))
	for i, lab := range m.labels {
		if _, dup := m.index[lab]; dup {
			return fmt.Errorf("duplicate label [%s]", lab)
		}
		m.index[lab] = i
	}

	if m.minStdDev > 0 {
		for _, g := range m.emissions {
			g.Floor(m.minStdDev)
		}
	}
	for _, g := range m.emissions {
		if g.Degenerate() {
			glog.Warningf("label [%s] has a degenerate output distribution (n=%.0f, sd=%g)",
				g.Name(), g.NumSamples(), g.StdDev)
		}
	}

	m.rev = m.trans.Reverse()
	n := len(labels)
	m.logRev = floatx.MakeFloat2D(n, n)
	for j, dst := range labels {
		row := m.rev.Row(dst)
		for k, src := range labels {
			m.logRev[j][k] = math.Inf(-1)
			if p, ok := row.Prob(src); ok && p > 0 {
				m.logRev[j][k] = math.Log(p)
			}
		}
	}

	lp, err := m.prior.logProbs(m)
	if err != nil {
		return err
	}
	m.logPrior = lp
	if glog.V(2) {
		glog.Infof("Labels:      %v", m.labels)
		glog.Infof("Log prior:   %v", m.logPrior)
		glog.Infof("Transitions:\n%s", m.trans)
	}
	return nil
}

// Labels returns the label set in model order. Do not modify.
func (m *Model) Labels() []model.Label { return m.labels }

// NumLabels returns the size of the label set.
func (m *Model) NumLabels() int { return len(m.labels) }

// Trained is true when the model has a label set.
func (m *Model) Trained() bool { return len(m.labels) > 0 }

// Transitions returns the transition table. Do not modify.
func (m *Model) Transitions() *table.Table { return m.trans }

// ReverseTransitions returns the transition table keyed by destination. Do not modify.
func (m *Model) ReverseTransitions() *table.Table { return m.rev }

// Transition returns P(dst | src). Missing entries are zero.
func (m *Model) Transition(src, dst model.Label) float64 {
	if m.trans == nil {
		return 0
	}
	return m.trans.Prob(src, dst)
}

// Emission returns the output distribution of lab.
func (m *Model) Emission(lab model.Label) (*gaussian.Gaussian, bool) {
	i, ok := m.index[lab]
	if !ok {
		return nil, false
	}
	return m.emissions[i], true
}

// EmissionProb returns the output density of lab at x.
func (m *Model) EmissionProb(lab model.Label, x float64) (float64, error) {
	g, ok := m.Emission(lab)
	if !ok {
		return 0, fmt.Errorf("label [%s]: %w", lab, model.ErrUnknownLabel)
	}
	return g.Prob(x)
}

// EmissionDistribution evaluates the output density of every label at x.
// The values are densities and do not sum to one.
func (m *Model) EmissionDistribution(x float64) (map[model.Label]float64, error) {

	if !m.Trained() {
		return nil, model.ErrModelNotTrained
	}
	dist := make(map[model.Label]float64, len(m.labels))
	for i, g := range m.emissions {
		p, err := g.Prob(x)
		if err != nil {
			return nil, err
		}
		dist[m.labels[i]] = p
	}
	return dist, nil
}

// logEmissions is EmissionDistribution in log scale and model order.
func (m *Model) logEmissions(x float64, out []float64) error {
	for i, g := range m.emissions {
		lp, err := g.LogProb(x)
		if err != nil {
			return err
		}
		out[i] = lp
	}
	return nil
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.ModelName
}

// Name is an option to set the model name.
func Name(name string) Option {
	return func(m *Model) { m.ModelName = name }
}

// Seed sets a seed value for random functions.
// Uses default seed value if omitted.
func Seed(seed int64) Option {
	return func(m *Model) { m.seed = seed }
}

// BurnIn sets the number of discarded transitions when sampling without a
// start label. Default is DefaultBurnIn.
func BurnIn(n int) Option {
	return func(m *Model) { m.burnIn = n }
}

// Prior selects the initial state distribution used by the decoder.
// Default is UniformPrior.
func Prior(p PriorType) Option {
	return func(m *Model) { m.prior = p }
}

// MinStdDev floors every output standard deviation to sd. Zero disables
// the floor, in which case labels with fewer than two distinct training
// values make density evaluation fail with model.ErrDegenerateDistribution.
func MinStdDev(sd float64) Option {
	return func(m *Model) { m.minStdDev = sd }
}
