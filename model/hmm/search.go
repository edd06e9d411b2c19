// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"
	"math"

	"github.com/akualab/hmmtag/floatx"
	"github.com/akualab/hmmtag/model"
	"github.com/golang/glog"
)

// The viterbi algorithm computes the probable sequence of states for an HMM.
// These are the equations in log scale, with the lattice indexed by position
// 0..T where position 0 holds the prior:
//
// delta(j, 0) = π(j)
// delta(j, 1) = π(j) + b(j, o(1))
// delta(j, t) = max_k [ delta(k, t-1) + a(k, j) ] + b(j, o(t))    t in [2, T]
// index(j, t) = argmax_k [ delta(k, t-1) + a(k, j) ]              t in [2, T]
//
// a(k, j) is read from the reverse transition table, missing entries are
// excluded from the max. The argmax scans k in model order and keeps the
// first maximum.
//
// Decoding z* is the output sequence [Tx1]
// z*(T) = argmax_j delta(j, T)
// z*(t) = index(z*(t+1), t+1)  t in [1, T-1]
// logProb = max_j delta(j, T)

// lattice holds the scores and backpointers of one decode call.
type lattice struct {
	delta [][]float64
	index [][]int
}

func newLattice(T, N int) *lattice {
	l := &lattice{
		delta: floatx.MakeFloat2D(T+1, N),
		index: make([][]int, T+1),
	}
	for t := 2; t <= T; t++ {
		l.index[t] = make([]int, N)
	}
	return l
}

// Viterbi returns the most likely label sequence for the emissions and its
// log probability, including the prior of the first label.
//
// Errors: model.ErrModelNotTrained for a model without labels,
// model.ErrDegenerateDistribution when an output distribution has zero
// standard deviation, and model.ErrNoViablePath when every label sequence has
// zero probability.
func (m *Model) Viterbi(values []float64) (bt []model.Label, logViterbiProb float64, e error) {

	// Num states
	N := len(m.labels)
	if N == 0 {
		return nil, 0, model.ErrModelNotTrained
	}
	T := len(values)
	if T == 0 {
		return []model.Label{}, 0, nil
	}

	lat := newLattice(T, N)
	delta := lat.delta
	b := make([]float64, N)

	// Init delta
	copy(delta[0], m.logPrior)
	if e = m.logEmissions(values[0], b); e != nil {
		return nil, 0, fmt.Errorf("position 0: %w", e)
	}
	for j := 0; j < N; j++ {
		delta[1][j] = delta[0][j] + b[j]
	}

	// Recursion
	for t := 2; t <= T; t++ {
		if e = m.logEmissions(values[t-1], b); e != nil {
			return nil, 0, fmt.Errorf("position %d: %w", t-1, e)
		}
		prev := delta[t-1]
		for j := 0; j < N; j++ {
			a := m.logRev[j]
			max := math.Inf(-1)
			argmax := -1
			for k := 0; k < N; k++ {
				if math.IsInf(a[k], -1) {
					continue
				}
				if v := prev[k] + a[k]; v > max {
					max = v
					argmax = k
				}
			}
			lat.index[t][j] = argmax
			if argmax < 0 {
				delta[t][j] = math.Inf(-1)
				continue
			}
			delta[t][j] = max + b[j]
		}
		if glog.V(4) {
			glog.Infof("t: %4d | delta: %v | index: %v", t, delta[t], lat.index[t])
		}
	}

	// Decoding
	argmax, max := floatx.ArgMax(delta[T])
	if argmax < 0 {
		return nil, 0, fmt.Errorf("all %d labels have zero probability at position %d: %w", N, T-1, model.ErrNoViablePath)
	}
	logViterbiProb = max

	bt = make([]model.Label, T)
	cur := argmax
	for t := T; t >= 1; t-- {
		bt[t-1] = m.labels[cur]
		if t == 1 {
			break
		}
		cur = lat.index[t][cur]
		if cur < 0 {
			return nil, 0, fmt.Errorf("no predecessor at position %d: %w", t-1, model.ErrNoViablePath)
		}
	}
	return bt, logViterbiProb, nil
}

// Decode returns the most likely label sequence for the emissions. The
// result has the same length as values. See Viterbi for errors.
func (m *Model) Decode(values []float64) ([]model.Label, error) {
	bt, _, err := m.Viterbi(values)
	return bt, err
}
