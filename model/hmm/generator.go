// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"
	"math/rand"

	"github.com/akualab/hmmtag/model"
	"github.com/golang/glog"
)

// Sampler generates an infinite sequence of labeled observations by walking
// the Markov chain. It cannot be rewound. A Sampler is not safe for
// concurrent use, but any number of Samplers may share a model.
type Sampler struct {
	hmm *Model
	r   *rand.Rand
	cur model.Label
	err error
}

// SampleOption configures a Sampler.
type SampleOption func(*sampleConfig)

type sampleConfig struct {
	start    model.Label
	hasStart bool
	r        *rand.Rand
}

// StartAt starts the walk at lab, skipping the burn-in.
func StartAt(lab model.Label) SampleOption {
	return func(c *sampleConfig) {
		c.start = lab
		c.hasStart = true
	}
}

// SampleSeed seeds the walk.
func SampleSeed(seed int64) SampleOption {
	return func(c *sampleConfig) { c.r = rand.New(rand.NewSource(seed)) }
}

// SampleRand uses r as the source of randomness.
func SampleRand(r *rand.Rand) SampleOption {
	return func(c *sampleConfig) { c.r = r }
}

// Sample starts a new random walk. Without StartAt, the first label is
// chosen uniformly from the label set and the chain is advanced BurnIn
// steps before the first sample. Without a seed option, each call uses the
// model seed plus a per-model counter so that walks are independent and
// reproducible.
func (m *Model) Sample(options ...SampleOption) (*Sampler, error) {

	if !m.Trained() {
		return nil, model.ErrModelNotTrained
	}

	cfg := &sampleConfig{}
	for _, option := range options {
		option(cfg)
	}
	if cfg.r == nil {
		cfg.r = rand.New(rand.NewSource(m.seed + m.walks.Inc()))
	}

	s := &Sampler{hmm: m, r: cfg.r}
	if cfg.hasStart {
		if _, ok := m.index[cfg.start]; !ok {
			return nil, fmt.Errorf("start label [%s]: %w", cfg.start, model.ErrUnknownLabel)
		}
		s.cur = cfg.start
		return s, nil
	}

	s.cur = m.labels[s.r.Intn(len(m.labels))]
	for i := 0; i < m.burnIn; i++ {
		next, err := s.nextState(s.cur)
		if err != nil {
			return nil, fmt.Errorf("burn-in step %d: %w", i, err)
		}
		s.cur = next
	}
	glog.V(3).Infof("sampler starts at [%s] after %d burn-in steps", s.cur, m.burnIn)
	return s, nil
}

// nextState draws the successor of lab.
func (s *Sampler) nextState(lab model.Label) (model.Label, error) {
	row := s.hmm.trans.Row(lab)
	next, err := model.RandLabel(row.Labels(), row.Values(), s.r)
	if err != nil {
		return "", fmt.Errorf("transition from [%s]: %w", lab, err)
	}
	return next, nil
}

// Next returns the current label with an emission drawn from its output
// distribution, then advances the chain. A failure to advance is returned
// by the following call.
func (s *Sampler) Next() (model.Obs, error) {

	if s.err != nil {
		return model.Obs{}, s.err
	}
	g := s.hmm.emissions[s.hmm.index[s.cur]]
	o := model.NewObs(s.cur, g.Random(s.r))
	s.cur, s.err = s.nextState(s.cur)
	return o, nil
}

// Take returns the next n samples.
func (s *Sampler) Take(n int) ([]model.Obs, error) {

	seq := make([]model.Obs, 0, n)
	for i := 0; i < n; i++ {
		o, err := s.Next()
		if err != nil {
			return seq, err
		}
		seq = append(seq, o)
	}
	return seq, nil
}
