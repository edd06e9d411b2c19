// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"

	"github.com/akualab/hmmtag/model"
	"github.com/akualab/hmmtag/model/gaussian"
	"github.com/akualab/hmmtag/model/table"
	"github.com/golang/glog"
)

// Train estimates a model from a labeled sequence.
//
// Transition probabilities are relative frequencies of consecutive label
// pairs. The first observation is counted as a transition out of
// model.Start. Each label gets a Gaussian with the sample mean and the
// unbiased sample standard deviation of its emissions. A label seen once
// has a zero standard deviation (see MinStdDev).
//
// Train returns model.ErrEmptyTrainingSet if seq is empty.
func Train(seq []model.Obs, options ...Option) (*Model, error) {

	if len(seq) == 0 {
		return nil, model.ErrEmptyTrainingSet
	}

	var labels []model.Label
	gs := make(map[model.Label]*gaussian.Gaussian)
	counts := table.New()

	// First pass: label counts, emission sums, and transition counts.
	last := model.Start
	for _, o := range seq {
		g, ok := gs[o.Label]
		if !ok {
			g = gaussian.NewTrainableGaussian(o.Label.String())
			gs[o.Label] = g
			labels = append(labels, o.Label)
		}
		if err := g.Update(o.Value); err != nil {
			return nil, err
		}
		counts.Add(last, o.Label, 1)
		last = o.Label
	}

	counts.Normalize()
	if err := counts.Check(tolerance); err != nil {
		return nil, fmt.Errorf("failed to normalize transitions: %w", err)
	}

	emissions := make([]*gaussian.Gaussian, len(labels))
	for i, lab := range labels {
		emissions[i] = gs[lab]
		if err := emissions[i].EstimateMean(); err != nil {
			return nil, err
		}
	}

	// Second pass: unbiased sample variance.
	for _, o := range seq {
		if err := gs[o.Label].UpdateDeviation(o.Value); err != nil {
			return nil, err
		}
	}
	for _, g := range emissions {
		if err := g.EstimateStdDev(); err != nil {
			return nil, err
		}
	}

	m := newModel(options...)
	m.trans = counts
	if err := m.finalize(labels, emissions); err != nil {
		return nil, err
	}

	glog.Infof("trained hmm [%s] with %d labels from %d observations", m.ModelName, len(labels), len(seq))
	if glog.V(3) {
		for _, g := range emissions {
			glog.Infof("label: %-10s n: %6.0f mean: %8.4f sd: %8.4f", g.Name(), g.NumSamples(), g.Mean, g.StdDev)
		}
	}
	return m, nil
}
