// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"github.com/akualab/hmmtag"
	"github.com/akualab/hmmtag/model"
	"github.com/akualab/hmmtag/model/gaussian"
)

// NewModelFromGraph builds a model from a hand written graph. Labels follow
// the order of the graph states. The graph name is used as the model name
// unless the Name option is given.
func NewModelFromGraph(g *hmmtag.Graph, options ...Option) (*Model, error) {

	names, probs, err := g.TransitionMatrix()
	if err != nil {
		return nil, err
	}
	labels := make([]model.Label, len(names))
	emissions := make([]*gaussian.Gaussian, len(names))
	for i, s := range g.States {
		labels[i] = model.Label(s.Name)
		emissions[i] = gaussian.NewGaussian(s.Mean, s.StdDev, s.Name)
	}
	if g.Name != "" {
		options = append([]Option{Name(g.Name)}, options...)
	}
	return NewModel(labels, probs, emissions, options...)
}

// ToyModel returns the model described by hmmtag.DefaultGraph.
func ToyModel(options ...Option) (*Model, error) {

	g, err := hmmtag.ReadDefaultGraph()
	if err != nil {
		return nil, err
	}
	return NewModelFromGraph(g, options...)
}
