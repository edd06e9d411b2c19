// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gaussian implements the univariate normal emission model of a
// hidden state.
package gaussian

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/akualab/hmmtag/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian is a univariate normal distribution. Trainable Gaussians estimate
// the mean in one pass and the unbiased sample variance in a second pass
// over the same data.
type Gaussian struct {
	ModelName   string  `json:"name,omitempty"`
	IsTrainable bool    `json:"trainable"`
	NSamples    float64 `json:"nsamples"`
	Sumx        float64 `json:"sumx,omitempty"`
	SumDev      float64 `json:"sum_dev,omitempty"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"sd"`
	dist        distuv.Normal
}

var _ model.Densitier = (*Gaussian)(nil)

// NewGaussian returns a Gaussian with fixed parameters.
func NewGaussian(mean, sd float64, name string) *Gaussian {

	g := &Gaussian{
		ModelName: name,
		Mean:      mean,
		StdDev:    sd,
	}
	g.Initialize()
	return g
}

// NewTrainableGaussian returns an empty Gaussian ready to accumulate statistics.
func NewTrainableGaussian(name string) *Gaussian {

	return &Gaussian{
		ModelName:   name,
		IsTrainable: true,
	}
}

// Initialize sets private fields from Mean and StdDev.
func (g *Gaussian) Initialize() {
	g.dist = distuv.Normal{Mu: g.Mean, Sigma: g.StdDev}
}

// Degenerate is true when the standard deviation is not positive, i.e. the
// density is undefined.
func (g *Gaussian) Degenerate() bool { return !(g.StdDev > 0) }

// LogProb returns the log density at x.
func (g *Gaussian) LogProb(x float64) (float64, error) {

	if g.Degenerate() {
		return 0, fmt.Errorf("gaussian [%s] has sd %g: %w", g.ModelName, g.StdDev, model.ErrDegenerateDistribution)
	}
	return g.dist.LogProb(x), nil
}

// Prob returns the density at x:
//
//   (1 / (sd * sqrt(2π))) * exp(-(x-mean)^2 / (2*sd^2))
//
// This is a density, values above 1 are possible.
func (g *Gaussian) Prob(x float64) (float64, error) {

	lp, err := g.LogProb(x)
	if err != nil {
		return 0, err
	}
	return math.Exp(lp), nil
}

// Update adds x to the first pass statistics.
func (g *Gaussian) Update(x float64) error {

	if !g.IsTrainable {
		return fmt.Errorf("attempted to update model [%s] which is not trainable", g.ModelName)
	}
	g.Sumx += x
	g.NSamples++
	return nil
}

// EstimateMean computes the mean from the first pass.
func (g *Gaussian) EstimateMean() error {

	if !g.IsTrainable {
		return fmt.Errorf("attempted to estimate model [%s] which is not trainable", g.ModelName)
	}
	if g.NSamples > 0 {
		g.Mean = g.Sumx / g.NSamples
	}
	return nil
}

// UpdateDeviation adds the contribution of x to the unbiased sample
// variance. Requires the mean. Gaussians with fewer than two samples
// accumulate nothing.
func (g *Gaussian) UpdateDeviation(x float64) error {

	if !g.IsTrainable {
		return fmt.Errorf("attempted to update model [%s] which is not trainable", g.ModelName)
	}
	if g.NSamples > 1 {
		d := x - g.Mean
		g.SumDev += d * d / (g.NSamples - 1)
	}
	return nil
}

// EstimateStdDev converts the accumulated variance to a standard deviation.
func (g *Gaussian) EstimateStdDev() error {

	if !g.IsTrainable {
		return fmt.Errorf("attempted to estimate model [%s] which is not trainable", g.ModelName)
	}
	g.StdDev = math.Sqrt(g.SumDev)
	g.Initialize()
	return nil
}

// Floor raises the standard deviation to min.
func (g *Gaussian) Floor(min float64) {

	if g.StdDev < min {
		g.StdDev = min
		g.Initialize()
	}
}

// Clear resets the training statistics.
func (g *Gaussian) Clear() error {

	if !g.IsTrainable {
		return fmt.Errorf("attempted to clear model [%s] which is not trainable", g.ModelName)
	}
	g.Sumx = 0
	g.SumDev = 0
	g.NSamples = 0
	return nil
}

// Random draws a value from the distribution. A zero standard deviation
// always returns the mean.
func (g *Gaussian) Random(r *rand.Rand) float64 {
	return model.RandNormal(g.Mean, g.StdDev, r)
}

func (g *Gaussian) Name() string        { return g.ModelName }
func (g *Gaussian) NumSamples() float64 { return g.NSamples }
func (g *Gaussian) Trainable() bool     { return g.IsTrainable }
func (g *Gaussian) SetName(name string) { g.ModelName = name }

// Clone returns a copy of g.
func (g *Gaussian) Clone() *Gaussian {

	ng := *g
	ng.Initialize()
	return &ng
}
