// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model defines the labels, observations, and interfaces shared by
// the emission and Markov models.
package model

import "fmt"

const (
	// DefaultSeed provided for model implementation.
	DefaultSeed = 33
)

// Label is a discrete hidden state.
type Label string

// Reserved labels that bound a sequence.
const (
	Start Label = "<START>"
	Stop  Label = "<STOP>"
)

// String returns the label as a string.
func (lab Label) String() string { return string(lab) }

// IsBoundary is true for the reserved Start and Stop labels.
func (lab Label) IsBoundary() bool { return lab == Start || lab == Stop }

// Obs is a labeled emission: a scalar value observed at one time step.
type Obs struct {
	Label Label   `json:"label"`
	Value float64 `json:"value"`
}

// NewObs creates a labeled observation.
func NewObs(lab Label, v float64) Obs {
	return Obs{Label: lab, Value: v}
}

func (o Obs) String() string { return fmt.Sprintf("%s:%.4f", o.Label, o.Value) }

// Labels returns the labels of a sequence.
func Labels(seq []Obs) []Label {
	labs := make([]Label, len(seq))
	for i, o := range seq {
		labs[i] = o.Label
	}
	return labs
}

// Values returns the emissions of a sequence.
func Values(seq []Obs) []float64 {
	vals := make([]float64, len(seq))
	for i, o := range seq {
		vals[i] = o.Value
	}
	return vals
}

// Zip pairs labels with values.
func Zip(labs []Label, vals []float64) ([]Obs, error) {
	if len(labs) != len(vals) {
		return nil, fmt.Errorf("length of labels [%d] and length of values [%d] don't match", len(labs), len(vals))
	}
	seq := make([]Obs, len(labs))
	for i := range labs {
		seq[i] = Obs{Label: labs[i], Value: vals[i]}
	}
	return seq, nil
}

// Decoder returns the most likely label sequence for a sequence of emissions.
type Decoder interface {
	Decode(values []float64) ([]Label, error)
}

// Scorer computes the log likelihood of a labeled sequence.
type Scorer interface {
	LogScore(seq []Obs) (float64, error)
}

// Densitier evaluates an emission density.
type Densitier interface {
	Prob(x float64) (float64, error)
	LogProb(x float64) (float64, error)
}
