// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package floatx provides helpers for float64 slices used by the tables
// and the decoder lattice.
package floatx

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrZeroLength = Error("floatx: zero length in slice definition")
	ErrNotSquare  = Error("floatx: matrix is not square")
)

var Log = func(r int, v float64) float64 { return math.Log(v) }

func SetValueFunc(f float64) ApplyFunc {
	return func(r int, v float64) float64 { return f }
}

func MakeFloat2D(n1, n2 int) [][]float64 {

	s := make([][]float64, n1)
	for i := 0; i < n1; i++ {
		s[i] = make([]float64, n2)
	}

	return s
}

// CheckSquare returns the size of a square matrix. Every row must have as
// many elements as there are rows.
func CheckSquare(s [][]float64) (int, error) {

	if len(s) == 0 {
		return 0, ErrZeroLength
	}
	for _, row := range s {
		if len(row) != len(s) {
			return 0, ErrNotSquare
		}
	}
	return len(s), nil
}

type ApplyFunc func(n int, v float64) float64

// Apply function to 1D slice. If out slice is empty, the function is applied in place.
func Apply(fn ApplyFunc, in, out []float64) []float64 {

	n := len(in)
	if n == 0 {
		panic(ErrZeroLength)
	}
	if len(out) == 0 {
		out = in
	}
	for i := 0; i < n; i++ {
		out[i] = fn(i, in[i])
	}

	return out
}

// Normalize scales s in place so it sums to one. Returns false and leaves s
// untouched when the sum is not positive.
func Normalize(s []float64) bool {

	sum := floats.Sum(s)
	if !(sum > 0) {
		return false
	}
	floats.Scale(1.0/sum, s)
	return true
}

// ArgMax returns the index and value of the largest element. Ties go to the
// lowest index. Returns -1 and -Inf when no element is greater than -Inf.
func ArgMax(s []float64) (int, float64) {

	idx := -1
	max := math.Inf(-1)
	for i, v := range s {
		if v > max {
			max = v
			idx = i
		}
	}
	return idx, max
}

// Fill sets all values to f.
func Fill(s []float64, f float64) {

	if len(s) == 0 {
		return
	}
	Apply(SetValueFunc(f), s, nil)
}
