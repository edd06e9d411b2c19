// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package table implements probability tables keyed by label pairs.

A Table maps a source label to a row, a distribution over destination
labels. Rows and entries keep insertion order so that every scan over a
table is reproducible. Missing entries have probability zero.

	t := table.New()
	t.Add("a", "b", 1)
	t.Add("a", "c", 3)
	t.Normalize()      // t.Prob("a", "c") == 0.75
	r := t.Reverse()   // r.Prob("c", "a") == 0.75
*/
package table

import (
	"fmt"
	"math"

	"github.com/akualab/hmmtag/floatx"
	"github.com/akualab/hmmtag/model"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// Row is a distribution over labels in insertion order.
type Row struct {
	keys  []model.Label
	vals  []float64
	index map[model.Label]int
}

func newRow() *Row {
	return &Row{index: make(map[model.Label]int)}
}

// Add adds v to the entry for lab, creating it if needed.
func (r *Row) Add(lab model.Label, v float64) {
	i, ok := r.index[lab]
	if !ok {
		r.index[lab] = len(r.keys)
		r.keys = append(r.keys, lab)
		r.vals = append(r.vals, v)
		return
	}
	r.vals[i] += v
}

// Prob returns the entry for lab. The second value is false for missing
// entries.
func (r *Row) Prob(lab model.Label) (float64, bool) {
	if r == nil {
		return 0, false
	}
	i, ok := r.index[lab]
	if !ok {
		return 0, false
	}
	return r.vals[i], true
}

// Len returns the number of entries.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Labels returns the entry labels in insertion order. Do not modify.
func (r *Row) Labels() []model.Label {
	if r == nil {
		return nil
	}
	return r.keys
}

// Values returns the entry values in insertion order. Do not modify.
func (r *Row) Values() []float64 {
	if r == nil {
		return nil
	}
	return r.vals
}

// Sum returns the sum of the entries.
func (r *Row) Sum() float64 {
	if r.Len() == 0 {
		return 0
	}
	return floats.Sum(r.vals)
}

// Table maps a source label to a Row.
type Table struct {
	sources []model.Label
	rows    map[model.Label]*Row
}

// New returns an empty table.
func New() *Table {
	return &Table{rows: make(map[model.Label]*Row)}
}

// Add adds v to entry (src, dst).
func (t *Table) Add(src, dst model.Label, v float64) {
	row, ok := t.rows[src]
	if !ok {
		row = newRow()
		t.rows[src] = row
		t.sources = append(t.sources, src)
	}
	row.Add(dst, v)
}

// Row returns the row for src or nil.
func (t *Table) Row(src model.Label) *Row {
	return t.rows[src]
}

// Prob returns entry (src, dst). Missing entries are zero.
func (t *Table) Prob(src, dst model.Label) float64 {
	p, _ := t.rows[src].Prob(dst)
	return p
}

// LogProb returns the log of entry (src, dst). Missing entries are -Inf.
func (t *Table) LogProb(src, dst model.Label) float64 {
	p, ok := t.rows[src].Prob(dst)
	if !ok || !(p > 0) {
		return math.Inf(-1)
	}
	return math.Log(p)
}

// Sources returns the source labels in insertion order.
func (t *Table) Sources() []model.Label {
	return t.sources
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.sources)
}

// Normalize converts every row of counts to a distribution. A row whose
// total is zero is emptied instead.
func (t *Table) Normalize() {
	for _, src := range t.sources {
		row := t.rows[src]
		if !floatx.Normalize(row.vals) {
			glog.Warningf("row [%s] has zero total, leaving it empty", src)
			t.rows[src] = newRow()
		}
	}
}

// Reverse returns the mirror table keyed by destination then source:
// reverse.Prob(b, a) == t.Prob(a, b) for every entry.
func (t *Table) Reverse() *Table {
	rev := New()
	for _, src := range t.sources {
		row := t.rows[src]
		for i, dst := range row.keys {
			rev.Add(dst, src, row.vals[i])
		}
	}
	return rev
}

// Check verifies that every non-empty row sums to one within tol.
func (t *Table) Check(tol float64) error {
	for _, src := range t.sources {
		row := t.rows[src]
		if row.Len() == 0 {
			continue
		}
		if s := row.Sum(); math.Abs(s-1) > tol {
			return fmt.Errorf("row [%s] sums to %.12f: %w", src, s, model.ErrInvariantViolation)
		}
	}
	return nil
}

func (t *Table) String() string {
	s := ""
	for _, src := range t.sources {
		s += fmt.Sprintf("%s:", src)
		row := t.rows[src]
		for i, dst := range row.keys {
			s += fmt.Sprintf(" %s=%.4f", dst, row.vals[i])
		}
		s += "\n"
	}
	return s
}
