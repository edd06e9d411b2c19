// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package metrics exports decoder counters and latencies to prometheus.

	reg := prometheus.NewRegistry()
	met := metrics.New(reg)
	dec := met.Instrument(m) // m is a *hmm.Model
	labels, err := dec.Decode(values)
	http.Handle("/metrics", metrics.Handler(reg))
*/
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/akualab/hmmtag/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hmmtag"

// Outcome label values.
const (
	outcomeOK         = "ok"
	outcomeDegenerate = "degenerate"
	outcomeNoPath     = "no_viable_path"
	outcomeNotTrained = "not_trained"
	outcomeError      = "error"
)

// Metrics holds the decoder collectors.
type Metrics struct {
	Decodes   *prometheus.CounterVec
	Positions prometheus.Counter
	Latency   prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {

	m := &Metrics{
		Decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decoder",
			Name:      "sequences_total",
			Help:      "Number of decoded sequences by outcome.",
		}, []string{"outcome"}),
		Positions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decoder",
			Name:      "positions_total",
			Help:      "Number of labels assigned by successful decodes.",
		}),
		Latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "decoder",
			Name:      "duration_seconds",
			Help:      "Time spent decoding one sequence.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
	reg.MustRegister(m.Decodes, m.Positions, m.Latency)
	return m
}

// Instrument wraps d so that every call is counted and timed.
func (m *Metrics) Instrument(d model.Decoder) model.Decoder {
	return &decoder{d: d, m: m}
}

type decoder struct {
	d model.Decoder
	m *Metrics
}

func (dec *decoder) Decode(values []float64) ([]model.Label, error) {

	timer := prometheus.NewTimer(dec.m.Latency)
	labels, err := dec.d.Decode(values)
	timer.ObserveDuration()

	dec.m.Decodes.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		dec.m.Positions.Add(float64(len(labels)))
	}
	return labels, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, model.ErrDegenerateDistribution):
		return outcomeDegenerate
	case errors.Is(err, model.ErrNoViablePath):
		return outcomeNoPath
	case errors.Is(err, model.ErrModelNotTrained):
		return outcomeNotTrained
	}
	return outcomeError
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server for /metrics on addr. It blocks until the
// server fails.
func Serve(addr string, g prometheus.Gatherer) error {

	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
