package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/akualab/hmmtag"
	"github.com/akualab/hmmtag/model"
	"github.com/akualab/hmmtag/model/hmm"
	"github.com/golang/glog"
)

const scoreTolerance = 1e-9

// evaluator decodes sequences, checks them against the reference labels,
// and writes one JSON result per sequence.
type evaluator struct {
	hmm     *hmm.Model
	dec     model.Decoder
	enc     *json.Encoder
	checkOK bool

	correct, total int
	failed         int
	violations     int
}

func newEvaluator(m *hmm.Model, dec model.Decoder, w io.Writer, config *hmmtag.Config) (*evaluator, error) {

	// The decoder maximizes prior plus score. Scores are only comparable
	// when the prior is the same for every label.
	p, err := hmm.ParsePrior(config.HMM.Prior)
	if err != nil {
		return nil, err
	}
	ev := &evaluator{hmm: m, dec: dec, checkOK: p == hmm.UniformPrior}
	if w != nil {
		ev.enc = json.NewEncoder(w)
	}
	return ev, nil
}

func (ev *evaluator) eval(id string, seq []model.Obs) {

	bt, err := ev.dec.Decode(model.Values(seq))
	if err != nil {
		glog.Errorf("id: %s, decode failed: %s", id, err)
		ev.failed++
		return
	}
	ref := model.Labels(seq)
	correct, total := hmmtag.Accuracy(ref, bt)
	ev.correct += correct
	ev.total += total

	hyp, err := model.Zip(bt, model.Values(seq))
	hmmtag.Fatal(err)
	hypScore, err := ev.hmm.LogScore(hyp)
	hmmtag.Fatal(err)
	refScore, err := ev.hmm.LogScore(seq)
	if err != nil {
		glog.Warningf("id: %s, can't score reference: %s", id, err)
		refScore = 0
	} else if ev.checkOK && hypScore < refScore-scoreTolerance {
		glog.Errorf("id: %s, decoded score %f is lower than reference score %f", id, hypScore, refScore)
		ev.violations++
	}

	glog.V(2).Infof("id: %s, ref: %v", id, ref)
	glog.V(2).Infof("id: %s, hyp: %v", id, bt)
	if ev.enc != nil {
		result := hmmtag.Result{
			BatchID:  id,
			Ref:      labelStrings(ref),
			Hyp:      labelStrings(bt),
			Correct:  correct,
			Total:    total,
			HypScore: hmmtag.Finite(hypScore),
			RefScore: hmmtag.Finite(refScore),
		}
		hmmtag.Fatal(ev.enc.Encode(result))
	}
}

func (ev *evaluator) report(name string) {

	var acc float64
	if ev.total > 0 {
		acc = 100 * float64(ev.correct) / float64(ev.total)
	}
	glog.Infof("%s: %d labels recovered correctly (%.2f%% correct out of %d)", name, ev.correct, acc, ev.total)
	if ev.failed > 0 {
		glog.Warningf("%s: %d sequences could not be decoded", name, ev.failed)
	}
	if ev.violations > 0 {
		glog.Errorf("%s: %d sequences decoded below the reference score", name, ev.violations)
	}
}

// openResults returns the results writer. It is nil when no results file is
// configured.
func openResults(config *hmmtag.Config) (io.Writer, func()) {

	if len(config.ResultsFile) == 0 {
		glog.Infof("no results file specified")
		return nil, func() {}
	}
	f, err := os.Create(config.ResultsFile)
	hmmtag.Fatal(err)
	glog.Infof("writing results to %s", config.ResultsFile)
	return f, func() { hmmtag.Fatal(f.Close()) }
}

func labelStrings(labels []model.Label) []string {
	s := make([]string, len(labels))
	for i, l := range labels {
		s[i] = l.String()
	}
	return s
}

func readGraph(fn string) *hmmtag.Graph {

	var g *hmmtag.Graph
	var err error
	if len(fn) > 0 {
		g, err = hmmtag.ReadGraphFile(fn)
	} else {
		g, err = hmmtag.ReadDefaultGraph()
	}
	hmmtag.Fatal(err)
	return g
}
