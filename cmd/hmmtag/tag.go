package main

import (
	"fmt"

	"github.com/akualab/hmmtag"
	"github.com/akualab/hmmtag/metrics"
	"github.com/akualab/hmmtag/model"
	"github.com/akualab/hmmtag/model/hmm"
	"github.com/golang/glog"
)

// doTag trains on the training part of a tagged corpus and decodes every
// sequence of the validation and test parts.
func doTag(config *hmmtag.Config, met *metrics.Metrics) {

	if len(config.Corpus.DataSet) == 0 {
		hmmtag.Fatal(fmt.Errorf("missing data set, use --data-set or corpus.data_set"))
	}
	ds, err := hmmtag.ReadDataSet(config.Corpus.DataSet)
	hmmtag.Fatal(err)
	seqs, err := ds.Sequences()
	hmmtag.Fatal(err)

	train, validation, test := hmmtag.Split(seqs, config.Corpus.TrainFrac, config.Corpus.ValidationFrac)
	glog.Infof("read %d sequences: %d train, %d validation, %d test", len(seqs), len(train), len(validation), len(test))

	m, err := trainTagger(config, train)
	hmmtag.Fatal(err)

	dec := met.Instrument(m)
	ev, err := newEvaluator(m, dec, nil, config)
	hmmtag.Fatal(err)
	for i, seq := range validation {
		ev.eval(fmt.Sprintf("validation-%d", i), seq)
	}
	ev.report("validation")

	w, closeResults := openResults(config)
	defer closeResults()
	ev, err = newEvaluator(m, dec, w, config)
	hmmtag.Fatal(err)
	for i, seq := range test {
		ev.eval(fmt.Sprintf("test-%d", i), seq)
	}
	ev.report("test")
}

// trainTagger stitches the training sequences with boundary observations
// and trains a model on the stream. Every boundary observation has the same
// value, so the boundary labels get a zero standard deviation; without
// hmm.min_stddev the corpus.boundary_min_stddev floor is applied.
func trainTagger(config *hmmtag.Config, train [][]model.Obs) (*hmm.Model, error) {

	opts, err := hmmOptions(config, "tagger")
	if err != nil {
		return nil, err
	}
	if config.HMM.MinStdDev == 0 {
		floor := config.Corpus.BoundaryMinStdDev
		if !(floor > 0) {
			return nil, fmt.Errorf("boundary labels share the emission %g, set min_stddev or corpus.boundary_min_stddev",
				config.Corpus.BoundaryValue)
		}
		glog.Infof("flooring output standard deviations to %g", floor)
		opts = append(opts, hmm.MinStdDev(floor))
	}
	return hmm.Train(hmmtag.Stitch(train, config.Corpus.BoundaryValue), opts...)
}
