package main

import (
	"github.com/akualab/hmmtag"
	"github.com/akualab/hmmtag/metrics"
	"github.com/akualab/hmmtag/model/hmm"
	"github.com/golang/glog"
)

// doToy samples training and test data from a known model, trains a new
// model on the training part, and decodes the test part.
func doToy(config *hmmtag.Config, met *metrics.Metrics) {

	g := readGraph(config.Toy.ModelFile)
	gen, err := hmm.NewModelFromGraph(g, hmm.Seed(config.Toy.Seed), hmm.BurnIn(config.HMM.BurnIn))
	hmmtag.Fatal(err)

	s, err := gen.Sample()
	hmmtag.Fatal(err)
	train, err := s.Take(config.Toy.TrainSize)
	hmmtag.Fatal(err)

	s, err = gen.Sample()
	hmmtag.Fatal(err)
	test, err := s.Take(config.Toy.TestSize)
	hmmtag.Fatal(err)
	glog.Infof("sampled %d training and %d test observations from [%s]", len(train), len(test), gen.Name())

	opts, err := hmmOptions(config, "toy-trained")
	hmmtag.Fatal(err)
	m, err := hmm.Train(train, opts...)
	hmmtag.Fatal(err)
	for _, src := range m.Labels() {
		for _, dst := range m.Labels() {
			glog.V(1).Infof("transition %s->%s: trained %.4f, true %.4f", src, dst, m.Transition(src, dst), gen.Transition(src, dst))
		}
	}

	w, closeResults := openResults(config)
	defer closeResults()
	ev, err := newEvaluator(m, met.Instrument(m), w, config)
	hmmtag.Fatal(err)
	ev.eval("toy", test)
	ev.report("toy")
}
