package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/akualab/hmmtag"
	"github.com/akualab/hmmtag/model"
	"github.com/akualab/hmmtag/model/hmm"
)

// doSample prints labeled observations from a random walk, one per line.
func doSample(config *hmmtag.Config) {

	g := readGraph(config.Toy.ModelFile)
	m, err := hmm.NewModelFromGraph(g, hmm.Seed(config.HMM.Seed), hmm.BurnIn(config.HMM.BurnIn))
	hmmtag.Fatal(err)

	var opts []hmm.SampleOption
	if len(*sampleStart) > 0 {
		opts = append(opts, hmm.StartAt(model.Label(*sampleStart)))
	}
	if *sampleSeed != 0 {
		opts = append(opts, hmm.SampleSeed(*sampleSeed))
	}
	s, err := m.Sample(opts...)
	hmmtag.Fatal(err)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for i := 0; i < *sampleN; i++ {
		o, err := s.Next()
		hmmtag.Fatal(err)
		fmt.Fprintf(w, "%s\t%.6f\n", o.Label, o.Value)
	}
}
