// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmmtag

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {

	// Create config yaml file.
	fn := filepath.Join(os.TempDir(), "hmmtag-config.yaml")
	t.Logf("Config File: %s.", fn)
	err := ioutil.WriteFile(fn, []byte(config), 0644)
	CheckError(t, err)

	// Read config.
	config, e := ReadConfig(fn)
	CheckError(t, e)

	// Check Config content.
	t.Logf("Config: %+v", config)

	if config.HMM.Prior != "stationary" {
		t.Fatalf("Prior is [%s]. Expected \"stationary\".", config.HMM.Prior)
	}

	if config.Corpus.DataSet != "wsj.yaml" {
		t.Fatalf("DataSet is [%s]. Expected \"wsj.yaml\".", config.Corpus.DataSet)
	}

	CompareFloats(t, 0.001, config.HMM.MinStdDev, "min_stddev", 1e-12)
	CompareFloats(t, -1, config.Corpus.BoundaryValue, "boundary_value", 1e-12)

	// Defaults survive for fields not in the file.
	if config.Toy.TrainSize != 10000 || config.Toy.TestSize != 500 {
		t.Fatalf("Toy defaults lost: %+v", config.Toy)
	}
	CompareFloats(t, 0.8, config.Corpus.TrainFrac, "train_frac", 1e-12)
	CompareFloats(t, 0.01, config.Corpus.BoundaryMinStdDev, "boundary_min_stddev", 1e-12)
	if config.HMM.BurnIn != 1000 {
		t.Fatalf("BurnIn is [%d]. Expected 1000.", config.HMM.BurnIn)
	}
}

func TestConfigValidate(t *testing.T) {

	_, e := ReadConfigReader(strings.NewReader("corpus: {train_frac: 0.9, validation_frac: 0.2}\n"))
	if e == nil {
		t.Fatalf("expected invalid split error")
	}
	_, e = ReadConfigReader(strings.NewReader("hmm: {min_stddev: -1}\n"))
	if e == nil {
		t.Fatalf("expected negative min_stddev error")
	}
	_, e = ReadConfigReader(strings.NewReader("hmm: {prior: gaussian}\n"))
	if e == nil {
		t.Fatalf("expected unknown prior error")
	}
	_, e = ReadConfigReader(strings.NewReader("corpus: {boundary_min_stddev: -0.5}\n"))
	if e == nil {
		t.Fatalf("expected negative boundary_min_stddev error")
	}
	for _, p := range append(Priors, "") {
		c := DefaultConfig()
		c.HMM.Prior = p
		CheckError(t, c.Validate())
	}
}

const config string = `
hmm:
  prior: stationary
  min_stddev: 0.001
corpus:
  data_set: wsj.yaml
  boundary_value: -1
`
