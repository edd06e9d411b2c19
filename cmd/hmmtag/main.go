// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"io/ioutil"
	"os"
	osuser "os/user"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/akualab/hmmtag"
	"github.com/akualab/hmmtag/metrics"
	"github.com/akualab/hmmtag/model/hmm"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	appName    = "hmmtag"
	appVersion = "0.1"
)

var (
	props  *Properties
	logDir *string
)

var (
	app         = kingpin.New(appName, "Sequence tagging with Gaussian hidden Markov models.")
	logToStderr = app.Flag("log-stderr", "Logs are written to standard error instead of files.").Default("true").Bool()
	vLevel      = app.Flag("log-level", "Enable V-leveled logging at the specified level.").Default("0").Short('v').String()
	configFile  = app.Flag("config-file", "YAML config file.").Short('c').String()
	resultsFile = app.Flag("results-file", "Write JSON results to this file.").Short('r').String()
	metricsAddr = app.Flag("metrics-addr", "Serve prometheus metrics on this address.").String()
	prior       = app.Flag("prior", "Initial label distribution.").Enum(hmmtag.Priors...)
	minStdDev   = app.Flag("min-stddev", "Floor for output standard deviations.").Default("-1").Float64()

	toy          = app.Command("toy", "Train and decode data sampled from a hand built model.")
	toyModelFile = toy.Flag("model-file", "YAML graph of the generating model.").Short('m').String()
	toyTrainSize = toy.Flag("train-size", "Number of training samples.").Default("0").Int()
	toyTestSize  = toy.Flag("test-size", "Number of test samples.").Default("0").Int()
	toySeed      = toy.Flag("seed", "Seed for the generating model.").Default("0").Int64()

	tag        = app.Command("tag", "Train on a tagged corpus and decode its test part.")
	tagDataSet = tag.Flag("data-set", "YAML file with the list of corpus files.").Short('d').String()

	sample          = app.Command("sample", "Print samples from a hand built model.")
	sampleModelFile = sample.Flag("model-file", "YAML graph of the model.").Short('m').String()
	sampleN         = sample.Flag("num", "Number of samples.").Short('n').Default("20").Int()
	sampleStart     = sample.Flag("start", "Start label. Skips the burn-in.").String()
	sampleSeed      = sample.Flag("seed", "Seed for the random walk.").Default("0").Int64()
)

// Properties of hmmtag.
type Properties struct {
	Workspace string `toml:"workspace_dir"`
	LogDir    string `toml:"log_dir"`
}

func init() {
	currDir, e1 := os.Getwd()
	hmmtag.Fatal(e1)
	propPath := currDir
	u, e2 := osuser.Current()
	if e2 == nil {
		propPath = filepath.Join(u.HomeDir, ".config", appName)
	}
	propPath = filepath.Join(propPath, "properties.toml")
	propEnvVar := os.Getenv("HMMTAG_PROPERTIES")
	if len(propEnvVar) > 0 {
		propPath = propEnvVar
	}

	// Read toml properties file from propPath.
	props = new(Properties)
	dat, e3 := ioutil.ReadFile(propPath)
	if e3 == nil {
		_, e4 := toml.Decode(string(dat), props)
		hmmtag.Fatal(e4)
	} else {
		glog.V(2).Infof("unable to read properties file - %s", e3)
	}
	defaultLogDir := filepath.Join(currDir, "log")
	if len(props.LogDir) > 0 {
		defaultLogDir = props.LogDir
	}
	logDir = app.Flag("log", "Log output dir.").Default(defaultLogDir).String()
}

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	app.Version(appVersion)
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	initGlog()
	defer glog.Flush()
	checkDir(props.Workspace)

	config := loadConfig()
	printAppValues(config)
	met := startMetrics(config.MetricsAddr)

	switch cmd {

	case toy.FullCommand():
		glog.V(3).Info("start toy command")
		doToy(config, met)

	case tag.FullCommand():
		glog.V(3).Info("start tag command")
		doTag(config, met)

	case sample.FullCommand():
		glog.V(3).Info("start sample command")
		doSample(config)

	default:
		app.Usage(os.Args[1:])
	}
}

// loadConfig reads the config file, if any, and applies the command line
// flags on top of it.
func loadConfig() *hmmtag.Config {

	config := hmmtag.DefaultConfig()
	if len(*configFile) > 0 {
		var e error
		config, e = hmmtag.ReadConfig(*configFile)
		hmmtag.Fatal(e)
	}

	// Command flags overwrite config file params.
	stringParam(*resultsFile, &config.ResultsFile)
	stringParam(*metricsAddr, &config.MetricsAddr)
	stringParam(*prior, &config.HMM.Prior)
	if *minStdDev >= 0 {
		config.HMM.MinStdDev = *minStdDev
	}
	stringParam(*toyModelFile, &config.Toy.ModelFile)
	stringParam(*sampleModelFile, &config.Toy.ModelFile)
	intParam(*toyTrainSize, &config.Toy.TrainSize)
	intParam(*toyTestSize, &config.Toy.TestSize)
	if *toySeed != 0 {
		config.Toy.Seed = *toySeed
	}
	stringParam(*tagDataSet, &config.Corpus.DataSet)

	hmmtag.Fatal(config.Validate())
	if len(config.ResultsFile) > 0 && !filepath.IsAbs(config.ResultsFile) && len(props.Workspace) > 0 {
		config.ResultsFile = filepath.Join(props.Workspace, config.ResultsFile)
	}
	return config
}

func stringParam(flagValue string, param *string) {
	if len(flagValue) > 0 {
		*param = flagValue
	}
}

func intParam(flagValue int, param *int) {
	if flagValue > 0 {
		*param = flagValue
	}
}

// hmmOptions converts the config to training options.
func hmmOptions(config *hmmtag.Config, name string) ([]hmm.Option, error) {

	p, e := hmm.ParsePrior(config.HMM.Prior)
	if e != nil {
		return nil, e
	}
	return []hmm.Option{
		hmm.Name(name),
		hmm.Prior(p),
		hmm.MinStdDev(config.HMM.MinStdDev),
		hmm.BurnIn(config.HMM.BurnIn),
		hmm.Seed(config.HMM.Seed),
	}, nil
}

func startMetrics(addr string) *metrics.Metrics {

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	met := metrics.New(reg)
	if len(addr) > 0 {
		glog.Infof("serving metrics on %s/metrics", addr)
		go func() {
			glog.Error(metrics.Serve(addr, reg))
		}()
	}
	return met
}

// Creates dir if it doesn't exist.
func checkDir(path string) {

	if len(path) == 0 {
		return
	}
	e := os.MkdirAll(path, 0755)
	if e != nil {
		glog.Fatal(e)
	}
}

func initGlog() {

	checkDir(*logDir)
	if *logToStderr {
		flag.Set("alsologtostderr", "true")
	}
	flag.Set("v", *vLevel)
	flag.Set("log_dir", *logDir)
}

func printAppValues(config *hmmtag.Config) {
	glog.Info("app properties: ", *props)
	glog.Info("app version: ", appVersion)
	glog.Info("app log to std err: ", *logToStderr)
	glog.Info("app log level: ", *vLevel)
	glog.Info("app log dir: ", *logDir)
	glog.V(1).Infof("app config: %+v", *config)
}
