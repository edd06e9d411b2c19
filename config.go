package hmmtag

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the settings of the hmmtag commands. Command line flags
// overwrite config values.
type Config struct {
	HMM         HMM    `yaml:"hmm" json:"hmm"`
	Corpus      Corpus `yaml:"corpus" json:"corpus"`
	Toy         Toy    `yaml:"toy" json:"toy"`
	ResultsFile string `yaml:"results_file,omitempty" json:"results_file,omitempty"`
	MetricsAddr string `yaml:"metrics_addr,omitempty" json:"metrics_addr,omitempty"`
}

type HMM struct {
	Prior     string  `yaml:"prior,omitempty" json:"prior,omitempty"`
	MinStdDev float64 `yaml:"min_stddev,omitempty" json:"min_stddev,omitempty"`
	BurnIn    int     `yaml:"burn_in,omitempty" json:"burn_in,omitempty"`
	Seed      int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Priors lists the accepted values of hmm.prior.
var Priors = []string{"uniform", "start", "stationary"}

type Corpus struct {
	DataSet       string  `yaml:"data_set,omitempty" json:"data_set,omitempty"`
	BoundaryValue float64 `yaml:"boundary_value" json:"boundary_value"`
	// Floor for output standard deviations when hmm.min_stddev is zero.
	// Boundary labels always emit BoundaryValue and need one to be decoded.
	BoundaryMinStdDev float64 `yaml:"boundary_min_stddev,omitempty" json:"boundary_min_stddev,omitempty"`
	TrainFrac         float64 `yaml:"train_frac,omitempty" json:"train_frac,omitempty"`
	ValidationFrac    float64 `yaml:"validation_frac,omitempty" json:"validation_frac,omitempty"`
}

type Toy struct {
	ModelFile string `yaml:"model_file,omitempty" json:"model_file,omitempty"`
	TrainSize int    `yaml:"train_size,omitempty" json:"train_size,omitempty"`
	TestSize  int    `yaml:"test_size,omitempty" json:"test_size,omitempty"`
	Seed      int64  `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		HMM: HMM{
			Prior:     "uniform",
			MinStdDev: 0,
			BurnIn:    1000,
			Seed:      33,
		},
		Corpus: Corpus{
			BoundaryMinStdDev: 0.01,
			TrainFrac:         0.8,
			ValidationFrac:    0.1,
		},
		Toy: Toy{
			TrainSize: 10000,
			TestSize:  500,
			Seed:      33,
		},
	}
}

// ReadConfigReader reads a YAML config. Missing fields keep their default
// values.
func ReadConfigReader(r io.Reader) (*Config, error) {

	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(b, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ReadConfig reads a YAML config file.
func ReadConfig(fn string) (*Config, error) {

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadConfigReader(f)
}

// Validate checks value ranges.
func (c *Config) Validate() error {

	if c.HMM.MinStdDev < 0 {
		return fmt.Errorf("min_stddev must not be negative, got %f", c.HMM.MinStdDev)
	}
	if !validPrior(c.HMM.Prior) {
		return fmt.Errorf("unknown prior [%s], use one of %v", c.HMM.Prior, Priors)
	}
	if c.HMM.BurnIn < 0 {
		return fmt.Errorf("burn_in must not be negative, got %d", c.HMM.BurnIn)
	}
	if c.Corpus.BoundaryMinStdDev < 0 {
		return fmt.Errorf("boundary_min_stddev must not be negative, got %f", c.Corpus.BoundaryMinStdDev)
	}
	tf, vf := c.Corpus.TrainFrac, c.Corpus.ValidationFrac
	if tf <= 0 || vf < 0 || tf+vf > 1 {
		return fmt.Errorf("invalid split train_frac=%f validation_frac=%f", tf, vf)
	}
	if c.Toy.TrainSize < 0 || c.Toy.TestSize < 0 {
		return fmt.Errorf("toy sizes must not be negative")
	}
	return nil
}

func validPrior(p string) bool {
	if p == "" {
		return true
	}
	for _, name := range Priors {
		if p == name {
			return true
		}
	}
	return false
}
