package hmm

import (
	"fmt"
	"math"

	"github.com/akualab/hmmtag/floatx"
	"github.com/akualab/hmmtag/model"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// PriorType selects the distribution over labels before the first
// observation.
type PriorType int

const (
	// UniformPrior assigns 1/N to every label.
	UniformPrior PriorType = iota
	// StartPrior uses the transitions out of model.Start.
	StartPrior
	// StationaryPrior uses the stationary distribution of the chain.
	StationaryPrior
)

const (
	maxStationaryIter = 1000
	stationaryTol     = 1e-12
)

var priorNames = map[PriorType]string{
	UniformPrior:    "uniform",
	StartPrior:      "start",
	StationaryPrior: "stationary",
}

func (p PriorType) String() string {
	if s, ok := priorNames[p]; ok {
		return s
	}
	return fmt.Sprintf("PriorType(%d)", int(p))
}

// ParsePrior converts a name to a PriorType. The empty string is uniform.
func ParsePrior(s string) (PriorType, error) {
	if s == "" {
		return UniformPrior, nil
	}
	for p, name := range priorNames {
		if name == s {
			return p, nil
		}
	}
	return UniformPrior, fmt.Errorf("unknown prior [%s]", s)
}

// logProbs returns the prior in model order and log scale.
func (p PriorType) logProbs(m *Model) ([]float64, error) {

	var probs []float64
	switch p {
	case UniformPrior:
		probs = uniform(len(m.labels))
	case StartPrior:
		probs = startProbs(m)
	case StationaryPrior:
		probs = stationaryProbs(m)
	default:
		return nil, fmt.Errorf("unknown prior [%s]", p)
	}
	return floatx.Apply(floatx.Log, probs, nil), nil
}

func uniform(n int) []float64 {
	probs := make([]float64, n)
	floatx.Fill(probs, 1.0/float64(n))
	return probs
}

func startProbs(m *Model) []float64 {

	probs := make([]float64, len(m.labels))
	row := m.trans.Row(model.Start)
	for i, lab := range m.labels {
		probs[i], _ = row.Prob(lab)
	}
	if !floatx.Normalize(probs) {
		glog.Warningf("no transitions out of [%s], using uniform prior", model.Start)
		return uniform(len(m.labels))
	}
	return probs
}

// stationaryProbs runs power iteration over the transition matrix
// restricted to the label set.
func stationaryProbs(m *Model) []float64 {

	n := len(m.labels)
	pi := uniform(n)
	next := make([]float64, n)
	for iter := 0; iter < maxStationaryIter; iter++ {
		floatx.Fill(next, 0)
		for j := range m.labels {
			for k := range m.labels {
				if lp := m.logRev[j][k]; !math.IsInf(lp, -1) {
					next[j] += pi[k] * math.Exp(lp)
				}
			}
		}
		if !floatx.Normalize(next) {
			glog.Warningf("chain has no transitions within the label set, using uniform prior")
			return uniform(n)
		}
		dist := floats.Distance(pi, next, 1)
		copy(pi, next)
		if dist < stationaryTol {
			glog.V(2).Infof("stationary distribution converged after %d iterations", iter+1)
			break
		}
	}
	return pi
}
