// Package hmmtag holds the shared pieces of the hmmtag toolkit: configuration,
// data sets, model graphs, and evaluation helpers.
package hmmtag

import (
	"math"

	"github.com/golang/glog"
)

// Result is the decoding result for one sequence.
type Result struct {
	BatchID  string   `json:"batchid"`
	Ref      []string `json:"ref"`
	Hyp      []string `json:"hyp"`
	Correct  int      `json:"correct"`
	Total    int      `json:"total"`
	HypScore float64  `json:"hyp_log_score"`
	RefScore float64  `json:"ref_log_score"`
}

// Finite replaces infinities with ±math.MaxFloat64 so the value can be
// encoded as JSON.
func Finite(v float64) float64 {
	switch {
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	case math.IsInf(v, 1):
		return math.MaxFloat64
	}
	return v
}

func Fatal(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}
