package hmm

import (
	"fmt"
	"math"

	"github.com/akualab/hmmtag/model"
)

var (
	_ model.Scorer  = (*Model)(nil)
	_ model.Decoder = (*Model)(nil)
)

// LogScore returns the log joint likelihood of a labeled sequence: the sum
// of the log transition probabilities of consecutive label pairs plus the
// log output densities of every observation. A pair with no transition
// gives -Inf. The prior of the first label is not included.
func (m *Model) LogScore(seq []model.Obs) (float64, error) {

	if !m.Trained() {
		return 0, model.ErrModelNotTrained
	}

	var logProb float64
	for i, o := range seq {
		g, ok := m.Emission(o.Label)
		if !ok {
			return 0, fmt.Errorf("position %d: label [%s]: %w", i, o.Label, model.ErrUnknownLabel)
		}
		b, err := g.LogProb(o.Value)
		if err != nil {
			return 0, fmt.Errorf("position %d: %w", i, err)
		}
		logProb += b
		if i > 0 {
			logProb += m.trans.LogProb(seq[i-1].Label, o.Label)
		}
	}
	return logProb, nil
}

// Score returns the joint likelihood of a labeled sequence. It underflows
// to zero for long sequences, use LogScore to compare them.
func (m *Model) Score(seq []model.Obs) (float64, error) {
	lp, err := m.LogScore(seq)
	if err != nil {
		return 0, err
	}
	return math.Exp(lp), nil
}
