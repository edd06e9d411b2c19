package model

import (
	"fmt"
	"math/rand"
)

// RandNormal draws a value from a normal distribution.
func RandNormal(mean, sd float64, r *rand.Rand) float64 {
	return r.NormFloat64()*sd + mean
}

// RandLabel selects a label from a discrete distribution using the inverse
// CDF. A uniform threshold is reduced by each probability, in order, until
// it drops to zero or below.
func RandLabel(labs []Label, probs []float64, r *rand.Rand) (Label, error) {
	if len(labs) != len(probs) {
		return "", fmt.Errorf("length of labels [%d] and length of probs [%d] don't match", len(labs), len(probs))
	}
	x := r.Float64()
	for i, p := range probs {
		x -= p
		if x <= 0.0 {
			return labs[i], nil
		}
	}
	return "", fmt.Errorf("distribution over %d labels exhausted with remainder %g: %w", len(labs), x, ErrInvariantViolation)
}
