package glauber

import "math"

// maxExp bounds the Boltzmann exponent dE/T. Beyond it exp would overflow
// float64 range; the acceptance probability has already saturated to 0 or
// 1 well before that, so the argument is clamped instead of propagating an
// error.
const maxExp = 500.0

// Rule is the Glauber (heat-bath) transition rule at a fixed temperature.
// Temperature is in Boltzmann units (k_B = 1) and must be positive.
type Rule struct {
	Temperature float64
}

// Probability returns the acceptance probability 1/(1+exp(dE/T)) for a
// flip with energy change dE. As T approaches zero the rule becomes
// deterministic: near 1 for dE < 0, near 0 for dE > 0, and 0.5 at dE = 0.
func (r Rule) Probability(dE int) float64 {
	x := float64(dE) / r.Temperature
	if x > maxExp {
		return 0
	}
	if x < -maxExp {
		return 1
	}
	return 1 / (1 + math.Exp(x))
}

// Accept draws u uniformly from [0,1) and reports whether u < Probability(dE).
func (r Rule) Accept(dE int, u float64) bool {
	return u < r.Probability(dE)
}
