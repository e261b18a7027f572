package dashboard

import "math/rand/v2"

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand satisfies it; tests plug in scripted sequences.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns a source backed by the process-wide generator.
func DefaultSource() RandomSource { return globalSource{} }
