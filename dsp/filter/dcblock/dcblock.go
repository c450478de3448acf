// Package dcblock removes DC offset with a fixed first-order highpass.
package dcblock

import "github.com/cwbudde/algo-wah/dsp/filter/biquad"

// Pole is the feedback coefficient of the blocker,
// y[n] = x[n] - x[n-1] + Pole*y[n-1].
const Pole = 0.995

// Blocker is a DC blocking filter with a zero at DC and a pole at Pole.
// State starts at rest and is carried across calls.
type Blocker struct {
	section biquad.Section
}

// New returns a Blocker at rest.
func New() *Blocker {
	return &Blocker{
		section: biquad.Section{
			Coefficients: biquad.Coefficients{B0: 1, B1: -1, A1: -Pole},
		},
	}
}

// ProcessSample filters one sample.
func (b *Blocker) ProcessSample(x float64) float64 {
	return b.section.ProcessSample(x)
}

// ProcessInPlace filters buf in place.
func (b *Blocker) ProcessInPlace(buf []float64) {
	b.section.ProcessBlock(buf)
}

// Reset returns the filter to rest.
func (b *Blocker) Reset() {
	b.section.Reset()
}
