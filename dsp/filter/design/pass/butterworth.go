package pass

import (
	"github.com/cwbudde/algo-wah/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// The bilinear transform is prewarped at freq, so the -3 dB point lands
// exactly on the requested cutoff. For odd orders, the final section is
// first-order (B2=A2=0). It returns nil for order <= 0 or a cutoff outside
// (0, Nyquist).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, LowpassRBJ(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}
