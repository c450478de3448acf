package pass

import (
	"math"

	"github.com/cwbudde/algo-wah/dsp/filter/biquad"
)

// LowpassRBJ designs a second-order lowpass with the Audio EQ Cookbook
// formula. It returns zero coefficients for freq outside (0, Nyquist),
// a non-positive sample rate or a non-positive q.
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 || q <= 0 {
		return biquad.Coefficients{}
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	inv := 1 / a0

	return biquad.Coefficients{
		B0: (1 - cw) / 2 * inv,
		B1: (1 - cw) * inv,
		B2: (1 - cw) / 2 * inv,
		A1: -2 * cw * inv,
		A2: (1 - alpha) * inv,
	}
}

// HighpassRBJ designs a second-order highpass with the Audio EQ Cookbook
// formula. Invalid arguments yield zero coefficients as for LowpassRBJ.
func HighpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 || q <= 0 {
		return biquad.Coefficients{}
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	inv := 1 / (1 + alpha)

	return biquad.Coefficients{
		B0: (1 + cw) / 2 * inv,
		B1: -(1 + cw) * inv,
		B2: (1 + cw) / 2 * inv,
		A1: -2 * cw * inv,
		A2: (1 - alpha) * inv,
	}
}

// HighShelfRBJ designs a second-order high shelf with gainDB above freq.
// Invalid arguments yield zero coefficients.
func HighShelfRBJ(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 || q <= 0 ||
		math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		return biquad.Coefficients{}
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	a0 := (a + 1) - (a-1)*cw + beta
	inv := 1 / a0

	return biquad.Coefficients{
		B0: a * ((a + 1) + (a-1)*cw + beta) * inv,
		B1: -2 * a * ((a - 1) + (a+1)*cw) * inv,
		B2: a * ((a + 1) + (a-1)*cw - beta) * inv,
		A1: 2 * ((a - 1) - (a+1)*cw) * inv,
		A2: ((a + 1) - (a-1)*cw - beta) * inv,
	}
}
