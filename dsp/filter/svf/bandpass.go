package svf

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-wah/dsp/core"
)

const (
	// MinCenterHz is the lowest center frequency accepted by SetParams.
	MinCenterHz = 20.0
	// MaxCenterRatio bounds the center frequency to this fraction of Nyquist.
	MaxCenterRatio = 0.9
	// MinQ and MaxQ bound the resonance accepted by SetParams.
	MinQ = 0.1
	MaxQ = 10.0

	defaultCenterHz = 1000.0
	defaultQ        = 0.7
)

// Bandpass is a two-pole Chamberlin state-variable filter. The frequency
// coefficient is re-derived whenever SetParams sees a new (center, Q) pair.
//
// Stability is not guaranteed for every clamped combination: the topology
// stays stable while f stays well below 2 and 1/Q is moderate, which holds
// across the usual wah range (a few hundred Hz to a few kHz, Q around 1-5).
type Bandpass struct {
	sampleRate float64
	maxCenter  float64

	centerHz float64
	q        float64

	f    float64
	invQ float64

	low  float64
	band float64
	high float64
}

// NewBandpass creates a filter centered at 1 kHz with Q 0.7.
func NewBandpass(sampleRate float64) (*Bandpass, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("svf: sample rate must be > 0 and finite: %f", sampleRate)
	}

	b := &Bandpass{
		sampleRate: sampleRate,
		maxCenter:  sampleRate / 2 * MaxCenterRatio,
	}
	b.retune(b.clampCenter(defaultCenterHz), defaultQ)

	return b, nil
}

// SetParams clamps centerHz to [MinCenterHz, 0.9*Nyquist] and q to
// [MinQ, MaxQ], then recomputes f = 2*sin(pi*centerHz/sampleRate).
// NaN arguments fall back to the lower bound. When the clamped pair matches
// the current one the coefficients are left untouched.
func (b *Bandpass) SetParams(centerHz, q float64) {
	centerHz = b.clampCenter(centerHz)
	q = clampQ(q)

	if centerHz == b.centerHz && q == b.q {
		return
	}

	b.retune(centerHz, q)
}

// ProcessSample advances the filter one step and returns the band output.
func (b *Bandpass) ProcessSample(x float64) float64 {
	b.high = x - b.invQ*b.band - b.low
	b.band = core.FlushDenormals(b.band + b.f*b.high)
	b.low = core.FlushDenormals(b.low + b.f*b.band)

	return b.band
}

// ProcessInPlace filters buf with the current, fixed parameters.
func (b *Bandpass) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = b.ProcessSample(x)
	}
}

// Reset clears the integrators. Parameters are kept.
func (b *Bandpass) Reset() {
	b.low = 0
	b.band = 0
	b.high = 0
}

// Outputs returns the most recent lowpass, bandpass and highpass values.
func (b *Bandpass) Outputs() (low, band, high float64) {
	return b.low, b.band, b.high
}

// SampleRate returns the sample rate in Hz.
func (b *Bandpass) SampleRate() float64 { return b.sampleRate }

// CenterHz returns the clamped center frequency in Hz.
func (b *Bandpass) CenterHz() float64 { return b.centerHz }

// Q returns the clamped quality factor.
func (b *Bandpass) Q() float64 { return b.q }

// Coefficient returns the frequency coefficient f.
func (b *Bandpass) Coefficient() float64 { return b.f }

// MaxCenterHz returns the upper center-frequency clamp.
func (b *Bandpass) MaxCenterHz() float64 { return b.maxCenter }

func (b *Bandpass) retune(centerHz, q float64) {
	b.centerHz = centerHz
	b.q = q
	b.f = 2 * math.Sin(math.Pi*centerHz/b.sampleRate)
	b.invQ = 1 / q
}

func (b *Bandpass) clampCenter(hz float64) float64 {
	if math.IsNaN(hz) {
		return MinCenterHz
	}

	return core.Clamp(hz, MinCenterHz, b.maxCenter)
}

func clampQ(q float64) float64 {
	if math.IsNaN(q) {
		return MinQ
	}

	return core.Clamp(q, MinQ, MaxQ)
}
