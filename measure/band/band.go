// Package band measures how the energy of a signal is spread over frequency.
//
// Analyze windows the signal, zero-pads it to a power of two and keeps the
// one-sided power spectrum. The Result answers questions such as "what share
// of the energy lies between 150 Hz and 2.5 kHz" or "where is the spectral
// centroid", which is how wah sweeps are checked and reported.
package band

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-wah/dsp/spectrum"
	"github.com/cwbudde/algo-wah/dsp/window"
)

// Errors returned by Analyze.
var (
	ErrEmptySignal       = errors.New("band: empty signal")
	ErrInvalidSampleRate = errors.New("band: sample rate must be > 0 and finite")
	ErrInvalidFFTSize    = errors.New("band: FFT size must be a power of two >= signal length")
)

// Option configures Analyze.
type Option func(*config)

type config struct {
	fftSize    int
	windowType window.Type
}

// WithFFTSize fixes the transform length. The default is the next power of
// two at or above the signal length.
func WithFFTSize(n int) Option {
	return func(cfg *config) { cfg.fftSize = n }
}

// WithWindow selects the analysis window. Default is Hann.
func WithWindow(t window.Type) Option {
	return func(cfg *config) { cfg.windowType = t }
}

// Result is a one-sided power spectrum.
type Result struct {
	SampleRate float64
	FFTSize    int
	// Power holds |X[k]|^2 for k = 0..FFTSize/2.
	Power []float64
}

// Analyze computes the power spectrum of signal.
func Analyze(signal []float64, sampleRate float64, opts ...Option) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Result{}, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	cfg := config{windowType: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	fftSize := cfg.fftSize
	if fftSize == 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if fftSize < len(signal) || fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return Result{}, fmt.Errorf("%w: size=%d len=%d", ErrInvalidFFTSize, fftSize, len(signal))
	}

	coeffs := window.Generate(cfg.windowType, len(signal))

	in := make([]complex128, fftSize)
	for i, x := range signal {
		w := 1.0
		if len(coeffs) == len(signal) {
			w = coeffs[i]
		}
		in[i] = complex(x*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("band: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("band: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	power := make([]float64, bins)
	spectrum.PowerFromParts(power, re, im)

	return Result{SampleRate: sampleRate, FFTSize: fftSize, Power: power}, nil
}

// BinHz returns the frequency spacing between bins.
func (r Result) BinHz() float64 {
	if r.FFTSize == 0 {
		return 0
	}

	return r.SampleRate / float64(r.FFTSize)
}

// Total returns the summed power of all bins.
func (r Result) Total() float64 {
	total := 0.0
	for _, p := range r.Power {
		total += p
	}

	return total
}

// EnergyIn sums the power of bins whose center lies in [loHz, hiHz].
func (r Result) EnergyIn(loHz, hiHz float64) float64 {
	df := r.BinHz()
	sum := 0.0
	for k, p := range r.Power {
		f := float64(k) * df
		if f >= loHz && f <= hiHz {
			sum += p
		}
	}

	return sum
}

// EnergyRatio returns EnergyIn(loHz, hiHz) as a share of Total, or 0 for a
// silent signal.
func (r Result) EnergyRatio(loHz, hiHz float64) float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}

	return r.EnergyIn(loHz, hiHz) / total
}

// Centroid returns the power-weighted mean frequency, or 0 for a silent
// signal.
func (r Result) Centroid() float64 {
	df := r.BinHz()

	var num, den float64
	for k, p := range r.Power {
		num += float64(k) * df * p
		den += p
	}

	if den == 0 {
		return 0
	}

	return num / den
}

// PeakHz returns the frequency of the strongest bin.
func (r Result) PeakHz() float64 {
	best := 0
	for k, p := range r.Power {
		if p > r.Power[best] {
			best = k
		}
	}

	return float64(best) * r.BinHz()
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
