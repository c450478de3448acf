package envelope

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-wah/dsp/filter/biquad"
	"github.com/cwbudde/algo-wah/dsp/filter/design/pass"
)

const (
	defaultCutoffHz = 10.0
	defaultOrder    = 3

	// MaxOrder bounds the smoothing cascade.
	MaxOrder = 8
)

// ErrLengthMismatch is returned when destination and source lengths differ.
var ErrLengthMismatch = errors.New("envelope: destination and source lengths differ")

// FollowerOption mutates follower construction parameters.
type FollowerOption func(*followerConfig) error

type followerConfig struct {
	cutoffHz float64
	order    int
}

func defaultFollowerConfig() followerConfig {
	return followerConfig{
		cutoffHz: defaultCutoffHz,
		order:    defaultOrder,
	}
}

// WithCutoffHz sets the smoothing lowpass cutoff in Hz (> 0).
func WithCutoffHz(hz float64) FollowerOption {
	return func(cfg *followerConfig) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("envelope cutoff must be > 0 and finite: %f", hz)
		}

		cfg.cutoffHz = hz

		return nil
	}
}

// WithOrder sets the Butterworth order in [1, MaxOrder].
func WithOrder(order int) FollowerOption {
	return func(cfg *followerConfig) error {
		if order < 1 || order > MaxOrder {
			return fmt.Errorf("envelope order must be in [1, %d]: %d", MaxOrder, order)
		}

		cfg.order = order

		return nil
	}
}

// Follower tracks the amplitude envelope of a mono stream.
type Follower struct {
	sampleRate float64
	cutoffHz   float64
	order      int

	chain *biquad.Chain
}

// NewFollower creates a follower with a 10 Hz, 3rd-order smoothing filter
// unless overridden by options.
func NewFollower(sampleRate float64, opts ...FollowerOption) (*Follower, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("envelope sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultFollowerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.cutoffHz >= sampleRate/2 {
		return nil, fmt.Errorf("envelope cutoff must be below Nyquist (%f): %f", sampleRate/2, cfg.cutoffHz)
	}

	coeffs := pass.ButterworthLP(cfg.cutoffHz, cfg.order, sampleRate)
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("envelope filter design failed: cutoff=%f order=%d", cfg.cutoffHz, cfg.order)
	}

	return &Follower{
		sampleRate: sampleRate,
		cutoffHz:   cfg.cutoffHz,
		order:      cfg.order,
		chain:      biquad.NewChain(coeffs),
	}, nil
}

// ProcessSample rectifies and smooths one sample.
func (f *Follower) ProcessSample(x float64) float64 {
	return f.chain.ProcessSample(math.Abs(x))
}

// Process returns the envelope of src in a newly allocated slice.
func (f *Follower) Process(src []float64) []float64 {
	out := make([]float64, len(src))
	_ = f.ProcessTo(out, src)

	return out
}

// ProcessTo writes the envelope of src into dst. dst may alias src.
func (f *Follower) ProcessTo(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), len(src))
	}

	for i, x := range src {
		dst[i] = math.Abs(x)
	}

	f.chain.ProcessBlock(dst)

	return nil
}

// Reset returns the filter to rest, so silence in yields silence out.
func (f *Follower) Reset() {
	f.chain.Reset()
}

// ResetTo primes the filter as if it had been fed the constant rectified
// level forever. The next output then starts at level instead of ramping
// up from zero.
func (f *Follower) ResetTo(level float64) {
	f.chain.PrimeSteadyState(math.Abs(level))
}

// SampleRate returns sample rate in Hz.
func (f *Follower) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the smoothing cutoff in Hz.
func (f *Follower) CutoffHz() float64 { return f.cutoffHz }

// Order returns the Butterworth order.
func (f *Follower) Order() int { return f.order }
