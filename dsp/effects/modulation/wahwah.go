package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-wah/dsp/core"
	"github.com/cwbudde/algo-wah/dsp/envelope"
	"github.com/cwbudde/algo-wah/dsp/filter/dcblock"
	"github.com/cwbudde/algo-wah/dsp/filter/svf"
)

const (
	defaultWahMinFreqHz        = 200.0
	defaultWahMaxFreqHz        = 2000.0
	defaultWahQ                = 2.0
	defaultWahEnvelopeCutoffHz = 10.0

	// OutputGain compensates the level lost in the bandpass.
	OutputGain = 2.0

	envelopeNormEpsilon = 1e-7
)

// WahWahOption mutates wah-wah construction parameters.
type WahWahOption func(*wahWahConfig) error

type wahWahConfig struct {
	minFreqHz        float64
	maxFreqHz        float64
	q                float64
	envelopeCutoffHz float64
	pedal            *Pedal
}

func defaultWahWahConfig() wahWahConfig {
	return wahWahConfig{
		minFreqHz:        defaultWahMinFreqHz,
		maxFreqHz:        defaultWahMaxFreqHz,
		q:                defaultWahQ,
		envelopeCutoffHz: defaultWahEnvelopeCutoffHz,
	}
}

// WithWahFrequencyRangeHz sets the swept center frequency range in Hz.
func WithWahFrequencyRangeHz(minFreqHz, maxFreqHz float64) WahWahOption {
	return func(cfg *wahWahConfig) error {
		if err := validateFrequencyRange(minFreqHz, maxFreqHz); err != nil {
			return err
		}

		cfg.minFreqHz = minFreqHz
		cfg.maxFreqHz = maxFreqHz

		return nil
	}
}

// WithWahQ sets the bandpass resonance (> 0). The filter clamps it to
// [svf.MinQ, svf.MaxQ].
func WithWahQ(q float64) WahWahOption {
	return func(cfg *wahWahConfig) error {
		if err := validateQ(q); err != nil {
			return err
		}

		cfg.q = q

		return nil
	}
}

// WithWahEnvelopeCutoffHz sets the envelope follower cutoff in Hz (> 0).
func WithWahEnvelopeCutoffHz(hz float64) WahWahOption {
	return func(cfg *wahWahConfig) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return invalidParam("wah-wah envelope cutoff must be > 0 and finite: %f", hz)
		}

		cfg.envelopeCutoffHz = hz

		return nil
	}
}

// WithWahPedal attaches a pedal at construction.
func WithWahPedal(p *Pedal) WahWahOption {
	return func(cfg *wahWahConfig) error {
		cfg.pedal = p
		return nil
	}
}

// WahWah is a bandpass sweep driven either by the input envelope or by a
// pedal. Each call maps its control trace onto [MinFreqHz, MaxFreqHz],
// retunes the filter every sample, removes DC and applies OutputGain.
//
// Filter state is carried across calls, so a stream may be processed in
// blocks of any size. A WahWah must not be shared between streams.
type WahWah struct {
	sampleRate       float64
	minFreqHz        float64
	maxFreqHz        float64
	q                float64
	envelopeCutoffHz float64

	follower *envelope.Follower
	bandpass *svf.Bandpass
	dc       *dcblock.Blocker
	pedal    *Pedal

	control []float64
}

// NewWahWah creates a wah-wah with envelope control and practical defaults.
func NewWahWah(sampleRate float64, opts ...WahWahOption) (*WahWah, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, invalidParam("wah-wah sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultWahWahConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	w := &WahWah{
		sampleRate:       sampleRate,
		minFreqHz:        cfg.minFreqHz,
		maxFreqHz:        cfg.maxFreqHz,
		q:                cfg.q,
		envelopeCutoffHz: cfg.envelopeCutoffHz,
		pedal:            cfg.pedal,
	}
	if err := w.validateParams(); err != nil {
		return nil, err
	}

	follower, err := envelope.NewFollower(sampleRate, envelope.WithCutoffHz(cfg.envelopeCutoffHz))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	bandpass, err := svf.NewBandpass(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	bandpass.SetParams(w.minFreqHz, w.q)

	w.follower = follower
	w.bandpass = bandpass
	w.dc = dcblock.New()

	return w, nil
}

// SetPedal attaches a pedal; nil returns to envelope control. The switch
// takes effect on the next call and is not smoothed.
func (w *WahWah) SetPedal(p *Pedal) {
	w.pedal = p
}

// ControlSource reports what drives the sweep.
func (w *WahWah) ControlSource() ControlSource {
	if w.pedal != nil {
		return ControlPedal
	}

	return ControlEnvelope
}

// SetFrequencyRangeHz sets the swept center frequency range in Hz.
func (w *WahWah) SetFrequencyRangeHz(minFreqHz, maxFreqHz float64) error {
	if err := validateFrequencyRange(minFreqHz, maxFreqHz); err != nil {
		return err
	}

	w.minFreqHz = minFreqHz
	w.maxFreqHz = maxFreqHz

	return nil
}

// SetQ sets the bandpass resonance (> 0).
func (w *WahWah) SetQ(q float64) error {
	if err := validateQ(q); err != nil {
		return err
	}

	w.q = q
	w.bandpass.SetParams(w.bandpass.CenterHz(), q)

	return nil
}

// Reset clears the follower, bandpass and DC blocker. An attached pedal
// keeps its phase.
func (w *WahWah) Reset() {
	w.follower.Reset()
	w.bandpass.Reset()
	w.dc.Reset()
}

// Process returns the processed buffer in a new slice.
func (w *WahWah) Process(src []float64) []float64 {
	out := make([]float64, len(src))
	_ = w.ProcessTo(out, src)

	return out
}

// ProcessInPlace processes buf in place.
func (w *WahWah) ProcessInPlace(buf []float64) error {
	return w.ProcessTo(buf, buf)
}

// ProcessTo processes src into dst. dst may alias src. An empty buffer
// leaves all state, including the pedal phase, untouched.
func (w *WahWah) ProcessTo(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst=%d src=%d", ErrLengthMismatch, len(dst), len(src))
	}

	if len(src) == 0 {
		return nil
	}

	w.control = core.EnsureLen(w.control, len(src))
	if w.pedal != nil {
		w.pedal.PositionTo(w.control)
	} else {
		if err := w.follower.ProcessTo(w.control, src); err != nil {
			return err
		}
		normalizeMinMax(w.control)
	}

	span := w.maxFreqHz - w.minFreqHz
	for i, x := range src {
		w.bandpass.SetParams(w.minFreqHz+w.control[i]*span, w.q)
		dst[i] = w.bandpass.ProcessSample(x)
	}

	w.dc.ProcessInPlace(dst)
	vecmath.ScaleBlock(dst, dst, OutputGain)

	return nil
}

// normalizeMinMax maps buf onto [0, 1) using its own extremes. A flat
// buffer maps to zero.
func normalizeMinMax(buf []float64) {
	lo, hi := buf[0], buf[0]
	for _, v := range buf[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	scale := 1 / (hi - lo + envelopeNormEpsilon)
	for i, v := range buf {
		buf[i] = (v - lo) * scale
	}
}

// LastControl returns the control trace of the most recent call, in
// [0, 1]. The slice is reused by the next call.
func (w *WahWah) LastControl() []float64 { return w.control }

// CurrentCenterHz returns the bandpass center frequency after the last
// processed sample.
func (w *WahWah) CurrentCenterHz() float64 { return w.bandpass.CenterHz() }

// SampleRate returns sample rate in Hz.
func (w *WahWah) SampleRate() float64 { return w.sampleRate }

// MinFreqHz returns the heel center frequency in Hz.
func (w *WahWah) MinFreqHz() float64 { return w.minFreqHz }

// MaxFreqHz returns the toe center frequency in Hz.
func (w *WahWah) MaxFreqHz() float64 { return w.maxFreqHz }

// Q returns the configured resonance.
func (w *WahWah) Q() float64 { return w.q }

// EnvelopeCutoffHz returns the envelope follower cutoff in Hz.
func (w *WahWah) EnvelopeCutoffHz() float64 { return w.envelopeCutoffHz }

// Pedal returns the attached pedal, or nil under envelope control.
func (w *WahWah) Pedal() *Pedal { return w.pedal }

func (w *WahWah) validateParams() error {
	if err := validateFrequencyRange(w.minFreqHz, w.maxFreqHz); err != nil {
		return err
	}

	if err := validateQ(w.q); err != nil {
		return err
	}

	if w.envelopeCutoffHz >= w.sampleRate/2 {
		return invalidParam("wah-wah envelope cutoff must be below Nyquist (%f): %f", w.sampleRate/2, w.envelopeCutoffHz)
	}

	return nil
}

func validateFrequencyRange(minFreqHz, maxFreqHz float64) error {
	if minFreqHz <= 0 || math.IsNaN(minFreqHz) || math.IsInf(minFreqHz, 0) {
		return invalidParam("wah-wah min frequency must be > 0 and finite: %f", minFreqHz)
	}

	if maxFreqHz <= minFreqHz || math.IsNaN(maxFreqHz) || math.IsInf(maxFreqHz, 0) {
		return invalidParam("wah-wah max frequency must be > min frequency and finite: min=%f max=%f", minFreqHz, maxFreqHz)
	}

	return nil
}

func validateQ(q float64) error {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return invalidParam("wah-wah Q must be > 0 and finite: %f", q)
	}

	return nil
}
