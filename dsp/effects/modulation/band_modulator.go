package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-wah/dsp/signal"
	"github.com/cwbudde/algo-wah/dsp/wavelet"
)

const (
	defaultBandLevel        = 4
	defaultBandResonance    = 2.0
	defaultBandModulationHz = 2.0

	// Detail bands from this index up to (but excluding) bandModulatedEnd
	// are modulated; the bands below it are attenuated instead.
	bandModulatedStart = 3
	bandModulatedEnd   = 6
)

var defaultBandAttenuation = [3]float64{0.1, 0.2, 0.5}

// BandModulatorOption mutates band modulator construction parameters.
type BandModulatorOption func(*bandModulatorConfig) error

type bandModulatorConfig struct {
	wavelet      wavelet.Wavelet
	level        int
	resonance    float64
	modulationHz float64
	attenuation  [3]float64
	shaping      bool
	normalize    bool
}

func defaultBandModulatorConfig() bandModulatorConfig {
	return bandModulatorConfig{
		wavelet:      wavelet.Daubechies4,
		level:        defaultBandLevel,
		resonance:    defaultBandResonance,
		modulationHz: defaultBandModulationHz,
		attenuation:  defaultBandAttenuation,
		shaping:      true,
		normalize:    true,
	}
}

// WithBandWavelet selects the decomposition wavelet.
func WithBandWavelet(w wavelet.Wavelet) BandModulatorOption {
	return func(cfg *bandModulatorConfig) error {
		if w.Len() < 2 {
			return invalidParam("band modulator wavelet is empty")
		}

		cfg.wavelet = w

		return nil
	}
}

// WithBandLevel sets the decomposition depth (>= 1).
func WithBandLevel(level int) BandModulatorOption {
	return func(cfg *bandModulatorConfig) error {
		if level < 1 {
			return invalidParam("band modulator level must be >= 1: %d", level)
		}

		cfg.level = level

		return nil
	}
}

// WithBandResonance sets the modulation depth (>= 0).
func WithBandResonance(r float64) BandModulatorOption {
	return func(cfg *bandModulatorConfig) error {
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return invalidParam("band modulator resonance must be >= 0 and finite: %f", r)
		}

		cfg.resonance = r

		return nil
	}
}

// WithBandModulationHz sets the modulation rate in Hz (> 0).
func WithBandModulationHz(hz float64) BandModulatorOption {
	return func(cfg *bandModulatorConfig) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return invalidParam("band modulator rate must be > 0 and finite: %f", hz)
		}

		cfg.modulationHz = hz

		return nil
	}
}

// WithBandAttenuation sets the gains of the approximation band and the two
// coarsest detail bands (each >= 0).
func WithBandAttenuation(a0, a1, a2 float64) BandModulatorOption {
	return func(cfg *bandModulatorConfig) error {
		for _, a := range []float64{a0, a1, a2} {
			if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
				return invalidParam("band modulator attenuation must be >= 0 and finite: %f", a)
			}
		}

		cfg.attenuation = [3]float64{a0, a1, a2}

		return nil
	}
}

// WithBandEnvelopeShaping toggles scaling modulated coefficients by the
// square root of their magnitude.
func WithBandEnvelopeShaping(enabled bool) BandModulatorOption {
	return func(cfg *bandModulatorConfig) error {
		cfg.shaping = enabled
		return nil
	}
}

// WithBandNormalize toggles peak normalization of the output.
func WithBandNormalize(enabled bool) BandModulatorOption {
	return func(cfg *bandModulatorConfig) error {
		cfg.normalize = enabled
		return nil
	}
}

// BandModulator is a wavelet-domain wah: it decomposes a whole buffer,
// modulates the energy of the finer detail bands with a slow sine,
// attenuates the coarse bands and resynthesizes.
//
// It is stateless between calls; every buffer is processed on its own.
type BandModulator struct {
	sampleRate   float64
	wavelet      wavelet.Wavelet
	level        int
	resonance    float64
	modulationHz float64
	attenuation  [3]float64
	shaping      bool
	normalize    bool
}

// NewBandModulator creates a db4, level 4 band modulator unless overridden.
func NewBandModulator(sampleRate float64, opts ...BandModulatorOption) (*BandModulator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, invalidParam("band modulator sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultBandModulatorConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &BandModulator{
		sampleRate:   sampleRate,
		wavelet:      cfg.wavelet,
		level:        cfg.level,
		resonance:    cfg.resonance,
		modulationHz: cfg.modulationHz,
		attenuation:  cfg.attenuation,
		shaping:      cfg.shaping,
		normalize:    cfg.normalize,
	}, nil
}

// Process returns the modulated buffer, the same length as src. Buffers
// too short for the configured level fail with
// wavelet.ErrDecompositionDepth.
func (b *BandModulator) Process(src []float64) ([]float64, error) {
	coeffs, err := wavelet.Decompose(src, b.wavelet, b.level)
	if err != nil {
		return nil, fmt.Errorf("band modulator: %w", err)
	}

	duration := float64(len(src)) / b.sampleRate
	for i := bandModulatedStart; i < min(bandModulatedEnd, len(coeffs)); i++ {
		b.modulateBand(coeffs[i], duration)
	}

	for i := 0; i < len(b.attenuation) && i < len(coeffs); i++ {
		vecmath.ScaleBlock(coeffs[i], coeffs[i], b.attenuation[i])
	}

	out, err := wavelet.Reconstruct(coeffs, b.wavelet)
	if err != nil {
		return nil, fmt.Errorf("band modulator: %w", err)
	}
	out = out[:len(src)]

	if !b.normalize {
		return out, nil
	}

	return signal.Normalize(out, 1)
}

// modulateBand multiplies band by 1 + resonance*sin(2*pi*rate*t), with t
// spanning [0, duration] evenly over the band.
func (b *BandModulator) modulateBand(band []float64, duration float64) {
	dt := 0.0
	if len(band) > 1 {
		dt = duration / float64(len(band)-1)
	}

	w := 2 * math.Pi * b.modulationHz
	for k, c := range band {
		gain := 1 + b.resonance*math.Sin(w*dt*float64(k))
		if b.shaping {
			gain *= math.Sqrt(math.Abs(c))
		}
		band[k] = c * gain
	}
}

// SampleRate returns sample rate in Hz.
func (b *BandModulator) SampleRate() float64 { return b.sampleRate }

// Wavelet returns the decomposition wavelet.
func (b *BandModulator) Wavelet() wavelet.Wavelet { return b.wavelet }

// Level returns the decomposition depth.
func (b *BandModulator) Level() int { return b.level }

// Resonance returns the modulation depth.
func (b *BandModulator) Resonance() float64 { return b.resonance }

// ModulationHz returns the modulation rate in Hz.
func (b *BandModulator) ModulationHz() float64 { return b.modulationHz }

// Attenuation returns the gains of the three coarsest bands.
func (b *BandModulator) Attenuation() [3]float64 { return b.attenuation }

// EnvelopeShaping reports whether magnitude shaping is enabled.
func (b *BandModulator) EnvelopeShaping() bool { return b.shaping }

// Normalizes reports whether the output is peak normalized.
func (b *BandModulator) Normalizes() bool { return b.normalize }
