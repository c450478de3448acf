package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-wah/dsp/core"
)

// Generator creates deterministic test signals at a configured sample rate.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator from processor options.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a generator with both processor and
// signal options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// Sine generates amplitude*sin(2*pi*freqHz*n/sampleRate).
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude]. The same
// seed always yields the same samples.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// Pluck generates a sawtooth-rich tone with an exponential decay, a rough
// stand-in for a plucked string. The level falls by 60 dB over decaySeconds.
func (g *Generator) Pluck(freqHz, amplitude, decaySeconds float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("pluck samples must be > 0: %d", samples)
	}

	if decaySeconds <= 0 || math.IsNaN(decaySeconds) || math.IsInf(decaySeconds, 0) {
		return nil, fmt.Errorf("pluck decay must be > 0 and finite: %f", decaySeconds)
	}

	if freqHz <= 0 || freqHz >= g.cfg.Nyquist() {
		return nil, fmt.Errorf("pluck frequency must be in (0, %g): %f", g.cfg.Nyquist(), freqHz)
	}

	// ln(1000) per decaySeconds gives -60 dB.
	decay := math.Exp(-math.Log(1000) / (decaySeconds * g.cfg.SampleRate))
	harmonics := int(g.cfg.SampleRate / (2 * freqHz))
	if harmonics > 8 {
		harmonics = 8
	}

	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	out := make([]float64, samples)
	gain := amplitude
	for i := range out {
		phase := step * float64(i)
		v := 0.0
		for h := 1; h <= harmonics; h++ {
			v += math.Sin(float64(h)*phase) / float64(h)
		}

		out[i] = gain * v
		gain *= decay
	}

	return out, nil
}

// Normalize scales data to targetPeak and returns a new slice. Silent input
// stays silent.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, errors.New("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)

	return out, nil
}
