package modulation

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-wah/dsp/wavelet"
	"github.com/cwbudde/algo-wah/internal/testutil"
)

func mustBandModulator(t *testing.T, opts ...BandModulatorOption) *BandModulator {
	t.Helper()

	b, err := NewBandModulator(testSampleRate, opts...)
	if err != nil {
		t.Fatalf("NewBandModulator() error = %v", err)
	}

	return b
}

func identityBandOptions() []BandModulatorOption {
	return []BandModulatorOption{
		WithBandResonance(0),
		WithBandEnvelopeShaping(false),
		WithBandAttenuation(1, 1, 1),
		WithBandNormalize(false),
	}
}

func TestNewBandModulatorDefaults(t *testing.T) {
	b := mustBandModulator(t)

	if b.Wavelet().Name() != "db4" || b.Level() != 4 {
		t.Fatalf("wavelet=%s level=%d", b.Wavelet().Name(), b.Level())
	}
	if b.Resonance() != 2 || b.ModulationHz() != 2 {
		t.Fatalf("resonance=%g rate=%g", b.Resonance(), b.ModulationHz())
	}
	if b.Attenuation() != [3]float64{0.1, 0.2, 0.5} {
		t.Fatalf("attenuation=%v", b.Attenuation())
	}
	if !b.EnvelopeShaping() || !b.Normalizes() {
		t.Fatal("shaping and normalization should default on")
	}
}

func TestNewBandModulatorValidation(t *testing.T) {
	tests := []struct {
		name string
		sr   float64
		opts []BandModulatorOption
	}{
		{"zero sample rate", 0, nil},
		{"level zero", testSampleRate, []BandModulatorOption{WithBandLevel(0)}},
		{"negative resonance", testSampleRate, []BandModulatorOption{WithBandResonance(-1)}},
		{"zero rate", testSampleRate, []BandModulatorOption{WithBandModulationHz(0)}},
		{"negative attenuation", testSampleRate, []BandModulatorOption{WithBandAttenuation(0.1, -0.2, 0.5)}},
		{"empty wavelet", testSampleRate, []BandModulatorOption{WithBandWavelet(wavelet.Wavelet{})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBandModulator(tt.sr, tt.opts...)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("NewBandModulator() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestBandModulatorIdentity(t *testing.T) {
	for _, n := range []int{1000, 4096, 44100} {
		in := testutil.DeterministicNoise(int64(n), 0.8, n)

		out, err := mustBandModulator(t, identityBandOptions()...).Process(in)
		if err != nil {
			t.Fatalf("n=%d: Process() error = %v", n, err)
		}

		testutil.RequireSliceNearlyEqual(t, out, in, 1e-9)
	}
}

func TestBandModulatorDefaultOutput(t *testing.T) {
	in := testutil.DeterministicSine(440, testSampleRate, 0.3, int(testSampleRate))
	noise := testutil.DeterministicNoise(2, 0.05, len(in))
	for i := range in {
		in[i] += noise[i]
	}

	out, err := mustBandModulator(t).Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("len=%d want=%d", len(out), len(in))
	}
	testutil.RequireFinite(t, out)

	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, math.Abs(v))
	}
	if math.Abs(peak-1) > 1e-12 {
		t.Fatalf("peak=%g want=1", peak)
	}
}

func TestBandModulatorAttenuationRemovesCoarseBands(t *testing.T) {
	// A constant lives entirely in the approximation band.
	b := mustBandModulator(t,
		WithBandResonance(0),
		WithBandEnvelopeShaping(false),
		WithBandAttenuation(0, 1, 1),
		WithBandNormalize(false),
	)

	out, err := b.Process(testutil.DC(0.5, 2048))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for i, v := range out {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("sample %d = %g, want 0", i, v)
		}
	}
}

func TestBandModulatorSilence(t *testing.T) {
	out, err := mustBandModulator(t).Process(make([]float64, 1024))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d = %g, want 0", i, v)
		}
	}
}

func TestBandModulatorTooShort(t *testing.T) {
	_, err := mustBandModulator(t).Process(make([]float64, 50))
	if !errors.Is(err, wavelet.ErrDecompositionDepth) {
		t.Fatalf("Process() error = %v, want ErrDecompositionDepth", err)
	}

	_, err = mustBandModulator(t).Process(nil)
	if !errors.Is(err, wavelet.ErrEmptySignal) {
		t.Fatalf("Process(nil) error = %v, want ErrEmptySignal", err)
	}
}

func TestBandModulatorResonanceChangesOutput(t *testing.T) {
	in := testutil.DeterministicNoise(4, 0.5, 8192)

	base, err := mustBandModulator(t, identityBandOptions()...).Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	opts := append(identityBandOptions(), WithBandResonance(2))
	modulated, err := mustBandModulator(t, opts...).Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	diff, err := testutil.MaxAbsDiff(base, modulated)
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if diff < 1e-3 {
		t.Fatalf("resonance had no effect: max diff %g", diff)
	}
}
