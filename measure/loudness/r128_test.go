package loudness

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-wah/internal/testutil"
)

func TestMeterFullScaleSine(t *testing.T) {
	const sr = 48000.0
	m := NewMeter(WithSampleRate(sr), WithChannels(1))

	// A 0 dBFS 1 kHz sine reads -3.01 LUFS on a mono meter.
	m.ProcessInterleaved(testutil.DeterministicSine(1000, sr, 1, int(sr*4)))

	if got := m.Momentary(); math.Abs(got+3.01) > 0.05 {
		t.Fatalf("Momentary()=%v, want -3.01", got)
	}
	if got := m.Integrated(); math.Abs(got+3.01) > 0.05 {
		t.Fatalf("Integrated()=%v, want -3.01", got)
	}
	if p := m.Peaks()[0]; math.Abs(p-1) > 1e-3 {
		t.Fatalf("peak=%v, want 1", p)
	}
}

func TestMeterStereoSumsPower(t *testing.T) {
	const sr = 44100.0
	sig := testutil.DeterministicSine(1000, sr, 1, int(sr*4))

	mono := NewMeter(WithSampleRate(sr), WithChannels(1))
	mono.ProcessInterleaved(sig)

	stereo := NewMeter(WithSampleRate(sr), WithChannels(2))
	if err := stereo.ProcessPlanar([][]float64{sig, sig}); err != nil {
		t.Fatalf("ProcessPlanar() error = %v", err)
	}

	diff := stereo.Integrated() - mono.Integrated()
	if math.Abs(diff-10*math.Log10(2)) > 0.01 {
		t.Fatalf("stereo-mono=%v dB, want 3.01", diff)
	}
}

func TestMeterPlanarMatchesInterleaved(t *testing.T) {
	left := testutil.DeterministicNoise(1, 0.5, 30000)
	right := testutil.DeterministicSine(300, 44100, 0.3, 30000)

	inter := make([]float64, 0, 2*len(left))
	for i := range left {
		inter = append(inter, left[i], right[i])
	}

	a := NewMeter()
	a.ProcessInterleaved(inter)

	b := NewMeter()
	if err := b.ProcessPlanar([][]float64{left, right}); err != nil {
		t.Fatalf("ProcessPlanar() error = %v", err)
	}

	if a.Integrated() != b.Integrated() || a.Momentary() != b.Momentary() {
		t.Fatalf("interleaved=(%v, %v) planar=(%v, %v)",
			a.Integrated(), a.Momentary(), b.Integrated(), b.Momentary())
	}
}

func TestMeterSilence(t *testing.T) {
	m := NewMeter(WithChannels(1))
	m.ProcessInterleaved(make([]float64, 48000))

	if m.Momentary() != SilenceLUFS || m.Integrated() != SilenceLUFS {
		t.Fatalf("silence: momentary=%v integrated=%v", m.Momentary(), m.Integrated())
	}
}

func TestMeterShortInputHasNoBlocks(t *testing.T) {
	m := NewMeter(WithSampleRate(48000), WithChannels(1))
	m.ProcessInterleaved(testutil.DeterministicSine(1000, 48000, 1, 1000))

	if got := m.Integrated(); got != SilenceLUFS {
		t.Fatalf("Integrated()=%v for input shorter than one block", got)
	}
}

func TestMeterGating(t *testing.T) {
	const sr = 48000.0
	m := NewMeter(WithSampleRate(sr), WithChannels(1))

	m.ProcessInterleaved(testutil.DeterministicSine(1000, sr, 1, int(sr*10)))
	loud := m.Integrated()

	// -80 dBFS falls under the absolute gate.
	m.ProcessInterleaved(testutil.DeterministicSine(1000, sr, 1e-4, int(sr*10)))
	total := m.Integrated()

	if math.Abs(loud-total) > 0.1 {
		t.Fatalf("gating failed: loud=%v total=%v", loud, total)
	}
}

func TestMeterRelativeGate(t *testing.T) {
	const sr = 48000.0
	m := NewMeter(WithSampleRate(sr), WithChannels(1))

	m.ProcessInterleaved(testutil.DeterministicSine(1000, sr, 1, int(sr*5)))
	loud := m.Integrated()

	// -30 dB passes the absolute gate but not the relative one.
	m.ProcessInterleaved(testutil.DeterministicSine(1000, sr, 0.0316, int(sr*5)))
	if got := m.Integrated(); math.Abs(got-loud) > 0.3 {
		t.Fatalf("relative gate: loud=%v total=%v", loud, got)
	}
}

func TestMeterReset(t *testing.T) {
	m := NewMeter(WithChannels(1))
	m.ProcessInterleaved(testutil.DeterministicNoise(3, 1, 44100))
	m.Reset()

	if m.Integrated() != SilenceLUFS || m.Peaks()[0] != 0 || m.Momentary() != SilenceLUFS {
		t.Fatal("Reset() left state behind")
	}
}

func TestMeterChannelMismatch(t *testing.T) {
	m := NewMeter(WithChannels(2))

	if err := m.ProcessPlanar([][]float64{{1}}); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("expected ErrChannelMismatch, got %v", err)
	}
	if err := m.ProcessPlanar([][]float64{{1, 2}, {1}}); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("expected ErrChannelMismatch, got %v", err)
	}
}

func TestMeterOptions(t *testing.T) {
	m := NewMeter(WithSampleRate(-1), WithChannels(0), nil)
	if m.SampleRate() != 44100 || m.Channels() != 2 {
		t.Fatalf("invalid options applied: rate=%v channels=%d", m.SampleRate(), m.Channels())
	}
}
