package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-wah/internal/testutil"
)

func TestGoertzelMatchesDFTBin(t *testing.T) {
	const (
		n  = 256
		sr = 8000.0
		k  = 13
	)

	x := testutil.DeterministicNoise(1, 1, n)
	freq := float64(k) * sr / n

	var re, im float64
	for i, v := range x {
		w := 2 * math.Pi * float64(k*i) / n
		re += v * math.Cos(w)
		im -= v * math.Sin(w)
	}
	want := re*re + im*im

	got, err := AnalyzeBlock(x, freq, sr)
	if err != nil {
		t.Fatalf("AnalyzeBlock() error = %v", err)
	}

	if math.Abs(got-want) > 1e-9*want {
		t.Fatalf("power got=%g want=%g", got, want)
	}
}

func TestGoertzelSampleAndBlockAgree(t *testing.T) {
	x := testutil.DeterministicSine(1000, 48000, 1, 480)

	a, err := NewGoertzel(1000, 48000)
	if err != nil {
		t.Fatalf("NewGoertzel() error = %v", err)
	}
	b, _ := NewGoertzel(1000, 48000)

	a.ProcessBlock(x)
	for _, v := range x {
		b.ProcessSample(v)
	}

	if math.Abs(a.Power()-b.Power()) > 1e-9 {
		t.Fatalf("block=%g sample=%g", a.Power(), b.Power())
	}
}

func TestToneAmplitude(t *testing.T) {
	// 20 whole cycles.
	x := testutil.DeterministicSine(500, 8000, 0.3, 320)

	amp, err := ToneAmplitude(x, 500, 8000)
	if err != nil {
		t.Fatalf("ToneAmplitude() error = %v", err)
	}
	if math.Abs(amp-0.3) > 1e-9 {
		t.Fatalf("amplitude=%g want=0.3", amp)
	}

	off, _ := ToneAmplitude(x, 1500, 8000)
	if off > 1e-9 {
		t.Fatalf("off-bin amplitude=%g want≈0", off)
	}
}

func TestGoertzelResetAndDB(t *testing.T) {
	g, err := NewGoertzel(100, 1000)
	if err != nil {
		t.Fatalf("NewGoertzel() error = %v", err)
	}

	if g.PowerDB() != -300 || g.Magnitude() != 0 {
		t.Fatalf("fresh detector power=%g dB", g.PowerDB())
	}

	g.ProcessBlock(testutil.Ones(10))
	g.Reset()
	if g.Power() != 0 {
		t.Fatalf("Power() after reset = %g", g.Power())
	}
	if g.Frequency() != 100 || g.SampleRate() != 1000 {
		t.Fatalf("Frequency()=%g SampleRate()=%g", g.Frequency(), g.SampleRate())
	}
}

func TestNewGoertzelValidation(t *testing.T) {
	for _, tc := range [][2]float64{{100, 0}, {-1, 1000}, {600, 1000}, {math.NaN(), 1000}} {
		if _, err := NewGoertzel(tc[0], tc[1]); err == nil {
			t.Fatalf("NewGoertzel(%g, %g) expected error", tc[0], tc[1])
		}
	}
}
