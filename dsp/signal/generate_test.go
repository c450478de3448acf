package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-wah/dsp/core"
)

func TestSine(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 0.5, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}

	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}

	want := 0.5 * math.Sin(2*math.Pi*1000*12/48000)
	if math.Abs(s[12]-want) > 1e-12 {
		t.Fatalf("s[12]=%v, want %v", s[12], want)
	}

	if _, err := g.Sine(1000, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))
	g3 := NewGeneratorWithOptions(nil, WithSeed(43), nil)

	n1, err := g1.WhiteNoise(0.5, 256)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, _ := g2.WhiteNoise(0.5, 256)
	n3, _ := g3.WhiteNoise(0.5, 256)

	same := true
	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 0.5 {
			t.Fatalf("n1[%d]=%v outside amplitude", i, n1[i])
		}
		if n1[i] != n3[i] {
			same = false
		}
	}

	if same {
		t.Fatal("expected different seeds to produce different noise")
	}

	if g3.Seed() != 43 {
		t.Fatalf("Seed()=%d, want 43", g3.Seed())
	}

	if _, err := g1.WhiteNoise(-1, 8); err == nil {
		t.Fatal("expected error for negative amplitude")
	}
}

func TestPluckDecays(t *testing.T) {
	const sr = 44100
	g := NewGenerator(core.WithSampleRate(sr))

	x, err := g.Pluck(220, 1, 0.5, sr)
	if err != nil {
		t.Fatalf("Pluck() error = %v", err)
	}

	peak := func(s []float64) float64 {
		m := 0.0
		for _, v := range s {
			m = math.Max(m, math.Abs(v))
		}
		return m
	}

	head := peak(x[:sr/20])
	tail := peak(x[sr/2 : sr/2+sr/20])
	if head <= 0 {
		t.Fatal("pluck attack is silent")
	}

	// 60 dB down after the decay time, allowing for the window length.
	if tail > head*2e-3 {
		t.Fatalf("tail peak %g not far enough below head %g", tail, head)
	}
}

func TestPluckValidation(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	cases := []struct {
		freq, decay float64
		n           int
	}{
		{100, 0.1, 0},
		{100, 0, 10},
		{100, math.Inf(1), 10},
		{0, 0.1, 10},
		{500, 0.1, 10},
	}

	for _, tc := range cases {
		if _, err := g.Pluck(tc.freq, 1, tc.decay, tc.n); err == nil {
			t.Fatalf("Pluck(%g, 1, %g, %d) expected error", tc.freq, tc.decay, tc.n)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := []float64{-0.5, 1.0, -0.25}
	out, err := Normalize(in, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if out[1] != 0.5 || out[0] != -0.25 {
		t.Fatalf("out=%v", out)
	}

	if in[1] != 1.0 {
		t.Fatal("Normalize modified its input")
	}

	silent, err := Normalize(make([]float64, 4), 1)
	if err != nil {
		t.Fatalf("Normalize(silence) error = %v", err)
	}
	for _, v := range silent {
		if v != 0 {
			t.Fatalf("silence normalized to %v", silent)
		}
	}

	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Normalize(in, -1); err == nil {
		t.Fatal("expected error for negative target")
	}
}
