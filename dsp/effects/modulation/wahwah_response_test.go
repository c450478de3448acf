package modulation

import (
	"testing"

	"github.com/cwbudde/algo-wah/dsp/core"
	"github.com/cwbudde/algo-wah/dsp/signal"
	"github.com/cwbudde/algo-wah/dsp/spectrum"
)

// toneLevels renders a 200 Hz + 3 kHz pair through a manual pedal wah and
// returns the amplitude of each tone over the last second of output.
func toneLevels(t *testing.T, position float64) (low, high float64) {
	t.Helper()

	g := signal.NewGenerator(core.WithSampleRate(testSampleRate))
	a, err := g.Sine(200, 0.25, 2*int(testSampleRate))
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	b, _ := g.Sine(3000, 0.25, len(a))
	for i := range a {
		a[i] += b[i]
	}

	p, err := NewPedal(testSampleRate, WithPedalMode(PedalManual))
	if err != nil {
		t.Fatalf("NewPedal() error = %v", err)
	}
	if err := p.SetPosition(position); err != nil {
		t.Fatalf("SetPosition() error = %v", err)
	}

	out := mustWahWah(t, WithWahPedal(p)).Process(a)
	tail := out[len(out)-int(testSampleRate):]

	low, err = spectrum.ToneAmplitude(tail, 200, testSampleRate)
	if err != nil {
		t.Fatalf("ToneAmplitude() error = %v", err)
	}
	high, _ = spectrum.ToneAmplitude(tail, 3000, testSampleRate)

	return low, high
}

func TestWahWahPedalMovesPassband(t *testing.T) {
	heelLow, heelHigh := toneLevels(t, 0)
	toeLow, toeHigh := toneLevels(t, 1)

	if heelLow < 5*heelHigh {
		t.Fatalf("heel: 200 Hz=%g 3 kHz=%g, want low tone dominant", heelLow, heelHigh)
	}
	if toeHigh < 3*toeLow {
		t.Fatalf("toe: 200 Hz=%g 3 kHz=%g, want high tone dominant", toeLow, toeHigh)
	}
	if toeHigh <= heelHigh || heelLow <= toeLow {
		t.Fatalf("pedal travel did not shift energy: heel=(%g, %g) toe=(%g, %g)",
			heelLow, heelHigh, toeLow, toeHigh)
	}
}

func TestWahWahEnvelopeTracksPluck(t *testing.T) {
	g := signal.NewGenerator(core.WithSampleRate(testSampleRate))
	in, err := g.Pluck(220, 0.8, 0.3, int(testSampleRate))
	if err != nil {
		t.Fatalf("Pluck() error = %v", err)
	}

	w := mustWahWah(t)
	w.Process(in)
	ctrl := w.LastControl()

	peakAt := 0
	for i, c := range ctrl {
		if c > ctrl[peakAt] {
			peakAt = i
		}
	}

	if peakAt > int(0.2*testSampleRate) {
		t.Fatalf("control peaks at %d samples, want within the attack", peakAt)
	}

	mid := ctrl[int(0.15*testSampleRate)]
	end := ctrl[len(ctrl)-1]
	if !(end < mid && mid < ctrl[peakAt]) {
		t.Fatalf("control not falling: peak=%g mid=%g end=%g", ctrl[peakAt], mid, end)
	}
	if end > 0.1 {
		t.Fatalf("control at end=%g, want near heel", end)
	}
}
