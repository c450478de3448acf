// Package level summarizes the level of a signal: offset, loudness and
// peaks, in linear units and dB.
//
// StreamingStats accumulates the same figures block by block, so a render
// loop can report on a whole file without keeping it in memory.
package level

import (
	"math"

	"github.com/cwbudde/algo-wah/dsp/core"
)

// Stats holds level statistics of a signal.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	PeakPos        int
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Clipped        int // samples with |x| >= 1
}

func ampTodB(value float64) float64 {
	return core.LinearToDB(math.Abs(value))
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes the statistics of signal in one pass.
func Calculate(signal []float64) Stats {
	var s StreamingStats
	s.Update(signal)

	return s.Result()
}

// StreamingStats accumulates Stats over successive blocks.
type StreamingStats struct {
	n       int
	sum     float64
	sumSq   float64
	peak    float64
	peakPos int
	clipped int
}

// NewStreamingStats creates an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		a := math.Abs(x)
		if a > s.peak {
			s.peak = a
			s.peakPos = s.n
		}
		if a >= 1 {
			s.clipped++
		}

		s.sum += x
		s.sumSq += x * x
		s.n++
	}
}

// Result returns the statistics of everything seen so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)

	crest, crestdB := 0.0, 0.0
	if rms > 0 {
		crest = s.peak / rms
		crestdB = ampTodB(crest)
	}

	return Stats{
		Length:         s.n,
		DC:             s.sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           s.peak,
		Peak_dB:        ampTodB(s.peak),
		PeakPos:        s.peakPos,
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Clipped:        s.clipped,
	}
}

// Reset clears all accumulated data.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
