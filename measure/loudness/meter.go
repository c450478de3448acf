// Package loudness measures programme loudness after ITU-R BS.1770.
//
// The Meter K-weights every channel, keeps a sliding 400 ms mean square for
// momentary loudness and collects 400 ms blocks every 100 ms for the gated
// integrated value. Peaks are plain sample peaks, not oversampled true
// peaks.
package loudness

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-wah/dsp/filter/biquad"
	"github.com/cwbudde/algo-wah/dsp/filter/design/pass"
)

// K-weighting prefilter parameters. The RBJ designs reproduce the
// reference 48 kHz coefficients and carry over to other rates.
const (
	shelfFreq   = 1681.974450955533
	shelfGainDB = 3.999843853973347
	shelfQ      = 0.7071752369554196

	highpassFreq = 38.13547087602444
	highpassQ    = 0.5003270373238773
)

const (
	blockDuration = 0.4
	blockStep     = 0.1

	absoluteGateLUFS = -70.0
	relativeGateLU   = -10.0

	// SilenceLUFS is reported when nothing passes the gates.
	SilenceLUFS = -120.0
)

// ErrChannelMismatch is returned when planar input does not match the
// configured channel layout.
var ErrChannelMismatch = errors.New("loudness: channel layout mismatch")

// Meter accumulates loudness over any number of Process calls.
type Meter struct {
	sampleRate float64
	channels   int

	shelf    []*biquad.Section
	highpass []*biquad.Section

	window    int
	step      int
	history   [][]float64
	sums      []float64
	pos       int
	filled    int
	sinceStep int

	blocks []float64
	peaks  []float64
	frame  []float64
}

// NewMeter creates a meter.
func NewMeter(opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)

	m := &Meter{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		window:     max(int(math.Round(blockDuration*cfg.SampleRate)), 1),
		step:       max(int(math.Round(blockStep*cfg.SampleRate)), 1),
		shelf:      make([]*biquad.Section, cfg.Channels),
		highpass:   make([]*biquad.Section, cfg.Channels),
		history:    make([][]float64, cfg.Channels),
		sums:       make([]float64, cfg.Channels),
		peaks:      make([]float64, cfg.Channels),
		frame:      make([]float64, cfg.Channels),
	}

	shelf := pass.HighShelfRBJ(shelfFreq, shelfGainDB, shelfQ, cfg.SampleRate)
	hp := pass.HighpassRBJ(highpassFreq, highpassQ, cfg.SampleRate)
	for ch := range m.channels {
		m.shelf[ch] = biquad.NewSection(shelf)
		m.highpass[ch] = biquad.NewSection(hp)
		m.history[ch] = make([]float64, m.window)
	}

	return m
}

// Reset clears all filter state, history, blocks and peaks.
func (m *Meter) Reset() {
	for ch := range m.channels {
		m.shelf[ch].Reset()
		m.highpass[ch].Reset()
		clear(m.history[ch])
		m.sums[ch] = 0
		m.peaks[ch] = 0
	}

	m.pos = 0
	m.filled = 0
	m.sinceStep = 0
	m.blocks = m.blocks[:0]
}

// ProcessFrame feeds one sample per channel. Short frames are ignored.
func (m *Meter) ProcessFrame(frame []float64) {
	if len(frame) < m.channels {
		return
	}

	for ch := range m.channels {
		x := frame[ch]
		m.peaks[ch] = math.Max(m.peaks[ch], math.Abs(x))

		y := m.highpass[ch].ProcessSample(m.shelf[ch].ProcessSample(x))
		sq := y * y

		m.sums[ch] += sq - m.history[ch][m.pos]
		if m.sums[ch] < 0 {
			m.sums[ch] = 0
		}
		m.history[ch][m.pos] = sq
	}

	m.pos++
	if m.pos == m.window {
		m.pos = 0
	}

	if m.filled < m.window {
		m.filled++
	}

	m.sinceStep++
	if m.sinceStep >= m.step {
		m.sinceStep = 0
		if m.filled == m.window {
			m.blocks = append(m.blocks, m.meanSquare())
		}
	}
}

// ProcessInterleaved feeds interleaved frames. A trailing partial frame is
// dropped.
func (m *Meter) ProcessInterleaved(block []float64) {
	for i := 0; i+m.channels <= len(block); i += m.channels {
		m.ProcessFrame(block[i : i+m.channels])
	}
}

// ProcessPlanar feeds one slice per channel. All slices must have the same
// length.
func (m *Meter) ProcessPlanar(channels [][]float64) error {
	if len(channels) != m.channels {
		return fmt.Errorf("%w: got %d channels, want %d", ErrChannelMismatch, len(channels), m.channels)
	}

	n := len(channels[0])
	for ch, data := range channels {
		if len(data) != n {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrChannelMismatch, ch, len(data), n)
		}
	}

	for i := range n {
		for ch := range m.channels {
			m.frame[ch] = channels[ch][i]
		}
		m.ProcessFrame(m.frame)
	}

	return nil
}

// Momentary returns the loudness of the last 400 ms in LUFS.
func (m *Meter) Momentary() float64 {
	return toLUFS(m.meanSquare())
}

// Integrated returns the gated loudness of everything processed since the
// last Reset, in LUFS.
func (m *Meter) Integrated() float64 {
	sum := 0.0
	n := 0
	for _, b := range m.blocks {
		if toLUFS(b) > absoluteGateLUFS {
			sum += b
			n++
		}
	}

	if n == 0 {
		return SilenceLUFS
	}

	gate := toLUFS(sum/float64(n)) + relativeGateLU

	sum = 0
	n = 0
	for _, b := range m.blocks {
		if l := toLUFS(b); l > absoluteGateLUFS && l > gate {
			sum += b
			n++
		}
	}

	if n == 0 {
		return SilenceLUFS
	}

	return toLUFS(sum / float64(n))
}

// Peaks returns the sample peak per channel since the last Reset.
func (m *Meter) Peaks() []float64 {
	return append([]float64(nil), m.peaks...)
}

// Channels returns the configured channel count.
func (m *Meter) Channels() int { return m.channels }

// SampleRate returns the sample rate in Hz.
func (m *Meter) SampleRate() float64 { return m.sampleRate }

func (m *Meter) meanSquare() float64 {
	total := 0.0
	for _, s := range m.sums {
		total += s
	}

	return total / float64(m.window)
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return SilenceLUFS
	}

	return math.Max(-0.691+10*math.Log10(meanSquare), SilenceLUFS)
}
