package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-wah/dsp/core"
)

const defaultPedalRateHz = 2.0

// PedalMode selects how a Pedal produces its position trace.
type PedalMode int

const (
	// PedalAuto sweeps heel to toe and back with a sine.
	PedalAuto PedalMode = iota
	// PedalManual holds the position last set with SetPosition.
	PedalManual
)

// String returns "auto" or "manual".
func (m PedalMode) String() string {
	switch m {
	case PedalAuto:
		return "auto"
	case PedalManual:
		return "manual"
	default:
		return fmt.Sprintf("PedalMode(%d)", int(m))
	}
}

// ParsePedalMode parses "auto" or "manual".
func ParsePedalMode(s string) (PedalMode, error) {
	switch s {
	case "auto":
		return PedalAuto, nil
	case "manual":
		return PedalManual, nil
	default:
		return 0, invalidParam("pedal mode must be auto or manual: %q", s)
	}
}

// PedalOption mutates pedal construction parameters.
type PedalOption func(*pedalConfig) error

type pedalConfig struct {
	rateHz float64
	mode   PedalMode
}

func defaultPedalConfig() pedalConfig {
	return pedalConfig{
		rateHz: defaultPedalRateHz,
		mode:   PedalAuto,
	}
}

// WithPedalRateHz sets the auto sweep rate in Hz (> 0).
func WithPedalRateHz(hz float64) PedalOption {
	return func(cfg *pedalConfig) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return invalidParam("pedal rate must be > 0 and finite: %f", hz)
		}

		cfg.rateHz = hz

		return nil
	}
}

// WithPedalMode selects auto or manual operation.
func WithPedalMode(mode PedalMode) PedalOption {
	return func(cfg *pedalConfig) error {
		if mode != PedalAuto && mode != PedalManual {
			return invalidParam("pedal mode out of range: %d", int(mode))
		}

		cfg.mode = mode

		return nil
	}
}

// Pedal simulates a wah foot pedal. Position 0 is heel (lowest frequency),
// 1 is toe (highest frequency).
type Pedal struct {
	sampleRate float64
	rateHz     float64
	mode       PedalMode

	phase    float64
	position float64
}

// NewPedal creates an auto pedal sweeping at 2 Hz unless overridden.
func NewPedal(sampleRate float64, opts ...PedalOption) (*Pedal, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, invalidParam("pedal sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultPedalConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Pedal{
		sampleRate: sampleRate,
		rateHz:     cfg.rateHz,
		mode:       cfg.mode,
	}, nil
}

// Position returns the next n positions in a new slice.
func (p *Pedal) Position(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	out := make([]float64, n)
	p.PositionTo(out)

	return out
}

// PositionTo fills dst with the next len(dst) positions. In auto mode the
// sweep phase advances by len(dst) samples, so consecutive calls continue
// the same sine.
func (p *Pedal) PositionTo(dst []float64) {
	if p.mode == PedalManual {
		for i := range dst {
			dst[i] = p.position
		}

		return
	}

	step := 2 * math.Pi * p.rateHz / p.sampleRate
	for i := range dst {
		dst[i] = 0.5 + 0.5*math.Sin(step*float64(i)+p.phase)
	}

	p.phase = math.Mod(p.phase+step*float64(len(dst)), 2*math.Pi)
}

// SetPosition sets the held position, clamped to [0, 1]. NaN sets heel.
func (p *Pedal) SetPosition(v float64) error {
	if p.mode != PedalManual {
		return ErrPedalNotManual
	}

	if math.IsNaN(v) {
		v = 0
	}

	p.position = core.Clamp(v, 0, 1)

	return nil
}

// Reset rewinds the sweep and returns the held position to heel.
func (p *Pedal) Reset() {
	p.phase = 0
	p.position = 0
}

// SampleRate returns sample rate in Hz.
func (p *Pedal) SampleRate() float64 { return p.sampleRate }

// RateHz returns the auto sweep rate in Hz.
func (p *Pedal) RateHz() float64 { return p.rateHz }

// Mode returns the pedal mode.
func (p *Pedal) Mode() PedalMode { return p.mode }

// Phase returns the auto sweep phase in radians, in [0, 2*pi).
func (p *Pedal) Phase() float64 { return p.phase }

// CurrentPosition returns the held manual position.
func (p *Pedal) CurrentPosition() float64 { return p.position }
