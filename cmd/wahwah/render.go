package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-wah/dsp/effects/modulation"
	"github.com/cwbudde/algo-wah/dsp/wavelet"
	"github.com/cwbudde/algo-wah/dsp/window"
	"github.com/cwbudde/algo-wah/internal/wavio"
	"github.com/cwbudde/algo-wah/measure/band"
	"github.com/cwbudde/algo-wah/measure/level"
	"github.com/cwbudde/algo-wah/measure/loudness"
)

// maxAnalysisSamples bounds the excerpt used for the spectral report.
const maxAnalysisSamples = 1 << 18

var errInvalidBlock = errors.New("block size must be > 0")

type channelResult struct {
	In         level.Stats
	Out        level.Stats
	CentroidHz float64
}

// summary is what the report shows: per-channel levels plus the integrated
// loudness of the whole file before and after processing.
type summary struct {
	Channels    []channelResult
	LoudnessIn  float64
	LoudnessOut float64
}

func run(cli *CLI, logger *slog.Logger) (summary, error) {
	var sum summary

	in, err := os.Open(cli.Input)
	if err != nil {
		return sum, err
	}
	defer in.Close()

	clip, err := wavio.Read(in)
	if err != nil {
		return sum, fmt.Errorf("%s: %w", cli.Input, err)
	}

	logger.Info("decoded input",
		"file", cli.Input,
		"rate", clip.SampleRate,
		"bits", clip.BitDepth,
		"channels", len(clip.Channels),
		"seconds", clip.Duration(),
	)

	sum.LoudnessIn, err = integratedLoudness(clip)
	if err != nil {
		return sum, err
	}

	sum.Channels = make([]channelResult, len(clip.Channels))
	for ch, samples := range clip.Channels {
		out, res, err := renderChannel(cli, samples, float64(clip.SampleRate))
		if err != nil {
			return sum, fmt.Errorf("channel %d: %w", ch, err)
		}

		clip.Channels[ch] = out
		sum.Channels[ch] = res
		logger.Debug("rendered channel", "channel", ch, "peak", res.Out.Peak)

		if res.Out.Clipped > 0 {
			logger.Warn("output clips", "channel", ch, "samples", res.Out.Clipped)
		}
	}

	sum.LoudnessOut, err = integratedLoudness(clip)
	if err != nil {
		return sum, err
	}

	bits := cli.Bits
	if bits == 0 {
		bits = clip.BitDepth
	}

	out, err := os.Create(cli.Output)
	if err != nil {
		return sum, err
	}
	defer out.Close()

	if err := wavio.Write(out, clip, bits); err != nil {
		return sum, fmt.Errorf("%s: %w", cli.Output, err)
	}

	logger.Info("wrote output",
		"file", cli.Output,
		"bits", bits,
		"mode", cli.Mode,
		"lufs_in", sum.LoudnessIn,
		"lufs_out", sum.LoudnessOut,
	)

	return sum, nil
}

func integratedLoudness(clip *wavio.Clip) (float64, error) {
	if len(clip.Channels) == 0 {
		return loudness.SilenceLUFS, nil
	}

	m := loudness.NewMeter(
		loudness.WithSampleRate(float64(clip.SampleRate)),
		loudness.WithChannels(len(clip.Channels)),
	)
	if err := m.ProcessPlanar(clip.Channels); err != nil {
		return 0, err
	}

	return m.Integrated(), nil
}

// renderChannel processes one channel with a fresh engine and collects
// level statistics for the report.
func renderChannel(cli *CLI, samples []float64, sampleRate float64) ([]float64, channelResult, error) {
	var res channelResult
	inStats := level.NewStreamingStats()
	outStats := level.NewStreamingStats()

	var out []float64
	switch cli.Mode {
	case "wavelet":
		bm, err := newBandModulator(cli, sampleRate)
		if err != nil {
			return nil, res, err
		}

		out, err = bm.Process(samples)
		if err != nil {
			return nil, res, err
		}

		inStats.Update(samples)
		outStats.Update(out)

	default:
		wah, err := newWahWah(cli, sampleRate)
		if err != nil {
			return nil, res, err
		}

		if cli.Block <= 0 {
			return nil, res, fmt.Errorf("%w: %d", errInvalidBlock, cli.Block)
		}

		out = make([]float64, len(samples))
		for start := 0; start < len(samples); start += cli.Block {
			end := min(start+cli.Block, len(samples))
			if err := wah.ProcessTo(out[start:end], samples[start:end]); err != nil {
				return nil, res, err
			}

			inStats.Update(samples[start:end])
			outStats.Update(out[start:end])
		}
	}

	res.In = inStats.Result()
	res.Out = outStats.Result()

	var bandOpts []band.Option
	if cli.Window != "" {
		win, err := window.ParseType(cli.Window)
		if err != nil {
			return nil, res, err
		}
		bandOpts = append(bandOpts, band.WithWindow(win))
	}

	if spec, err := band.Analyze(excerpt(out, maxAnalysisSamples), sampleRate, bandOpts...); err == nil {
		res.CentroidHz = spec.Centroid()
	}

	return out, res, nil
}

func newWahWah(cli *CLI, sampleRate float64) (*modulation.WahWah, error) {
	opts := []modulation.WahWahOption{
		modulation.WithWahFrequencyRangeHz(cli.MinFreq, cli.MaxFreq),
		modulation.WithWahQ(cli.Q),
		modulation.WithWahEnvelopeCutoffHz(cli.EnvCutoff),
	}

	if cli.Pedal != "" && cli.Pedal != "none" {
		pedal, err := newPedal(cli, sampleRate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, modulation.WithWahPedal(pedal))
	}

	return modulation.NewWahWah(sampleRate, opts...)
}

func newPedal(cli *CLI, sampleRate float64) (*modulation.Pedal, error) {
	mode, err := modulation.ParsePedalMode(cli.Pedal)
	if err != nil {
		return nil, err
	}

	pedal, err := modulation.NewPedal(sampleRate,
		modulation.WithPedalMode(mode),
		modulation.WithPedalRateHz(cli.PedalRate),
	)
	if err != nil {
		return nil, err
	}

	if mode == modulation.PedalManual {
		if err := pedal.SetPosition(cli.PedalPosition); err != nil {
			return nil, err
		}
	}

	return pedal, nil
}

func newBandModulator(cli *CLI, sampleRate float64) (*modulation.BandModulator, error) {
	w, ok := wavelet.ByName(cli.Wavelet)
	if !ok {
		return nil, fmt.Errorf("%w: unknown wavelet %q", modulation.ErrInvalidParameter, cli.Wavelet)
	}

	return modulation.NewBandModulator(sampleRate,
		modulation.WithBandWavelet(w),
		modulation.WithBandLevel(cli.Level),
		modulation.WithBandResonance(cli.Resonance),
	)
}

// excerpt returns at most n samples from the middle of x.
func excerpt(x []float64, n int) []float64 {
	if len(x) <= n {
		return x
	}

	start := (len(x) - n) / 2

	return x[start : start+n]
}
