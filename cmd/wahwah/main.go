// Command wahwah renders a WAV file through the wah-wah effect.
//
// Usage:
//
//	wahwah [flags] <input.wav> <output.wav>
//
// Every channel is processed by its own engine. The default mode sweeps a
// state-variable bandpass with the input envelope; --pedal selects a
// simulated foot pedal instead, and --mode=wavelet switches to the
// wavelet-domain band modulator.
//
// Examples:
//
//	wahwah guitar.wav out.wav
//	wahwah --pedal=auto --pedal-rate=1.5 --q=4 guitar.wav out.wav
//	wahwah --pedal=manual --pedal-position=0.8 guitar.wav out.wav
//	wahwah --mode=wavelet --level=5 voice.wav out.wav
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-wah/dsp/core"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Input  string `arg:"" type:"existingfile" help:"Input WAV file."`
	Output string `arg:"" type:"path" help:"Output WAV file."`

	Mode string `enum:"wah,wavelet" default:"wah" help:"Processing path: wah or wavelet."`

	MinFreq   float64 `default:"200" help:"Heel center frequency in Hz."`
	MaxFreq   float64 `default:"2000" help:"Toe center frequency in Hz."`
	Q         float64 `default:"2" help:"Bandpass resonance."`
	EnvCutoff float64 `default:"10" help:"Envelope follower cutoff in Hz."`

	Pedal         string  `enum:"none,auto,manual" default:"none" help:"Control source: none (envelope), auto or manual pedal."`
	PedalRate     float64 `default:"2" help:"Auto pedal sweep rate in Hz."`
	PedalPosition float64 `default:"0.5" help:"Manual pedal position, 0 (heel) to 1 (toe)."`
	Block         int     `default:"${block}" help:"Block size for streamed processing."`

	Wavelet   string  `enum:"db4,haar" default:"db4" help:"Wavelet for --mode=wavelet."`
	Level     int     `default:"4" help:"Decomposition depth for --mode=wavelet."`
	Resonance float64 `default:"2" help:"Band modulation depth for --mode=wavelet."`

	Window string `enum:"hann,hamming,blackman,blackman-harris,flattop,rectangular" default:"hann" help:"Analysis window for the report's spectral centroid."`

	Bits    int              `default:"0" help:"Output bit depth (16, 24, 32); 0 keeps the input depth."`
	Quiet   bool             `short:"q" help:"Only log warnings and errors; skip the report."`
	Version kong.VersionFlag `short:"v" help:"Show version information."`
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("wahwah"),
		kong.Description("Envelope- or pedal-swept wah-wah for WAV files"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
			"block":   strconv.Itoa(core.DefaultProcessorConfig().BlockSize),
		},
	}
}

func main() {
	cli := &CLI{}
	kong.Parse(cli, parserOptions()...)

	level := slog.LevelInfo
	if cli.Quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sum, err := run(cli, logger)
	if err != nil {
		logger.Error("render failed", "input", cli.Input, "err", err)
		os.Exit(1)
	}

	if !cli.Quiet {
		fmt.Println(renderReport(cli, sum))
	}
}
