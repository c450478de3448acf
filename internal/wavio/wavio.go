// Package wavio reads and writes PCM WAV files as per-channel float64
// buffers in [-1, 1].
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// Errors returned by Read and Write.
var (
	ErrNotWav              = errors.New("wavio: not a WAV file")
	ErrUnsupportedFormat   = errors.New("wavio: only integer PCM is supported")
	ErrUnsupportedBitDepth = errors.New("wavio: bit depth must be 16, 24 or 32")
	ErrEmptyClip           = errors.New("wavio: clip has no samples")
	ErrChannelLength       = errors.New("wavio: channels differ in length")
)

// Clip is decoded audio, one slice per channel.
type Clip struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}

	return len(c.Channels[0])
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}

	return float64(c.Frames()) / float64(c.SampleRate)
}

// Read decodes a whole WAV stream.
func Read(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWav
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	if err := validateBitDepth(bitDepth); err != nil {
		return nil, err
	}

	numChans := int(dec.NumChans)
	if numChans < 1 || buf == nil || len(buf.Data) == 0 {
		return nil, ErrEmptyClip
	}

	frames := len(buf.Data) / numChans
	scale := 1 / math.Ldexp(1, bitDepth-1)

	channels := make([][]float64, numChans)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}

	for i := range frames {
		for ch := range numChans {
			channels[ch][i] = float64(buf.Data[i*numChans+ch]) * scale
		}
	}

	return &Clip{
		SampleRate: int(dec.SampleRate),
		BitDepth:   bitDepth,
		Channels:   channels,
	}, nil
}

// Write encodes clip as integer PCM at bitDepth. Samples outside [-1, 1]
// are clipped.
func Write(w io.WriteSeeker, clip *Clip, bitDepth int) error {
	if err := validateBitDepth(bitDepth); err != nil {
		return err
	}

	if clip == nil || clip.Frames() == 0 {
		return ErrEmptyClip
	}

	frames := clip.Frames()
	for ch, data := range clip.Channels {
		if len(data) != frames {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrChannelLength, ch, len(data), frames)
		}
	}

	numChans := len(clip.Channels)
	fullScale := math.Ldexp(1, bitDepth-1) - 1

	data := make([]int, frames*numChans)
	for i := range frames {
		for ch := range numChans {
			v := clip.Channels[ch][i]
			if math.IsNaN(v) {
				v = 0
			}
			v = math.Max(-1, math.Min(1, v))
			data[i*numChans+ch] = int(math.Round(v * fullScale))
		}
	}

	enc := wav.NewEncoder(w, clip.SampleRate, bitDepth, numChans, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: numChans, SampleRate: clip.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}

	return nil
}

func validateBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}
