package wavio

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-wah/internal/testutil"
)

func roundTrip(t *testing.T, clip *Clip, bitDepth int) *Clip {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "clip.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	if err := Write(f, clip, bitDepth); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}

	got, err := Read(f)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	return got
}

func TestRoundTrip(t *testing.T) {
	left := testutil.DeterministicSine(440, 8000, 0.8, 800)
	right := testutil.DeterministicNoise(1, 0.5, 800)

	for _, bits := range []int{16, 24, 32} {
		clip := &Clip{SampleRate: 8000, Channels: [][]float64{left, right}}
		got := roundTrip(t, clip, bits)

		if got.SampleRate != 8000 || got.BitDepth != bits || len(got.Channels) != 2 {
			t.Fatalf("bits=%d: rate=%d depth=%d channels=%d", bits, got.SampleRate, got.BitDepth, len(got.Channels))
		}

		tol := 2 / math.Ldexp(1, bits-1)
		testutil.RequireSliceNearlyEqual(t, got.Channels[0], left, tol)
		testutil.RequireSliceNearlyEqual(t, got.Channels[1], right, tol)
	}
}

func TestWriteClipsOutOfRange(t *testing.T) {
	clip := &Clip{SampleRate: 44100, Channels: [][]float64{{2, -3, 0.5, math.NaN()}}}
	got := roundTrip(t, clip, 16)

	want := []float64{1, -1, 0.5, 0}
	testutil.RequireSliceNearlyEqual(t, got.Channels[0], want, 1e-4)
	if got.Duration() != 4.0/44100 {
		t.Fatalf("Duration()=%g", got.Duration())
	}
}

func TestReadRejectsNonWav(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("definitely not a RIFF stream")))
	if !errors.Is(err, ErrNotWav) {
		t.Fatalf("Read() error = %v, want ErrNotWav", err)
	}
}

func TestWriteValidation(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	tests := []struct {
		name string
		clip *Clip
		bits int
		want error
	}{
		{"bit depth", &Clip{SampleRate: 8000, Channels: [][]float64{{0}}}, 12, ErrUnsupportedBitDepth},
		{"nil clip", nil, 16, ErrEmptyClip},
		{"no frames", &Clip{SampleRate: 8000, Channels: [][]float64{{}}}, 16, ErrEmptyClip},
		{"ragged", &Clip{SampleRate: 8000, Channels: [][]float64{{0, 0}, {0}}}, 16, ErrChannelLength},
	}

	for _, tt := range tests {
		if err := Write(f, tt.clip, tt.bits); !errors.Is(err, tt.want) {
			t.Fatalf("%s: Write() error = %v, want %v", tt.name, err, tt.want)
		}
	}
}
