package loudness_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-wah/measure/loudness"
)

func ExampleMeter() {
	const fs = 48000.0
	m := loudness.NewMeter(
		loudness.WithSampleRate(fs),
		loudness.WithChannels(1),
	)

	// Half-scale 1 kHz sine: -6.02 dBFS below the -3.01 LUFS reference.
	sig := make([]float64, int(fs*4))
	for i := range sig {
		sig[i] = 0.5 * math.Sin(2*math.Pi*1000/fs*float64(i))
	}

	m.ProcessInterleaved(sig)

	fmt.Printf("Integrated: %.1f LUFS\n", m.Integrated())
	// Output:
	// Integrated: -9.0 LUFS
}
