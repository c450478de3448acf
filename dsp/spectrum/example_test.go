package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-wah/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleToneAmplitude() {
	x := make([]float64, 800)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/8000)
	}

	amp, _ := spectrum.ToneAmplitude(x, 440, 8000)
	fmt.Printf("%.3f\n", amp)
	// Output:
	// 0.500
}
