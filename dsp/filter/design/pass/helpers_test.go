package pass

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-wah/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	h := c.Response(freq, sr)
	return cmplx.Abs(h)
}

func magChain(c *biquad.Chain, freq, sr float64) float64 {
	h := c.Response(freq, sr)
	return cmplx.Abs(h)
}

// assertStableSection checks the second-order stability triangle
// |A2| < 1 and |A1| < 1 + A2.
func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	if math.Abs(c.A2) >= 1 || math.Abs(c.A1) >= 1+c.A2 {
		t.Fatalf("unstable section: %+v", c)
	}
}
