package wavelet

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the transform.
var (
	ErrInvalidFilter      = errors.New("wavelet: scaling filter must have even length >= 2")
	ErrInvalidLevel       = errors.New("wavelet: level must be >= 1")
	ErrDecompositionDepth = errors.New("wavelet: level exceeds maximum for signal length")
	ErrEmptySignal        = errors.New("wavelet: empty signal")
	ErrCoefficientShape   = errors.New("wavelet: inconsistent coefficient lengths")
)

// Decompose runs a level-deep transform of x and returns
// [cA_level, cD_level, ..., cD_1]. Every band at depth l has
// PaddedLen(len(x), level)/2^l coefficients.
func Decompose(x []float64, w Wavelet, level int) ([][]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptySignal
	}

	if level < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	if maxLevel := MaxLevel(len(x), w); level > maxLevel {
		return nil, fmt.Errorf("%w: level=%d max=%d len=%d wavelet=%s",
			ErrDecompositionDepth, level, maxLevel, len(x), w.name)
	}

	approx := symmetricExtend(x, PaddedLen(len(x), level))
	coeffs := make([][]float64, level+1)

	for l := level; l >= 1; l-- {
		half := len(approx) / 2
		a := make([]float64, half)
		d := make([]float64, half)
		analyze(a, d, approx, w)
		coeffs[l] = d
		approx = a
	}

	coeffs[0] = approx

	return coeffs, nil
}

// Reconstruct inverts Decompose. The result has the padded length used by
// the forward transform.
func Reconstruct(coeffs [][]float64, w Wavelet) ([]float64, error) {
	if len(coeffs) < 2 || len(coeffs[0]) == 0 {
		return nil, ErrCoefficientShape
	}

	approx := append([]float64(nil), coeffs[0]...)
	for l := 1; l < len(coeffs); l++ {
		if len(coeffs[l]) != len(approx) {
			return nil, fmt.Errorf("%w: band %d has %d coefficients, want %d",
				ErrCoefficientShape, l, len(coeffs[l]), len(approx))
		}

		out := make([]float64, 2*len(approx))
		synthesize(out, approx, coeffs[l], w)
		approx = out
	}

	return approx, nil
}

// PaddedLen rounds n up to a multiple of 2^level.
func PaddedLen(n, level int) int {
	block := 1 << level
	return (n + block - 1) / block * block
}

// analyze computes one periodized analysis step:
// a[k] = sum_j lo[j]*x[(2k+j) mod N], d[k] likewise with hi.
func analyze(a, d, x []float64, w Wavelet) {
	n := len(x)
	for k := range a {
		var sa, sd float64
		base := 2 * k
		for j := range w.lo {
			v := x[(base+j)%n]
			sa += w.lo[j] * v
			sd += w.hi[j] * v
		}
		a[k] = sa
		d[k] = sd
	}
}

// synthesize is the transpose of analyze, accumulating into dst.
// Contiguous kernel spans use vector kernels; spans that wrap around
// the end of dst are folded by hand.
func synthesize(dst, a, d []float64, w Wavelet) {
	n := len(dst)
	taps := w.Len()
	temp := make([]float64, taps)

	for k := range a {
		base := 2 * k

		vecmath.ScaleBlock(temp, w.lo, a[k])
		accumulate(dst, temp, base, n)

		vecmath.ScaleBlock(temp, w.hi, d[k])
		accumulate(dst, temp, base, n)
	}
}

func accumulate(dst, src []float64, base, n int) {
	if base+len(src) <= n {
		vecmath.AddBlockInPlace(dst[base:base+len(src)], src)
		return
	}

	for j, v := range src {
		dst[(base+j)%n] += v
	}
}

// symmetricExtend returns x extended to n samples by half-sample mirroring
// (x[len-1], x[len-2], ...), folding repeatedly when n exceeds 2*len(x).
func symmetricExtend(x []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, x)

	m := len(x)
	period := 2 * m
	for i := m; i < n; i++ {
		j := i % period
		if j >= m {
			j = period - 1 - j
		}
		out[i] = x[j]
	}

	return out
}
