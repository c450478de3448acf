package wavelet

import "math"

// Wavelet is an orthonormal two-channel filter bank described by its
// scaling (lowpass) filter. The wavelet (highpass) filter is derived as the
// alternating-sign reverse of the scaling filter.
type Wavelet struct {
	name string
	lo   []float64
	hi   []float64
}

// New builds a wavelet from a scaling filter of even length. The filter must
// be orthonormal (sum of squares 1, sum sqrt(2)) for perfect reconstruction.
func New(name string, scaling []float64) (Wavelet, error) {
	if len(scaling) < 2 || len(scaling)%2 != 0 {
		return Wavelet{}, ErrInvalidFilter
	}

	lo := append([]float64(nil), scaling...)
	hi := make([]float64, len(lo))
	n := len(lo)
	for j := range hi {
		v := lo[n-1-j]
		if j%2 != 0 {
			v = -v
		}
		hi[j] = v
	}

	return Wavelet{name: name, lo: lo, hi: hi}, nil
}

// Haar is the two-tap Haar wavelet.
var Haar = mustNew("haar", []float64{math.Sqrt2 / 2, math.Sqrt2 / 2})

// Daubechies4 is the Daubechies wavelet with four vanishing moments (8 taps).
var Daubechies4 = mustNew("db4", []float64{
	0.23037781330885523,
	0.7148465705525415,
	0.6308807679295904,
	-0.02798376941698385,
	-0.18703481171888114,
	0.030841381835986965,
	0.032883011666982945,
	-0.010597401784997278,
})

func mustNew(name string, scaling []float64) Wavelet {
	w, err := New(name, scaling)
	if err != nil {
		panic(err)
	}

	return w
}

// Name returns the short wavelet name ("haar", "db4").
func (w Wavelet) Name() string { return w.name }

// Len returns the filter length.
func (w Wavelet) Len() int { return len(w.lo) }

// Scaling returns a copy of the scaling filter.
func (w Wavelet) Scaling() []float64 { return append([]float64(nil), w.lo...) }

// ByName looks up a preset wavelet.
func ByName(name string) (Wavelet, bool) {
	switch name {
	case "haar", "db1":
		return Haar, true
	case "db4":
		return Daubechies4, true
	default:
		return Wavelet{}, false
	}
}

// MaxLevel returns the deepest useful decomposition level for a signal of n
// samples, floor(log2(n / (Len()-1))). It is 0 when the signal is shorter
// than the filter.
func MaxLevel(n int, w Wavelet) int {
	taps := w.Len() - 1
	if taps < 1 || n < taps {
		return 0
	}

	level := 0
	for taps<<(level+1) <= n {
		level++
	}

	return level
}
