// Package spectrum holds small frequency-domain helpers.
//
// Goertzel measures the power of single tones without a full transform,
// which is how filter responses are probed in tests. The Power and
// Magnitude helpers turn complex FFT bins into real spectra.
package spectrum
