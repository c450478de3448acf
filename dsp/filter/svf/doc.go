// Package svf provides a Chamberlin state-variable bandpass filter designed
// to be retuned every sample.
//
// The filter keeps three integrator outputs (low, band, high) and exposes the
// band output. Center frequency and Q are clamped rather than rejected, so a
// modulation source can drive the filter without ever interrupting the stream.
package svf
