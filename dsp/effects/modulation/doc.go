// Package modulation provides wah effects whose filter is swept by a
// control signal.
//
// Included processors:
//   - WahWah: State-variable bandpass swept by the input envelope or a Pedal.
//   - Pedal: Simulated foot pedal, auto sine sweep or manual hold.
//   - BandModulator: Wavelet-domain wah that modulates detail-band energy.
package modulation
