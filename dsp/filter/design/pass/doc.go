// Package pass designs filter sections as biquad coefficients.
//
// ButterworthLP returns higher-order lowpass designs as cascades of
// second-order sections, ready to be run through a biquad.Chain. The RBJ
// functions cover the single sections used for weighting filters.
package pass
