// Package wavelet implements a multilevel discrete wavelet transform with
// orthonormal filter banks.
//
// Decompose splits a signal into an approximation band and one detail band
// per level, ordered coarsest first:
//
//	[cA_L, cD_L, cD_L-1, ..., cD_1]
//
// The transform is periodized over a signal symmetrically extended to a
// multiple of 2^L, so Reconstruct returns that extended length. Callers crop
// the result back to the original length.
package wavelet
