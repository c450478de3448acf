// Package envelope extracts slowly varying amplitude envelopes from audio.
//
// Follower rectifies its input and smooths it with a Butterworth lowpass
// cascade. Filter state is carried across calls, so a stream may be fed in
// arbitrarily sized blocks.
package envelope
