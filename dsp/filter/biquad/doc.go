// Package biquad implements the second-order IIR section used for tone
// shaping in the vocal modules.
//
// Coefficients are normalized so that a0 = 1. Designers live in
// dsp/filter/design.
package biquad
