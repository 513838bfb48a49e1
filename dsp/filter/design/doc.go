// Package design computes biquad coefficients from the RBJ audio-EQ
// cookbook formulas.
package design
