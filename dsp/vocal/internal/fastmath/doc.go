// Package fastmath selects the exponential used for ratio conversions.
// Building with the fastmath tag swaps math.Exp2 for algo-approx.
package fastmath
