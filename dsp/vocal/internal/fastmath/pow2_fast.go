//go:build fastmath

package fastmath

import "github.com/meko-christian/algo-approx"

const ln2 = 0.693147180559945309417232121458

// Pow2 returns an approximation of 2^x. Pow2(0) is exactly 1 so neutral
// settings stay bit-exact.
func Pow2(x float64) float64 {
	if x == 0 {
		return 1
	}

	return approx.FastExp(x * ln2)
}
