package utils

import "math/bits"

// NextPowerOfTwo returns the smallest power of two greater than or equal to n.
func NextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len64(n)
}
