package utils

import "testing"

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[uint64]uint64{
		0: 1,
		1: 1,
		2: 2,
		3: 4,
		4: 4,
		5: 8,
		9: 16,
	}
	for in, want := range cases {
		if got := NextPowerOfTwo(in); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
