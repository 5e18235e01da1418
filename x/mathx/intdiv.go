package mathx

import "golang.org/x/exp/constraints"

// RoundDiv returns floor((a + b/2)/b), classic rounding for positives; 0 when b == 0.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// DivOrZero returns a/b, or 0 when b == 0. Hardware dividers left at zero
// produce no clock rather than a trap.
func DivOrZero[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return a / b
}
