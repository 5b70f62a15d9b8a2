package bounds

import "math"

const (
	// NegInf is the sentinel standing for -∞ as a lower bound.
	NegInf int64 = math.MinInt64
	// PosInf is the sentinel standing for ∞ as an upper bound.
	PosInf int64 = math.MaxInt64
)

// The sentinels behave as infinities: they absorb finite operands, and finite
// results that leave the int64 range saturate to the sentinel on that side.
// Opposite sentinels meeting in a sum cancel as if they were the extreme
// integers they are stored as.
//
//	.---------------------------------------------.
//	|   a    |   b    |  a + b                    |
//	|========|========|===========================|
//	|  ∈  ℤ  |  ∈  ℤ  |  a + b, saturated         |
//	|--------|--------|---------------------------|
//	|  ∈  ℤ  |  (-)∞  |  b                        |
//	|--------|--------|---------------------------|
//	|   ∞    |   ∞    |  ∞                        |
//	|--------|--------|---------------------------|
//	|   ∞    |  -∞    |  -1                       |
//	 ---------------------------------------------

// IsInfinite checks whether v is one of the sentinels.
func IsInfinite(v int64) bool {
	return v == NegInf || v == PosInf
}

// Add computes a + b.
func Add(a, b int64) int64 {
	switch {
	case IsInfinite(a) && IsInfinite(b) && a != b:
		return a + b
	case IsInfinite(a):
		return a
	case IsInfinite(b):
		return b
	}
	s := a + b
	switch {
	case a > 0 && b > 0 && s < 0:
		return PosInf
	case a < 0 && b < 0 && s >= 0:
		return NegInf
	}
	return s
}

// Neg computes -a. The sentinels swap.
func Neg(a int64) int64 {
	switch a {
	case NegInf:
		return PosInf
	case PosInf:
		return NegInf
	}
	return -a
}

// Sub computes a - b = a + (-b).
func Sub(a, b int64) int64 {
	if a == b && IsInfinite(a) {
		return 0
	}
	return Add(a, Neg(b))
}

// Mul computes a * b. A sentinel times 0 is 0:
//
//	.---------------------------------.
//	|   a    |   b    |  a * b        |
//	|========|========|===============|
//	|  ∈  ℤ  |  ∈  ℤ  |  saturated    |
//	|--------|--------|---------------|
//	|  (-)∞  |    0   |  0            |
//	|--------|--------|---------------|
//	|  (-)∞  |  ∈ ℤ+  |  a            |
//	|--------|--------|---------------|
//	|  (-)∞  |  ∈ ℤ-  |  -a           |
//	 ---------------------------------
func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	neg := (a < 0) != (b < 0)
	if IsInfinite(a) || IsInfinite(b) {
		if neg {
			return NegInf
		}
		return PosInf
	}
	c := a * b
	if c/b != a || (a == -1 && b == NegInf) || (b == -1 && a == NegInf) {
		if neg {
			return NegInf
		}
		return PosInf
	}
	return c
}

// FloorDiv computes ⌊a / b⌋. Division by zero yields 0, matching the
// total semantics of the div operator.
func FloorDiv(a, b int64) int64 {
	switch {
	case b == 0:
		return 0
	case IsInfinite(a) && b < 0:
		return Neg(a)
	case IsInfinite(a):
		return a
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CeilDiv computes ⌈a / b⌉, with the same conventions as FloorDiv.
func CeilDiv(a, b int64) int64 {
	switch {
	case b == 0:
		return 0
	case IsInfinite(a) && b < 0:
		return Neg(a)
	case IsInfinite(a):
		return a
	}
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}

// FloorMod computes a - b*⌊a / b⌋, so the result takes the sign of b.
// a mod 0 is 0.
func FloorMod(a, b int64) int64 {
	if b == 0 || b == -1 {
		return 0
	}
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// Min returns the smaller of a and b.
func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// Gcd computes the non-negative greatest common divisor of a and b.
// Gcd(0, 0) is 0.
func Gcd(a, b int64) int64 {
	if a < 0 {
		a = Neg(a)
	}
	if b < 0 {
		b = Neg(b)
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
