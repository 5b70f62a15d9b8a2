package bounds

import (
	"fmt"
	"strconv"
)

// Intpair is a closed integer interval [Lower, Upper]. Lower > Upper denotes
// the empty interval. NegInf and PosInf stand for unbounded ends.
type Intpair struct {
	Lower int64
	Upper int64
}

// Make creates the interval [lower, upper].
func Make(lower, upper int64) Intpair {
	return Intpair{Lower: lower, Upper: upper}
}

// Single creates the singleton interval [v, v].
func Single(v int64) Intpair {
	return Intpair{Lower: v, Upper: v}
}

// Full is the interval [-∞, ∞].
func Full() Intpair {
	return Intpair{Lower: NegInf, Upper: PosInf}
}

// Empty is the canonical empty interval.
func Empty() Intpair {
	return Intpair{Lower: 1, Upper: 0}
}

// Bool is the interval of boolean values, [0, 1].
func Bool() Intpair {
	return Intpair{Lower: 0, Upper: 1}
}

func boundString(v int64) string {
	switch v {
	case NegInf:
		return "-∞"
	case PosInf:
		return "∞"
	}
	return strconv.FormatInt(v, 10)
}

func (p Intpair) String() string {
	if p.IsEmpty() {
		return "∅"
	}
	return fmt.Sprintf("[%s, %s]", boundString(p.Lower), boundString(p.Upper))
}

// IsEmpty checks whether the interval contains no values.
func (p Intpair) IsEmpty() bool {
	return p.Lower > p.Upper
}

// IsSingleton checks whether the interval contains exactly one value.
func (p Intpair) IsSingleton() bool {
	return p.Lower == p.Upper
}

// IsFinite checks that neither end is a sentinel.
func (p Intpair) IsFinite() bool {
	return !IsInfinite(p.Lower) && !IsInfinite(p.Upper)
}

// Contains checks whether v ∈ [Lower, Upper].
func (p Intpair) Contains(v int64) bool {
	return p.Lower <= v && v <= p.Upper
}

// ContainsInterval checks whether o ⊆ p. The empty interval is contained
// in every interval.
func (p Intpair) ContainsInterval(o Intpair) bool {
	if o.IsEmpty() {
		return true
	}
	return p.Lower <= o.Lower && o.Upper <= p.Upper
}

// Disjoint checks whether p and o share no value.
func (p Intpair) Disjoint(o Intpair) bool {
	return p.Intersect(o).IsEmpty()
}

// Size returns the number of values in the interval, saturating at PosInf.
func (p Intpair) Size() int64 {
	if p.IsEmpty() {
		return 0
	}
	return Add(Sub(p.Upper, p.Lower), 1)
}

// Intersect computes p ∩ o, clipped.
func (p Intpair) Intersect(o Intpair) Intpair {
	return Intpair{Lower: Max(p.Lower, o.Lower), Upper: Min(p.Upper, o.Upper)}
}

// Union computes the smallest interval enclosing both p and o. When p and o
// are disjoint and not adjacent the result includes the gap between them.
func (p Intpair) Union(o Intpair) Intpair {
	switch {
	case p.IsEmpty():
		return o
	case o.IsEmpty():
		return p
	}
	return Intpair{Lower: Min(p.Lower, o.Lower), Upper: Max(p.Upper, o.Upper)}
}

// Merge computes the exact union of p and o if they overlap or touch. It
// reports false otherwise.
func (p Intpair) Merge(o Intpair) (Intpair, bool) {
	switch {
	case p.IsEmpty():
		return o, true
	case o.IsEmpty():
		return p, true
	}
	if Add(p.Upper, 1) < o.Lower || Add(o.Upper, 1) < p.Lower {
		return Empty(), false
	}
	return p.Union(o), true
}

// Plus computes [a, b] + [c, d] = [a+c, b+d].
func (p Intpair) Plus(o Intpair) Intpair {
	if p.IsEmpty() || o.IsEmpty() {
		return Empty()
	}
	return Intpair{Lower: Add(p.Lower, o.Lower), Upper: Add(p.Upper, o.Upper)}
}

// Minus computes [a, b] - [c, d] = [a-d, b-c].
func (p Intpair) Minus(o Intpair) Intpair {
	if p.IsEmpty() || o.IsEmpty() {
		return Empty()
	}
	return Intpair{Lower: Sub(p.Lower, o.Upper), Upper: Sub(p.Upper, o.Lower)}
}

// Negate computes -[a, b] = [-b, -a].
func (p Intpair) Negate() Intpair {
	if p.IsEmpty() {
		return Empty()
	}
	return Intpair{Lower: Neg(p.Upper), Upper: Neg(p.Lower)}
}

// Shift computes [a+k, b+k].
func (p Intpair) Shift(k int64) Intpair {
	return p.Plus(Single(k))
}

// Scale computes k * [a, b].
func (p Intpair) Scale(k int64) Intpair {
	return p.Times(Single(k))
}

// corners applies f to every combination of bounds and encloses the results.
func corners(p, o Intpair, f func(a, b int64) int64) Intpair {
	vals := [4]int64{
		f(p.Lower, o.Lower),
		f(p.Lower, o.Upper),
		f(p.Upper, o.Lower),
		f(p.Upper, o.Upper),
	}
	res := Single(vals[0])
	for _, v := range vals[1:] {
		res.Lower = Min(res.Lower, v)
		res.Upper = Max(res.Upper, v)
	}
	return res
}

// Times computes [a, b] * [c, d] with the 4-corner rule.
func (p Intpair) Times(o Intpair) Intpair {
	if p.IsEmpty() || o.IsEmpty() {
		return Empty()
	}
	return corners(p, o, Mul)
}

// Div computes ⌊[a, b] / [c, d]⌋. The divisor is split around 0, and the
// 4-corner rule is applied to each non-empty side. When the divisor may be 0
// the result includes 0, since x div 0 = 0.
//
//	.-------------------------------------------------.
//	|  divisor        |  result                       |
//	|=================|===============================|
//	|  [c, d], c > 0  |  corners(⌊·/·⌋)               |
//	|-----------------|-------------------------------|
//	|  [c, d], d < 0  |  corners(⌊·/·⌋)               |
//	|-----------------|-------------------------------|
//	|  c ≤ 0 ≤ d      |  neg ∪ pos ∪ [0, 0]           |
//	 -------------------------------------------------
func (p Intpair) Div(o Intpair) Intpair {
	if p.IsEmpty() || o.IsEmpty() {
		return Empty()
	}
	res := Empty()
	if neg := o.Intersect(Make(NegInf, -1)); !neg.IsEmpty() {
		res = res.Union(corners(p, neg, FloorDiv))
	}
	if pos := o.Intersect(Make(1, PosInf)); !pos.IsEmpty() {
		res = res.Union(corners(p, pos, FloorDiv))
	}
	if o.Contains(0) {
		res = res.Union(Single(0))
	}
	return res
}

// Mod computes bounds of [a, b] mod [c, d] with floor semantics: the result
// takes the sign of the divisor and its magnitude is below the divisor's.
func (p Intpair) Mod(o Intpair) Intpair {
	if p.IsEmpty() || o.IsEmpty() {
		return Empty()
	}
	res := Empty()
	if pos := o.Intersect(Make(1, PosInf)); !pos.IsEmpty() {
		r := Make(0, Sub(pos.Upper, 1))
		if p.Lower >= 0 {
			r.Upper = Min(r.Upper, p.Upper)
		}
		res = res.Union(r)
	}
	if neg := o.Intersect(Make(NegInf, -1)); !neg.IsEmpty() {
		r := Make(Add(neg.Lower, 1), 0)
		if p.Upper <= 0 {
			r.Lower = Max(r.Lower, p.Lower)
		}
		res = res.Union(r)
	}
	if o.Contains(0) {
		res = res.Union(Single(0))
	}
	return res
}

// Abs computes |[a, b]|.
func (p Intpair) Abs() Intpair {
	switch {
	case p.IsEmpty():
		return Empty()
	case p.Lower >= 0:
		return p
	case p.Upper <= 0:
		return p.Negate()
	}
	return Make(0, Max(Neg(p.Lower), p.Upper))
}
