package bounds

import (
	"math/big"
	"sort"
	"strings"
)

// IntervalSet is an integer domain represented by a sorted list of disjoint,
// non-adjacent, non-empty intervals. The zero value is the empty set.
// IntervalSet values are immutable.
type IntervalSet struct {
	ivs []Intpair
}

// scaleLimit bounds the number of values enumerated by Scale before it falls
// back to the enclosing interval.
const scaleLimit = 1 << 16

// NewSet normalises an arbitrary list of intervals into an interval set.
func NewSet(ivs ...Intpair) IntervalSet {
	list := make([]Intpair, 0, len(ivs))
	for _, iv := range ivs {
		if !iv.IsEmpty() {
			list = append(list, iv)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Lower < list[j].Lower
	})

	res := make([]Intpair, 0, len(list))
	for _, iv := range list {
		if n := len(res); n > 0 {
			if m, ok := res[n-1].Merge(iv); ok {
				res[n-1] = m
				continue
			}
		}
		res = append(res, iv)
	}
	return IntervalSet{res}
}

// FromValues builds the minimal interval set containing exactly the given values.
func FromValues(vals ...int64) IntervalSet {
	ivs := make([]Intpair, len(vals))
	for i, v := range vals {
		ivs[i] = Single(v)
	}
	return NewSet(ivs...)
}

// Range is the interval set [lower, upper].
func Range(lower, upper int64) IntervalSet {
	return NewSet(Make(lower, upper))
}

// Universe is the interval set [-∞, ∞].
func Universe() IntervalSet {
	return IntervalSet{[]Intpair{Full()}}
}

// BoolSet is the interval set {0, 1}.
func BoolSet() IntervalSet {
	return Range(0, 1)
}

// Intervals returns a copy of the member intervals in ascending order.
func (s IntervalSet) Intervals() []Intpair {
	return append([]Intpair(nil), s.ivs...)
}

// IsEmpty checks whether the set has no values.
func (s IntervalSet) IsEmpty() bool {
	return len(s.ivs) == 0
}

// IsFinite checks whether the set is bounded on both ends.
func (s IntervalSet) IsFinite() bool {
	if s.IsEmpty() {
		return true
	}
	return s.Bounds().IsFinite()
}

// Bounds returns the enclosing interval.
func (s IntervalSet) Bounds() Intpair {
	if s.IsEmpty() {
		return Empty()
	}
	return Make(s.ivs[0].Lower, s.ivs[len(s.ivs)-1].Upper)
}

// NumValues counts the values in the set, saturating at PosInf.
func (s IntervalSet) NumValues() int64 {
	total := new(big.Int)
	for _, iv := range s.ivs {
		n := new(big.Int).Sub(big.NewInt(iv.Upper), big.NewInt(iv.Lower))
		total.Add(total, n.Add(n, big.NewInt(1)))
	}
	if !total.IsInt64() {
		return PosInf
	}
	return total.Int64()
}

// Contains checks v ∈ s by binary search.
func (s IntervalSet) Contains(v int64) bool {
	i := sort.Search(len(s.ivs), func(i int) bool {
		return s.ivs[i].Upper >= v
	})
	return i < len(s.ivs) && s.ivs[i].Lower <= v
}

// Union computes s ∪ o exactly.
func (s IntervalSet) Union(o IntervalSet) IntervalSet {
	return NewSet(append(s.Intervals(), o.ivs...)...)
}

// Intersect computes s ∩ o exactly with a linear merge.
func (s IntervalSet) Intersect(o IntervalSet) IntervalSet {
	var res []Intpair
	i, j := 0, 0
	for i < len(s.ivs) && j < len(o.ivs) {
		if iv := s.ivs[i].Intersect(o.ivs[j]); !iv.IsEmpty() {
			res = append(res, iv)
		}
		if s.ivs[i].Upper < o.ivs[j].Upper {
			i++
		} else {
			j++
		}
	}
	return IntervalSet{res}
}

// Complement computes [-∞, ∞] \ s.
func (s IntervalSet) Complement() IntervalSet {
	var res []Intpair
	next := NegInf
	open := true
	for _, iv := range s.ivs {
		if open && iv.Lower > next {
			res = append(res, Make(next, iv.Lower-1))
		}
		if iv.Upper == PosInf {
			open = false
			break
		}
		next = iv.Upper + 1
	}
	if open {
		res = append(res, Make(next, PosInf))
	}
	return IntervalSet{res}
}

// Subtract computes s \ o = s ∩ ¬o.
func (s IntervalSet) Subtract(o IntervalSet) IntervalSet {
	return s.Intersect(o.Complement())
}

// IntersectInterval restricts s to the interval iv.
func (s IntervalSet) IntersectInterval(iv Intpair) IntervalSet {
	return s.Intersect(NewSet(iv))
}

// Shift adds k to every value. Unbounded ends stay unbounded.
func (s IntervalSet) Shift(k int64) IntervalSet {
	ivs := make([]Intpair, len(s.ivs))
	for i, iv := range s.ivs {
		ivs[i] = iv
		if iv.Lower != NegInf {
			ivs[i].Lower = Add(iv.Lower, k)
		}
		if iv.Upper != PosInf {
			ivs[i].Upper = Add(iv.Upper, k)
		}
	}
	return NewSet(ivs...)
}

// Scale multiplies every value by k. Small finite sets are scaled exactly;
// otherwise the result over-approximates with the scaled enclosing intervals.
func (s IntervalSet) Scale(k int64) IntervalSet {
	if k == 0 {
		if s.IsEmpty() {
			return s
		}
		return FromValues(0)
	}
	if vals, ok := s.Values(scaleLimit); ok {
		for i := range vals {
			vals[i] = Mul(vals[i], k)
		}
		return FromValues(vals...)
	}
	ivs := make([]Intpair, len(s.ivs))
	for i, iv := range s.ivs {
		ivs[i] = iv.Scale(k)
	}
	return NewSet(ivs...)
}

// Values enumerates the members of s in ascending order. It reports false if
// s is infinite or holds more than limit values.
func (s IntervalSet) Values(limit int64) ([]int64, bool) {
	if !s.IsFinite() || s.NumValues() > limit {
		return nil, false
	}
	vals := make([]int64, 0, s.NumValues())
	for _, iv := range s.ivs {
		for v := iv.Lower; ; v++ {
			vals = append(vals, v)
			if v == iv.Upper {
				break
			}
		}
	}
	return vals, true
}

// Equal checks whether s and o hold the same values.
func (s IntervalSet) Equal(o IntervalSet) bool {
	if len(s.ivs) != len(o.ivs) {
		return false
	}
	for i := range s.ivs {
		if s.ivs[i] != o.ivs[i] {
			return false
		}
	}
	return true
}

// SubsetOf checks s ⊆ o.
func (s IntervalSet) SubsetOf(o IntervalSet) bool {
	return s.Subtract(o).IsEmpty()
}

func (s IntervalSet) String() string {
	strs := make([]string, len(s.ivs))
	for i, iv := range s.ivs {
		if iv.IsSingleton() {
			strs[i] = boundString(iv.Lower)
		} else {
			strs[i] = boundString(iv.Lower) + ".." + boundString(iv.Upper)
		}
	}
	return "{" + strings.Join(strs, ",") + "}"
}
