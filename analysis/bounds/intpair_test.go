package bounds

import "testing"

func TestIntpairOperations(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Intpair
		f        func(Intpair, Intpair) Intpair
		expected Intpair
	}{
		{"∩", Make(1, 5), Make(3, 9), Intpair.Intersect, Make(3, 5)},
		{"∩", Make(1, 2), Make(3, 9), Intpair.Intersect, Make(3, 2)},
		{"∪", Make(1, 2), Make(5, 9), Intpair.Union, Make(1, 9)},
		{"∪", Empty(), Make(5, 9), Intpair.Union, Make(5, 9)},
		{"+", Make(1, 2), Make(5, 9), Intpair.Plus, Make(6, 11)},
		{"+", Full(), Make(5, 9), Intpair.Plus, Full()},
		{"-", Make(1, 2), Make(5, 9), Intpair.Minus, Make(-8, -3)},
		{"*", Make(-2, 3), Make(-5, 4), Intpair.Times, Make(-15, 12)},
		{"*", Make(0, 0), Full(), Intpair.Times, Single(0)},
		{"div", Make(-7, 7), Make(2, 2), Intpair.Div, Make(-4, 3)},
		{"div", Make(10, 20), Make(-2, 5), Intpair.Div, Make(-20, 20)},
		{"div", Make(1, 1), Single(0), Intpair.Div, Single(0)},
		{"mod", Make(0, 100), Make(1, 5), Intpair.Mod, Make(0, 4)},
		{"mod", Make(0, 2), Make(1, 5), Intpair.Mod, Make(0, 2)},
		{"mod", Make(-5, 5), Make(-3, -1), Intpair.Mod, Make(-2, 0)},
	}

	for _, test := range tests {
		if res := test.f(test.a, test.b); res != test.expected {
			t.Errorf("%s %s %s = %s, expected %s", test.a, test.name, test.b, res, test.expected)
		}
	}
}

func TestIntpairMerge(t *testing.T) {
	tests := []struct {
		a, b     Intpair
		expected Intpair
		ok       bool
	}{
		{Make(1, 3), Make(4, 6), Make(1, 6), true},
		{Make(1, 3), Make(2, 6), Make(1, 6), true},
		{Make(1, 3), Make(5, 6), Empty(), false},
		{Make(5, PosInf), Make(NegInf, 4), Full(), true},
	}

	for _, test := range tests {
		res, ok := test.a.Merge(test.b)
		if ok != test.ok || (ok && res != test.expected) {
			t.Errorf("merge(%s, %s) = %s, %v, expected %s, %v",
				test.a, test.b, res, ok, test.expected, test.ok)
		}
	}
}

func TestIntpairAbs(t *testing.T) {
	tests := []struct {
		a, expected Intpair
	}{
		{Make(2, 5), Make(2, 5)},
		{Make(-5, -2), Make(2, 5)},
		{Make(-7, 3), Make(0, 7)},
		{Make(NegInf, 0), Make(0, PosInf)},
	}
	for _, test := range tests {
		if res := test.a.Abs(); res != test.expected {
			t.Errorf("|%s| = %s, expected %s", test.a, res, test.expected)
		}
	}
}

// Every product of members must lie within the computed bounds.
func TestIntpairTimesSound(t *testing.T) {
	for al := int64(-3); al <= 3; al++ {
		for ah := al; ah <= 3; ah++ {
			for bl := int64(-3); bl <= 3; bl++ {
				for bh := bl; bh <= 3; bh++ {
					a, b := Make(al, ah), Make(bl, bh)
					prod, quot := a.Times(b), a.Div(b)
					for x := al; x <= ah; x++ {
						for y := bl; y <= bh; y++ {
							if !prod.Contains(x * y) {
								t.Fatalf("%d * %d ∉ %s * %s = %s", x, y, a, b, prod)
							}
							if q := FloorDiv(x, y); !quot.Contains(q) {
								t.Fatalf("%d div %d ∉ %s div %s = %s", x, y, a, b, quot)
							}
							if m := FloorMod(x, y); !a.Mod(b).Contains(m) {
								t.Fatalf("%d mod %d ∉ %s mod %s", x, y, a, b)
							}
						}
					}
				}
			}
		}
	}
}
