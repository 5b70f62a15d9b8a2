package bounds

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadSet is returned for malformed set literals.
var ErrBadSet = errors.New("malformed set literal")

func parseBound(s string) (int64, error) {
	switch s {
	case "-∞", "-inf":
		return NegInf, nil
	case "∞", "inf":
		return PosInf, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// ParseSet reads the notation produced by IntervalSet.String, e.g.
// "{1..3,5}" or "{-∞..0}".
func ParseSet(s string) (IntervalSet, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return IntervalSet{}, fmt.Errorf("%w: %q", ErrBadSet, s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return NewSet(), nil
	}
	var ivs []Intpair
	for _, item := range strings.Split(body, ",") {
		item = strings.TrimSpace(item)
		lo, hi := item, item
		if i := strings.Index(item, ".."); i >= 0 {
			lo, hi = item[:i], item[i+2:]
		}
		l, err := parseBound(lo)
		if err != nil {
			return IntervalSet{}, fmt.Errorf("%w: %q: %v", ErrBadSet, s, err)
		}
		u, err := parseBound(hi)
		if err != nil {
			return IntervalSet{}, fmt.Errorf("%w: %q: %v", ErrBadSet, s, err)
		}
		if l > u {
			return IntervalSet{}, fmt.Errorf("%w: %q: empty range %s", ErrBadSet, s, item)
		}
		ivs = append(ivs, Make(l, u))
	}
	return NewSet(ivs...), nil
}
