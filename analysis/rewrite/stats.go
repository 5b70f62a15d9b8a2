package rewrite

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/crow-cp/crow/analysis/ast"
)

// Stats counts what the rewriter did.
type Stats struct {
	Passes    int
	Rewrites  map[ast.Kind]int
	Unrolled  int
	Deleted   int
	Extracted int
	Phases    []Phase
}

// Phase records one step of the pipeline.
type Phase struct {
	Name     string
	Duration time.Duration
	Changed  bool
	Size     int
}

func NewStats() *Stats {
	return &Stats{Rewrites: make(map[ast.Kind]int)}
}

func (s *Stats) rewrote(k ast.Kind) {
	s.Rewrites[k]++
}

// TotalRewrites sums the rewrites over all kinds.
func (s *Stats) TotalRewrites() (total int) {
	for _, n := range s.Rewrites {
		total += n
	}
	return
}

func (s *Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Passes: %d\nRewrites: %d\n", s.Passes, s.TotalRewrites())
	kinds := make([]ast.Kind, 0, len(s.Rewrites))
	for k := range s.Rewrites {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %-10s %d\n", k, s.Rewrites[k])
	}
	fmt.Fprintf(&b, "Quantifiers unrolled: %d\nVariables deleted: %d\nSubexpressions extracted: %d\n",
		s.Unrolled, s.Deleted, s.Extracted)
	for _, p := range s.Phases {
		fmt.Fprintf(&b, "  %-12s changed=%-5t size=%-6d %s\n", p.Name, p.Changed, p.Size, p.Duration)
	}
	return b.String()
}
