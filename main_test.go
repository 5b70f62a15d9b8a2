package main

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestHighlightKeepsText(t *testing.T) {
	color.NoColor = true
	for _, src := range []string{
		"(and (<= (sum [x y] [1 -1]) 3) (in x {-∞..0,5}))",
		"(table [x y] @t0)",
		"true",
		"(and\n  (= x 1)\n  (-> a b)\n)",
	} {
		require.Equal(t, src, highlight(src))
	}
}
