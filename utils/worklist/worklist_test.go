package worklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreadthFirstOrder(t *testing.T) {
	children := map[int][]int{1: {2, 3}, 2: {4}, 3: {5, 6}}
	var visited []int
	Start(1, func(next int, add func(int)) {
		visited = append(visited, next)
		for _, c := range children[next] {
			add(c)
		}
	})
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, visited)
}
