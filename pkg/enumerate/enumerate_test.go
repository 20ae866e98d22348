package enumerate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComboLexicographicOrder(t *testing.T) {
	var got [][]int
	Combo(5, 2, func(combo []int) bool {
		got = append(got, append([]int(nil), combo...))
		return true
	})
	want := [][]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {1, 3}, {1, 4},
		{2, 3}, {2, 4},
		{3, 4},
	}
	assert.Equal(t, want, got)
}

func TestComboCountMatchesBinomial(t *testing.T) {
	count := 0
	Combo(6, 3, func(combo []int) bool {
		count++
		return true
	})
	assert.Equal(t, Count(6, 3), count)
}

func TestComboKZero(t *testing.T) {
	var got [][]int
	Combo(5, 0, func(combo []int) bool {
		got = append(got, combo)
		return true
	})
	assert.Len(t, got, 1)
	assert.Empty(t, got[0])
}

func TestComboKGreaterThanC(t *testing.T) {
	calls := 0
	Combo(2, 5, func(combo []int) bool {
		calls++
		return true
	})
	assert.Zero(t, calls)
}

func TestComboEarlyStop(t *testing.T) {
	count := 0
	Combo(5, 2, func(combo []int) bool {
		count++
		return count < 3
	})
	assert.Equal(t, 3, count)
}

func TestRangeCoversAllK(t *testing.T) {
	seen := map[int]int{}
	Range(4, 1, 3, func(k int, combo []int) bool {
		seen[k]++
		return true
	})
	assert.Equal(t, Count(4, 1), seen[1])
	assert.Equal(t, Count(4, 2), seen[2])
	assert.Equal(t, Count(4, 3), seen[3])
}

func TestCountBinomial(t *testing.T) {
	assert.Equal(t, 1, Count(5, 0))
	assert.Equal(t, 5, Count(5, 1))
	assert.Equal(t, 10, Count(5, 2))
	assert.Equal(t, 0, Count(5, 6))
}
