package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRNGRemapsZeroSeed(t *testing.T) {
	a := NewRNG(0)
	b := NewRNG(1)
	assert.Equal(t, a.Next(), b.Next())
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestSampleReturnsKDistinctIndices(t *testing.T) {
	rng := NewRNG(7)
	got := Sample(rng, 10, 4)
	assert.Len(t, got, 4)
	seen := map[int]bool{}
	for _, i := range got {
		assert.False(t, seen[i])
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 10)
		seen[i] = true
	}
}

func TestSampleClampsKToC(t *testing.T) {
	rng := NewRNG(1)
	got := Sample(rng, 3, 10)
	assert.Len(t, got, 3)
}

func TestNextTrialKWithinRange(t *testing.T) {
	rng := NewRNG(3)
	for i := 0; i < 50; i++ {
		tr := NextTrial(rng, 8, 2, 5)
		assert.GreaterOrEqual(t, tr.K, 2)
		assert.LessOrEqual(t, tr.K, 5)
		assert.Len(t, tr.Indices, tr.K)
	}
}

func TestRunStopsOnStopFlag(t *testing.T) {
	rng := NewRNG(9)
	count := 0
	stopAt := 5
	Run(rng, 6, 1, 3, func() bool { return count >= stopAt }, func(Trial) bool {
		count++
		return true
	})
	assert.Equal(t, stopAt, count)
}

func TestRunStopsOnEmitFalse(t *testing.T) {
	rng := NewRNG(9)
	count := 0
	Run(rng, 6, 1, 3, func() bool { return false }, func(Trial) bool {
		count++
		return count < 3
	})
	assert.Equal(t, 3, count)
}
