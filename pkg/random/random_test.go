package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeded_Deterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	c := NewSeeded(43)

	same := true
	for i := 0; i < 20; i++ {
		x, y, z := a.IntN(1000), b.IntN(1000), c.IntN(1000)
		assert.Equal(t, x, y)
		if x != z {
			same = false
		}
	}
	assert.False(t, same, "different seeds should diverge")
}

func TestSeeded_Ranges(t *testing.T) {
	src := NewSeeded(7)
	for i := 0; i < 500; i++ {
		f := src.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, want [0,1)", f)
		}
		n := IntRange(src, 180, 420)
		if n < 180 || n >= 420 {
			t.Fatalf("IntRange(180, 420) = %d, out of range", n)
		}
	}
	assert.Equal(t, 0, src.IntN(0))
}

func TestIntRange_Empty(t *testing.T) {
	assert.Equal(t, 5, IntRange(NewSeeded(1), 5, 5))
	assert.Equal(t, 5, IntRange(NewSeeded(1), 5, 2))
}

func TestPick(t *testing.T) {
	_, ok := Pick(NewSeeded(1), []string{})
	assert.False(t, ok)

	src := NewScripted(nil, []int{2, 0, 7})
	items := []string{"a", "b", "c"}

	got, ok := Pick(src, items)
	assert.True(t, ok)
	assert.Equal(t, "c", got)
	got, _ = Pick(src, items)
	assert.Equal(t, "a", got)
	got, _ = Pick(src, items)
	assert.Equal(t, "b", got, "scripted ints wrap modulo n")
}

func TestChance(t *testing.T) {
	src := NewScripted([]float64{0.05, 0.1, 0.5}, nil)
	assert.True(t, Chance(src, 0.1))
	assert.False(t, Chance(src, 0.1))
	assert.False(t, Chance(src, 0.1))
	assert.False(t, Chance(src, 0.1), "exhausted script never succeeds")
}
