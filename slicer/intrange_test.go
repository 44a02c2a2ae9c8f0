package slicer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntRangeAddMergesAdjacent(t *testing.T) {
	r := NewIntRange()
	r.Add(0, 2)
	r.Add(3, 5)
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(5))
	assert.Equal(t, [][2]int{{0, 5}}, r.intervals)
}

func TestIntRangeAddKeepsDisjoint(t *testing.T) {
	r := NewIntRange()
	r.Add(0, 1)
	r.Add(5, 6)
	assert.False(t, r.Contains(3))
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(6))
}

func TestIntRangeRemoveAllSplitsInterval(t *testing.T) {
	r := NewIntRange()
	r.Add(0, 10)

	cut := NewIntRange()
	cut.Add(4, 6)
	r.RemoveAll(cut)

	assert.True(t, r.Contains(3))
	assert.False(t, r.Contains(4))
	assert.False(t, r.Contains(6))
	assert.True(t, r.Contains(7))
}

func TestIntRangeIntersect(t *testing.T) {
	a := NewIntRange()
	a.Add(0, 10)
	b := NewIntRange()
	b.Add(5, 15)

	got := a.Intersect(b)
	assert.True(t, got.Contains(5))
	assert.True(t, got.Contains(10))
	assert.False(t, got.Contains(4))
	assert.False(t, got.Contains(11))
}

func TestIntRangeIntersectWithNilIsEmpty(t *testing.T) {
	a := NewIntRange()
	a.Add(0, 10)
	assert.True(t, a.Intersect(nil).IsEmpty())
}

func TestIntRangeForEach(t *testing.T) {
	r := NewIntRange()
	r.Add(2, 4)
	var seen []int
	r.ForEach(func(v int) { seen = append(seen, v) })
	assert.Equal(t, []int{2, 3, 4}, seen)
}
