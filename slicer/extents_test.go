package slicer

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldExtentsCoversEveryTile(t *testing.T) {
	e := WorldExtents(3)
	assert.True(t, e.InRange(0))
	assert.True(t, e.InRange(7))
	assert.False(t, e.InRange(8))
	assert.Equal(t, 0, e.MinY())
	assert.Equal(t, 8, e.MaxY())
}

func TestBoundsExtentsRestrictsToBound(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	e := BoundsExtents(bound, 4)

	full := WorldExtents(4)
	var restricted, total int
	for x := 0; x < 16; x++ {
		if full.InRange(x) {
			total++
		}
		if e.InRange(x) {
			restricted++
		}
	}
	assert.Less(t, restricted, total)
	assert.Greater(t, restricted, 0)
}

func TestNewBoundsExtentsBuildsOnePerZoom(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	extents, err := NewBoundsExtents(bound, 2, 5)
	require.NoError(t, err)
	require.Len(t, extents, 4)
	for z := 2; z <= 5; z++ {
		assert.Equal(t, BoundsExtents(bound, z), extents[z])
	}
}

func TestNewBoundsExtentsRejectsOutOfRangeMinzoom(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	_, err := NewBoundsExtents(bound, -1, 5)
	assert.Error(t, err)
}

func TestNewBoundsExtentsRejectsOutOfRangeMaxzoom(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	_, err := NewBoundsExtents(bound, 0, 15)
	assert.Error(t, err)
}

func TestNewBoundsExtentsRejectsMinGreaterThanMax(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	_, err := NewBoundsExtents(bound, 8, 4)
	assert.Error(t, err)
}
