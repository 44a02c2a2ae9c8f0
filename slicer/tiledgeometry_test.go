package slicer

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareTile(x, y float64) Sequence {
	return Sequence{
		{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y},
	}
}

func TestSlicePointsAssignsToContainingTile(t *testing.T) {
	// (2.5, 2.5) in world-at-zoom units, normalized to [0,1] as SlicePoints
	// expects: 2.5/16.
	tg := SlicePoints(WorldExtents(4), 0, 4, []orb.Point{{2.5 / 16, 2.5 / 16}})

	data := tg.TileData()
	require.Len(t, data, 1)
	for tile, groups := range data {
		assert.Equal(t, maptile.New(2, 2, 4), tile)
		require.Len(t, groups, 1)
		require.Len(t, groups[0].Rings[0], 1)
		assert.InDelta(t, 0.5, groups[0].Rings[0][0][0], 1e-9)
		assert.InDelta(t, 0.5, groups[0].Rings[0][0][1], 1e-9)
	}
}

func TestSlicePointsReplicatesIntoBufferedNeighbors(t *testing.T) {
	// a point exactly on a tile seam, with a non-zero buffer, must land in
	// every tile whose buffered area covers it. (2.0, 2.0) world-at-zoom,
	// normalized to 2.0/16.
	tg := SlicePoints(WorldExtents(4), 0.1, 4, []orb.Point{{2.0 / 16, 2.0 / 16}})
	data := tg.TileData()
	assert.GreaterOrEqual(t, len(data), 4)
}

func TestSliceShapesSinglePolygonInOneTile(t *testing.T) {
	ring := squareTile(2, 2)
	groups := []RingGroup{{Outer: ring}}

	tg := SliceShapes(groups, 0, true, 4, WorldExtents(4), nil)

	data := tg.TileData()
	require.Len(t, data, 1)
	for tile, g := range data {
		assert.Equal(t, maptile.New(2, 2, 4), tile)
		require.Len(t, g, 1)
		outer := g[0].Outer()
		assert.GreaterOrEqual(t, len(outer), 4)
		assert.Equal(t, outer[0], outer[len(outer)-1])
	}
}

func TestSliceShapesPolylineNeedsAtLeastTwoPoints(t *testing.T) {
	line := Sequence{{2.5, 2.5}, {2.5, 2.6}}
	groups := []RingGroup{{Outer: line}}

	tg := SliceShapes(groups, 0, false, 4, WorldExtents(4), nil)
	data := tg.TileData()
	require.Len(t, data, 1)
	for _, g := range data {
		assert.GreaterOrEqual(t, len(g[0].Outer()), 2)
	}
}

func TestSliceShapesPolygonSpanningManyTilesFillsInterior(t *testing.T) {
	// a polygon covering tiles (0,0)-(3,3) at z2 should report tile (1,1)
	// (fully interior, touching no edge) as filled without boundary data.
	ring := Sequence{
		{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0},
	}
	groups := []RingGroup{{Outer: ring}}

	tg := SliceShapes(groups, 0, true, 2, WorldExtents(2), nil)

	filled := tg.FilledTiles()
	data := tg.TileData()

	foundInterior := false
	for _, ft := range filled {
		if ft.X == 1 && ft.Y == 1 {
			foundInterior = true
		}
		_, hasData := data[ft]
		assert.False(t, hasData, "a filled tile must never also carry boundary data")
	}
	assert.True(t, foundInterior)
}

func TestSliceShapesHoleSubtractsFromFill(t *testing.T) {
	outer := Sequence{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	hole := Sequence{{1.2, 1.2}, {2.8, 1.2}, {2.8, 2.8}, {1.2, 2.8}, {1.2, 1.2}}
	groups := []RingGroup{{Outer: outer, Holes: []Sequence{hole}}}

	tg := SliceShapes(groups, 0, true, 2, WorldExtents(2), nil)
	filled := tg.FilledTiles()

	for _, ft := range filled {
		assert.False(t, ft.X == 2 && ft.Y == 2, "hole tile must not be reported filled")
	}
}

func TestSliceShapesHoleIntoFilledOuterUsesSyntheticFillSquare(t *testing.T) {
	// z=2, world square outer + a hole entirely inside tile (1,1,2): per
	// spec.md §8's concrete scenario, every tile except (1,1,2) is filled,
	// and (1,1,2) carries one group whose outer is the synthetic
	// fill(buffer) square and whose single inner is the clipped hole.
	outer := Sequence{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	hole := Sequence{{1.2, 1.2}, {1.8, 1.2}, {1.8, 1.8}, {1.2, 1.8}, {1.2, 1.2}}
	groups := []RingGroup{{Outer: outer, Holes: []Sequence{hole}}}

	tg := SliceShapes(groups, 0, true, 2, WorldExtents(2), nil)

	filled := tg.FilledTiles()
	require.Len(t, filled, 15)
	for _, ft := range filled {
		assert.False(t, ft.X == 1 && ft.Y == 1, "the hole tile must not also be reported filled")
	}

	data := tg.TileData()
	holeTile := maptile.New(1, 1, 2)
	holeGroups, ok := data[holeTile]
	require.True(t, ok, "tile (1,1,2) must carry the clipped hole boundary")
	require.Len(t, holeGroups, 1)

	assert.Equal(t, fill(0).Points(), holeGroups[0].Outer(), "outer ring must be the synthetic fill square")
	require.Len(t, holeGroups[0].Holes(), 1)
	inner := holeGroups[0].Holes()[0]
	assert.Equal(t, inner[0], inner[len(inner)-1], "clipped hole ring must be closed")
}

func TestSliceShapesAntimeridianLeftOverflowWrapsIntoRightmostColumn(t *testing.T) {
	// z=1, a polyline crossing the world seam on the left: the left
	// overflow must trigger a second world-copy pass (xOffset=+W) that
	// lands its wrapped segment in the rightmost column, alongside the
	// primary pass's untouched leftmost column.
	line := Sequence{{-0.1, 0.5}, {1.1, 0.5}}
	groups := []RingGroup{{Outer: line}}

	tg := SliceShapes(groups, 0, false, 1, WorldExtents(1), nil)

	data := tg.TileData()
	require.Len(t, data, 2)
	_, hasLeftColumn := data[maptile.New(0, 0, 1)]
	_, hasRightColumn := data[maptile.New(1, 0, 1)]
	assert.True(t, hasLeftColumn, "column 0 must receive the segment that never overflowed")
	assert.True(t, hasRightColumn, "column 1 must receive the wrapped left-overflow segment")
}

func TestZoomLevelReturnsConstructorArgument(t *testing.T) {
	tg := SlicePoints(WorldExtents(5), 0, 5, nil)
	assert.Equal(t, 5, tg.ZoomLevel())
}

func TestSliceShapesRespectsBoundsExtents(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}
	extents := BoundsExtents(bound, 4)

	ring := Sequence{{0, 0}, {16, 0}, {16, 16}, {0, 16}, {0, 0}}
	groups := []RingGroup{{Outer: ring}}

	tg := SliceShapes(groups, 0, true, 4, extents, nil)
	for tile := range tg.TileData() {
		assert.True(t, extents.InRange(int(tile.X)))
	}
	for _, tile := range tg.FilledTiles() {
		assert.True(t, extents.InRange(int(tile.X)))
	}
}
