package slicer

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// MinZoom and MaxZoom are the zoom bounds NewBoundsExtents validates
// against, the same range CommonParams enforces for a whole run
// (MIN_MINZOOM/MAX_MAXZOOM).
const (
	MinZoom = 0
	MaxZoom = 14
)

// Extents is the tile-output mask for one zoom level: a pure lookup of
// which tile columns are produced and what the half-open row band is.
// It knows nothing about clipping; it only answers "is this (x,y) inside
// the output area at this zoom?" Implementations must be safe to query
// concurrently and are treated as read-only for the lifetime of a
// TiledGeometry.
type Extents interface {
	// InRange reports whether column x (already wrapped into [0, 2^z)) is
	// part of the output area.
	InRange(x int) bool
	// MinY is the smallest row produced at this zoom, inclusive.
	MinY() int
	// MaxY is one past the largest row produced at this zoom (half-open).
	MaxY() int
}

// worldExtents is the default Extents: every tile at the zoom is in range.
type worldExtents struct {
	max int
}

// WorldExtents returns an Extents covering the entire tile pyramid at
// zoom z, i.e. no bounding restriction at all.
func WorldExtents(z int) Extents {
	return worldExtents{max: 1 << uint(z)}
}

func (w worldExtents) InRange(x int) bool { return x >= 0 && x < w.max }
func (w worldExtents) MinY() int          { return 0 }
func (w worldExtents) MaxY() int          { return w.max }

// boundsExtents restricts output to the tile columns/rows overlapping a
// geographic bounding box, the way a map-building pipeline limits output
// to a region of interest instead of the whole world.
type boundsExtents struct {
	minX, maxX int // inclusive column range
	minY, maxY int // half-open row range
}

// BoundsExtents computes the Extents for zoom z that cover bound (given in
// longitude/latitude), the same computation CommonParams.computeFromWorldBounds
// performs once per zoom level for a whole map-building run.
func BoundsExtents(bound orb.Bound, z int) Extents {
	zoom := maptile.Zoom(z)
	max := 1 << uint(z)

	nw := maptile.At(orb.Point{bound.Left(), bound.Top()}, zoom)
	se := maptile.At(orb.Point{bound.Right(), bound.Bottom()}, zoom)

	minX, maxX := int(nw.X), int(se.X)
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := int(nw.Y), int(se.Y)
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	maxY++ // half-open

	if minX < 0 {
		minX = 0
	}
	if maxX > max-1 {
		maxX = max - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > max {
		maxY = max
	}

	return boundsExtents{minX: minX, maxX: maxX, minY: minY, maxY: maxY}
}

func (b boundsExtents) InRange(x int) bool { return x >= b.minX && x <= b.maxX }
func (b boundsExtents) MinY() int          { return b.minY }
func (b boundsExtents) MaxY() int          { return b.maxY }

// NewBoundsExtents validates a [minzoom, maxzoom] run range the way
// CommonParams's record constructor does (0 <= minzoom <= maxzoom <= 14)
// and computes one BoundsExtents per zoom level in that range, keyed by
// zoom, for a caller that slices the same bound across several zooms in
// a single run.
func NewBoundsExtents(bound orb.Bound, minzoom, maxzoom int) (map[int]Extents, error) {
	if minzoom < MinZoom {
		return nil, fmt.Errorf("slicer: minzoom must be >= %d, was %d", MinZoom, minzoom)
	}
	if maxzoom > MaxZoom {
		return nil, fmt.Errorf("slicer: maxzoom must be <= %d, was %d", MaxZoom, maxzoom)
	}
	if minzoom > maxzoom {
		return nil, fmt.Errorf("slicer: minzoom (%d) cannot be greater than maxzoom (%d)", minzoom, maxzoom)
	}

	extents := make(map[int]Extents, maxzoom-minzoom+1)
	for z := minzoom; z <= maxzoom; z++ {
		extents[z] = BoundsExtents(bound, z)
	}
	return extents, nil
}
