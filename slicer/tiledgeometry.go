package slicer

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

const (
	// neighborBufferEps widens the neighbor-stripe scan by a hair more
	// than floating point error could ever introduce, so that a vertex
	// sitting exactly on a tile boundary is never missed.
	neighborBufferEps = 0.1 / 4096

	tileScale    = 256.0
	fillExtraPad = 1.0 / 4096
)

// RingGroup is one input ring-set: an outer ring plus zero or more holes,
// all already projected into world tile coordinates at the target zoom.
type RingGroup struct {
	Outer Sequence
	Holes []Sequence
}

func (g RingGroup) segments() []Sequence {
	out := make([]Sequence, 0, 1+len(g.Holes))
	out = append(out, g.Outer)
	out = append(out, g.Holes...)
	return out
}

// Group is one clipped ring-set landing in a single tile. Unlike
// RingGroup, the first ring is not guaranteed to be the outer ring in
// every case: a single input outer ring can fracture into several
// disjoint pieces within one tile, each appended as its own entry before
// any holes are interleaved in. Outer and Holes interpret the slice
// using the same "first entry wins" convention the clipper produces.
type Group struct {
	Rings []Sequence
}

// Outer returns the group's first ring, conventionally the outer (or
// outer-fragment) ring.
func (g Group) Outer() Sequence {
	if len(g.Rings) == 0 {
		return nil
	}
	return g.Rings[0]
}

// Holes returns every ring after the first.
func (g Group) Holes() []Sequence {
	if len(g.Rings) <= 1 {
		return nil
	}
	return g.Rings[1:]
}

type direction int

const (
	dirRight direction = iota
	dirLeft
)

// TiledGeometry holds the per-tile results of clipping one input geometry
// (a single point sequence, or a set of polygon ring-groups) against
// every tile it touches at a fixed zoom level.
type TiledGeometry struct {
	extents        Extents
	buffer         float64
	neighborBuffer float64
	z              int
	area           bool
	max            int
	tileContents   map[maptile.Tile][]Group
	filled         *filledLedger
}

// SlicePoints clips a multipoint geometry into per-tile point groups. A
// point never spans more than one tile, so no X/Y stripe clipping is
// needed: each coordinate is assigned directly to the tile that
// contains it, replicated into neighboring tiles only by buffer overlap.
// Unlike SliceShapes's groups, coords are normalised world coordinates
// in [0,1] (cx, cy), not pre-scaled to [0,W) — slicePoint does the
// ·W scaling itself.
func SlicePoints(extents Extents, buffer float64, z int, coords []orb.Point) *TiledGeometry {
	t := &TiledGeometry{
		extents:        extents,
		buffer:         buffer,
		neighborBuffer: buffer + neighborBufferEps,
		z:              z,
		area:           false,
		max:            1 << uint(z),
		tileContents:   make(map[maptile.Tile][]Group),
	}
	for _, c := range coords {
		t.slicePoint(c)
	}
	return t
}

func (t *TiledGeometry) slicePoint(coord orb.Point) {
	worldX, worldY := coord[0]*float64(t.max), coord[1]*float64(t.max)

	minX := floorInt(worldX - t.neighborBuffer)
	maxX := floorInt(worldX + t.neighborBuffer)
	minY := max(t.extents.MinY(), floorInt(worldY-t.neighborBuffer))
	maxY := min(t.extents.MaxY()-1, floorInt(worldY+t.neighborBuffer))

	for x := minX; x <= maxX; x++ {
		wrapped := wrapInt(x, t.max)
		if !t.extents.InRange(wrapped) {
			continue
		}
		for y := minY; y <= maxY; y++ {
			tileID := maptile.New(uint32(wrapped), uint32(y), maptile.Zoom(t.z))
			groups := t.tileContents[tileID]
			if len(groups) == 0 {
				groups = []Group{{Rings: []Sequence{nil}}}
			}
			px := worldX - float64(x)
			py := worldY - float64(y)
			groups[0].Rings[0] = append(groups[0].Rings[0], orb.Point{px, py})
			t.tileContents[tileID] = groups
		}
	}
}

// SliceShapes clips a set of polygon ring-groups (or, with area=false, a
// set of line strings where each RingGroup.Outer is one line and Holes is
// unused) against every tile they touch, including up to two extra
// passes offset by a full world width to handle geometry that crosses
// the antimeridian.
func SliceShapes(groups []RingGroup, buffer float64, area bool, z int, extents Extents, logger Logger) *TiledGeometry {
	if logger == nil {
		logger = noopLogger{}
	}
	t := &TiledGeometry{
		extents:        extents,
		buffer:         buffer,
		neighborBuffer: buffer + neighborBufferEps,
		z:              z,
		area:           area,
		max:            1 << uint(z),
		tileContents:   make(map[maptile.Tile][]Group),
	}
	if area {
		t.filled = newFilledLedger()
	}

	overflow := t.sliceWorldCopy(groups, 0, logger)
	if overflow[dirRight] {
		t.sliceWorldCopy(groups, -t.max, logger)
	}
	if overflow[dirLeft] {
		t.sliceWorldCopy(groups, t.max, logger)
	}
	return t
}

func (t *TiledGeometry) sliceWorldCopy(groups []RingGroup, xOffset int, logger Logger) map[direction]bool {
	overflow := make(map[direction]bool, 2)

	for _, group := range groups {
		inProgressShapes := make(map[maptile.Tile][]*CoordSeq)
		for i, seg := range group.segments() {
			outer := i == 0
			if xOffset != 0 {
				seg = offsetSequence(seg, xOffset)
			}

			xSlices := t.sliceX(seg)
			if t.z >= 6 && len(xSlices) >= (1<<uint(t.z))-1 {
				logger.Warnf("shape may be too complex for z%d: %d stripes", t.z, len(xSlices))
			}

			for x, pieces := range xSlices {
				if x < 0 {
					overflow[dirLeft] = true
				}
				if x >= t.max {
					overflow[dirRight] = true
				}
				for _, piece := range pieces {
					filledRange := t.sliceY(piece, x, outer, inProgressShapes)
					if filledRange == nil || filledRange.IsEmpty() {
						continue
					}
					if outer {
						t.filled.Add(x, filledRange)
					} else {
						t.filled.Remove(x, filledRange)
					}
				}
			}
		}
		t.addShapeToResults(inProgressShapes)
	}

	return overflow
}

func offsetSequence(seq Sequence, xOffset int) Sequence {
	out := make(Sequence, len(seq))
	for i, p := range seq {
		out[i] = orb.Point{p[0] + float64(xOffset), p[1]}
	}
	return out
}

const minPointsForLine = 2

func (t *TiledGeometry) addShapeToResults(inProgressShapes map[maptile.Tile][]*CoordSeq) {
	for tileID, slices := range inProgressShapes {
		var rings []Sequence
		for i, slice := range slices {
			pts := slice.Points()
			if t.area {
				if len(pts) < 4 {
					if i == 0 {
						// the outer (or outer-fragment) ring never closed into a
						// real polygon, so nothing here belongs in this tile
						rings = nil
						break
					}
					continue
				}
			} else if len(pts) < minPointsForLine {
				continue
			}
			rings = append(rings, pts)
		}
		if len(rings) == 0 {
			continue
		}
		t.tileContents[tileID] = append(t.tileContents[tileID], Group{Rings: rings})
	}
}

// fill returns a closed ring covering an entire tile, used as the
// synthetic outer ring inserted when a hole survives into a tile whose
// real outer ring never touched it.
func fill(buffer float64) *CoordSeq {
	buffer += fillExtraPad
	minV := -tileScale * buffer
	maxV := tileScale - minV

	seq := NewCoordSeq()
	seq.AddPoint(minV, minV)
	seq.AddPoint(maxV, minV)
	seq.AddPoint(maxV, maxV)
	seq.AddPoint(minV, maxV)
	seq.AddPoint(minV, minV)
	return seq
}

// TileData returns every tile this geometry produced explicit boundary
// data for, mapped to its clipped ring-groups.
func (t *TiledGeometry) TileData() map[maptile.Tile][]Group {
	return t.tileContents
}

// FilledTiles returns every tile that this geometry's interior fully
// covers but for which no boundary data was recorded (so callers must
// synthesize a full-tile fill themselves).
func (t *TiledGeometry) FilledTiles() []maptile.Tile {
	if t.filled == nil || t.filled.ranges == nil {
		return nil
	}
	var result []maptile.Tile
	for x, yRange := range t.filled.ranges {
		yRange.ForEach(func(y int) {
			tileID := maptile.New(uint32(wrapInt(x, t.max)), uint32(y), maptile.Zoom(t.z))
			if _, ok := t.tileContents[tileID]; ok {
				return
			}
			result = append(result, tileID)
		})
	}
	return result
}

// ZoomLevel returns the zoom level this geometry was sliced at.
func (t *TiledGeometry) ZoomLevel() int {
	return t.z
}
