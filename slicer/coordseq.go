package slicer

import "github.com/paulmach/orb"

// Sequence is a finalized, ordered list of 2-D points: a clipped polygon
// ring or polyline handed out to a caller via TileData. Polygon rings are
// closed (first point equals last).
type Sequence []orb.Point

// CoordSeq is a mutable coordinate sequence under construction during
// stripe/cell clipping. Every appended point is translated by (-ox, -oy)
// and scaled, so a cell clipper can accumulate tile-local pixel
// coordinates directly from world coordinates as points arrive instead of
// transforming the whole sequence after the fact.
type CoordSeq struct {
	points []orb.Point
	ox, oy float64
	scale  float64
}

// NewCoordSeq returns an empty sequence with no translation or scaling.
func NewCoordSeq() *CoordSeq {
	return &CoordSeq{scale: 1}
}

// NewScalingCoordSeq returns an empty sequence that stores every appended
// point as ((x-ox)*scale, (y-oy)*scale).
func NewScalingCoordSeq(ox, oy, scale float64) *CoordSeq {
	return &CoordSeq{ox: ox, oy: oy, scale: scale}
}

// AddPoint appends a point in the sequence's input coordinate space.
func (s *CoordSeq) AddPoint(x, y float64) {
	s.points = append(s.points, orb.Point{(x - s.ox) * s.scale, (y - s.oy) * s.scale})
}

// CloseRing re-appends the first point if it differs from the last,
// guaranteeing the sequence describes a closed ring. A no-op on an empty
// or single-point sequence.
func (s *CoordSeq) CloseRing() {
	if len(s.points) < 2 {
		return
	}
	first, last := s.points[0], s.points[len(s.points)-1]
	if first != last {
		s.points = append(s.points, first)
	}
}

// Len returns the number of points currently in the sequence.
func (s *CoordSeq) Len() int {
	return len(s.points)
}

// Points returns the accumulated points. The caller must not mutate the
// returned slice's backing array if the CoordSeq is still being built.
func (s *CoordSeq) Points() Sequence {
	return Sequence(s.points)
}
