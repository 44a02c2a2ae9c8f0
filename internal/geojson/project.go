package geojson

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"github.com/atlasdatatech/tileslicer/slicer"
)

// ProjectRingGroups converts one orb.Geometry into the ring-groups the
// slicer's SliceShapes expects at zoom z: every coordinate projected
// from longitude/latitude into fractional world-tile units. Only
// polygonal and line geometries are meaningful here; ProjectPoints
// handles point geometries.
func ProjectRingGroups(g orb.Geometry, z maptile.Zoom) ([]slicer.RingGroup, error) {
	switch g := g.(type) {
	case orb.Polygon:
		return []slicer.RingGroup{polygonToRingGroup(g, z)}, nil
	case orb.MultiPolygon:
		groups := make([]slicer.RingGroup, 0, len(g))
		for _, poly := range g {
			groups = append(groups, polygonToRingGroup(poly, z))
		}
		return groups, nil
	case orb.LineString:
		return []slicer.RingGroup{{Outer: projectSequence(orb.Ring(g), z)}}, nil
	case orb.MultiLineString:
		groups := make([]slicer.RingGroup, 0, len(g))
		for _, ls := range g {
			groups = append(groups, slicer.RingGroup{Outer: projectSequence(orb.Ring(ls), z)})
		}
		return groups, nil
	case orb.Ring:
		return []slicer.RingGroup{{Outer: projectSequence(g, z)}}, nil
	default:
		return nil, fmt.Errorf("geojson: %T is not an area or line geometry", g)
	}
}

// ProjectPoints converts a Point or MultiPoint geometry into the flat
// [0,1] world-normalized coordinate list SlicePoints expects (its
// slicePoint does the ·W scaling itself, unlike ProjectRingGroups'
// output which SliceShapes consumes pre-scaled to [0,W)).
func ProjectPoints(g orb.Geometry, z maptile.Zoom) ([]orb.Point, error) {
	switch g := g.(type) {
	case orb.Point:
		return []orb.Point{projectPointNormalized(g, z)}, nil
	case orb.MultiPoint:
		pts := make([]orb.Point, len(g))
		for i, p := range g {
			pts[i] = projectPointNormalized(p, z)
		}
		return pts, nil
	default:
		return nil, fmt.Errorf("geojson: %T is not a point geometry", g)
	}
}

func polygonToRingGroup(p orb.Polygon, z maptile.Zoom) slicer.RingGroup {
	group := slicer.RingGroup{Outer: projectSequence(p[0], z)}
	if len(p) > 1 {
		group.Holes = make([]slicer.Sequence, 0, len(p)-1)
		for _, hole := range p[1:] {
			group.Holes = append(group.Holes, projectSequence(hole, z))
		}
	}
	return group
}

func projectSequence(ring orb.Ring, z maptile.Zoom) slicer.Sequence {
	seq := make(slicer.Sequence, len(ring))
	for i, p := range ring {
		seq[i] = projectPoint(p, z)
	}
	return seq
}

func projectPoint(p orb.Point, z maptile.Zoom) orb.Point {
	return maptile.Fraction(p, z)
}

// projectPointNormalized is projectPoint divided back down to [0,1]:
// maptile.Fraction already does the lon/lat -> world-tile-unit Mercator
// projection, scaled by 2^z, so dividing out the same factor gives the
// normalized (cx, cy) slicer.SlicePoints expects.
func projectPointNormalized(p orb.Point, z maptile.Zoom) orb.Point {
	frac := maptile.Fraction(p, z)
	factor := float64(uint32(1) << uint(z))
	return orb.Point{frac[0] / factor, frac[1] / factor}
}
