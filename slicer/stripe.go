package slicer

import "math"

// intersectX appends the point where segment (ax,ay)-(bx,by) crosses the
// vertical line X=x, linearly interpolating Y.
func intersectX(out *CoordSeq, ax, ay, bx, by, x float64) {
	t := (x - ax) / (bx - ax)
	out.AddPoint(x, ay+(by-ay)*t)
}

// sliceX clips one coordinate sequence against every vertical stripe it
// touches (plus neighborBuffer on either side), producing possibly
// several disjoint pieces per stripe. It is the X-axis half of the
// Cohen-Sutherland-style clip; sliceY performs the matching Y-axis half.
func (t *TiledGeometry) sliceX(segment Sequence) map[int][]*CoordSeq {
	k1 := -t.buffer
	k2 := 1 + t.buffer

	newGeoms := make(map[int][]*CoordSeq)
	xSlices := make(map[int]*CoordSeq)

	end := len(segment) - 1
	for i := 0; i < end; i++ {
		ax, ay := segment[i][0], segment[i][1]
		bx, by := segment[i+1][0], segment[i+1][1]

		minX := math.Min(ax, bx)
		maxX := math.Max(ax, bx)

		startX := floorInt(minX - t.neighborBuffer)
		endX := floorInt(maxX + t.neighborBuffer)

		for x := startX; x <= endX; x++ {
			axTile := ax - float64(x)
			bxTile := bx - float64(x)

			slice, ok := xSlices[x]
			if !ok {
				slice = NewCoordSeq()
				xSlices[x] = slice
				newGeoms[x] = append(newGeoms[x], slice)
			}

			exited := false
			switch {
			case axTile < k1:
				// ---|-->  | (line enters the clip region from the left)
				if bxTile > k1 {
					intersectX(slice, axTile, ay, bxTile, by, k1)
				}
			case axTile > k2:
				// |  <--|--- (line enters the clip region from the right)
				if bxTile < k2 {
					intersectX(slice, axTile, ay, bxTile, by, k2)
				}
			default:
				slice.AddPoint(axTile, ay)
			}
			if bxTile < k1 && axTile >= k1 {
				// <--|---  | or <--|-----|--- (line exits on the left)
				intersectX(slice, axTile, ay, bxTile, by, k1)
				exited = true
			}
			if bxTile > k2 && axTile <= k2 {
				// |  ---|--> or ---|-----|--> (line exits on the right)
				intersectX(slice, axTile, ay, bxTile, by, k2)
				exited = true
			}

			if !t.area && exited {
				delete(xSlices, x)
			}
		}
	}

	// add the last point
	last := len(segment) - 1
	ax, ay := segment[last][0], segment[last][1]
	startX := floorInt(ax - t.neighborBuffer)
	endX := floorInt(ax + t.neighborBuffer)

	for x := startX - 1; x <= endX+1; x++ {
		slice, ok := xSlices[x]
		axTile := ax - float64(x)
		if ok && axTile >= k1 && axTile <= k2 {
			slice.AddPoint(axTile, ay)
		}
	}

	// close the polygons if endpoints are not the same after clipping
	if t.area {
		for _, slice := range xSlices {
			slice.CloseRing()
		}
	}

	for x := range newGeoms {
		wrapped := wrapInt(x, t.max)
		if !t.extents.InRange(wrapped) {
			delete(newGeoms, x)
		}
	}
	return newGeoms
}
