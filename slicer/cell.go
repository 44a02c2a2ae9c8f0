package slicer

import "github.com/paulmach/orb/maptile"

// skippedSegment records a vertical edge-hugging run that sliceY assumed
// landed entirely inside already-filled tiles and therefore skipped
// without materializing boundary points. If a later segment of the same
// ring turns out to produce a real slice in one of those tiles, the
// journal is replayed to backfill the missing boundary.
type skippedSegment struct {
	left   bool
	lo, hi int
}

// sliceY clips one X-stripe piece against every horizontal cell it
// touches, appending the resulting per-tile sequences into
// inProgressShapes. It returns the range of y-tiles that this piece
// fully fills (as seen from both its left and right edges); if it fills
// none, the result is nil or an empty range.
func (t *TiledGeometry) sliceY(stripeSegment *CoordSeq, x int, outer bool, inProgressShapes map[maptile.Tile][]*CoordSeq) *IntRange {
	segment := stripeSegment.Points()
	if len(segment) == 0 {
		return nil
	}
	if x < 0 || x >= t.max {
		return nil
	}

	leftEdge := -t.buffer
	rightEdge := 1 + t.buffer

	var tiles *sortedIntSet
	var rightFilled, leftFilled *IntRange
	var skipped []skippedSegment

	ySlices := make(map[int]*CoordSeq)

	end := len(segment) - 1
	for i := 0; i < end; i++ {
		ax, ay := segment[i][0], segment[i][1]
		bx, by := segment[i+1][0], segment[i+1][1]

		minY := ay
		maxY := ay
		if by < minY {
			minY = by
		}
		if by > maxY {
			maxY = by
		}

		startY := floorInt(minY - t.neighborBuffer)
		endStartY := floorInt(minY + t.neighborBuffer)
		startEndY := floorInt(maxY - t.neighborBuffer)
		endY := floorInt(maxY + t.neighborBuffer)

		startY = max(startY, t.extents.MinY())
		startEndY = min(startEndY, t.extents.MaxY()-1)
		endY = min(endY, t.extents.MaxY()-1)

		onRightEdge := t.area && ax == bx && ax == rightEdge && by > ay
		onLeftEdge := t.area && ax == bx && ax == leftEdge && by < ay

		for y := startY; y <= endY; y++ {
			if t.area && y > endStartY && y < startEndY && (onRightEdge || onLeftEdge) {
				if tiles == nil {
					tiles = newSortedIntSet()
					for existing := range ySlices {
						tiles.Add(existing)
					}
				}
				nextNonEdgeTile, ok := tiles.Ceiling(y)
				if !ok || nextNonEdgeTile > startEndY {
					nextNonEdgeTile = startEndY
				}
				if nextNonEdgeTile > y {
					seg := skippedSegment{left: onLeftEdge, lo: y, hi: nextNonEdgeTile - 1}
					skipped = append(skipped, seg)

					full := NewIntRange()
					full.Add(seg.lo, seg.hi)
					if onRightEdge {
						if rightFilled == nil {
							rightFilled = NewIntRange()
						}
						rightFilled.AddAll(full)
					} else {
						if leftFilled == nil {
							leftFilled = NewIntRange()
						}
						leftFilled.AddAll(full)
					}
					y = nextNonEdgeTile
				}
			}

			k1 := float64(y) - t.buffer
			k2 := float64(y) + 1 + t.buffer

			slice, ok := ySlices[y]
			if !ok {
				slice = NewScalingCoordSeq(0, float64(y), tileScale)
				ySlices[y] = slice
				if tiles != nil {
					tiles.Add(y)
				}

				tileID := maptile.New(uint32(x), uint32(y), maptile.Zoom(t.z))
				toAddTo := inProgressShapes[tileID]
				if t.area && !outer && len(toAddTo) == 0 {
					toAddTo = append(toAddTo, fill(t.buffer))
				}
				toAddTo = append(toAddTo, slice)
				inProgressShapes[tileID] = toAddTo
			}

			if !ok && t.area && len(skipped) > 0 && (leftFilled != nil && leftFilled.Contains(y) || rightFilled != nil && rightFilled.Contains(y)) {
				for _, s := range skipped {
					if y < s.lo || y > s.hi {
						continue
					}
					top := float64(y) - t.buffer
					bottom := float64(y) + 1 + t.buffer
					if s.left {
						slice.AddPoint(leftEdge, bottom)
						slice.AddPoint(leftEdge, top)
					} else {
						slice.AddPoint(rightEdge, top)
						slice.AddPoint(rightEdge, bottom)
					}
				}
			}

			exited := false
			switch {
			case ay < k1:
				if by > k1 {
					intersectY(slice, ax, ay, bx, by, k1)
				}
			case ay > k2:
				if by < k2 {
					intersectY(slice, ax, ay, bx, by, k2)
				}
			default:
				slice.AddPoint(ax, ay)
			}
			if by < k1 && ay >= k1 {
				intersectY(slice, ax, ay, bx, by, k1)
				exited = true
			}
			if by > k2 && ay <= k2 {
				intersectY(slice, ax, ay, bx, by, k2)
				exited = true
			}

			if !t.area && exited {
				delete(ySlices, y)
			}
		}
	}

	// add the last point
	last := len(segment) - 1
	ax, ay := segment[last][0], segment[last][1]
	startY := floorInt(ay - t.neighborBuffer)
	endY := floorInt(ay + t.neighborBuffer)

	for y := startY - 1; y <= endY+1; y++ {
		slice, ok := ySlices[y]
		k1 := float64(y) - t.buffer
		k2 := float64(y) + 1 + t.buffer
		if ok && ay >= k1 && ay <= k2 {
			slice.AddPoint(ax, ay)
		}
	}

	if t.area {
		for _, slice := range ySlices {
			slice.CloseRing()
		}
	}

	if rightFilled != nil {
		return rightFilled.Intersect(leftFilled)
	}
	return nil
}

func intersectY(out *CoordSeq, ax, ay, bx, by, y float64) {
	t := (y - ay) / (by - ay)
	out.AddPoint(ax+(bx-ax)*t, y)
}
