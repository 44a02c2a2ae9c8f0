package slicer

import "math"

// wrapInt folds v into [0, max) the way a tile column wraps around the
// antimeridian.
func wrapInt(v, max int) int {
	v %= max
	if v < 0 {
		v += max
	}
	return v
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}
