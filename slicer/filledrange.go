package slicer

// filledLedger accumulates, per stripe column, the set of y-tiles fully
// covered by an input polygon's interior. Outer rings add to it, inner
// rings (holes) subtract from it. It is never allocated until the first
// insertion, since most geometries never fill a whole tile.
type filledLedger struct {
	ranges map[int]*IntRange
}

func newFilledLedger() *filledLedger {
	return &filledLedger{}
}

// Add unions yRange into column x's range.
func (f *filledLedger) Add(x int, yRange *IntRange) {
	if yRange == nil {
		return
	}
	if f.ranges == nil {
		f.ranges = make(map[int]*IntRange)
	}
	existing, ok := f.ranges[x]
	if !ok {
		f.ranges[x] = yRange
		return
	}
	existing.AddAll(yRange)
}

// Remove subtracts yRange from column x's range, if that column has ever
// had anything added to it.
func (f *filledLedger) Remove(x int, yRange *IntRange) {
	if yRange == nil {
		return
	}
	if f.ranges == nil {
		return
	}
	if existing, ok := f.ranges[x]; ok {
		existing.RemoveAll(yRange)
	}
}
