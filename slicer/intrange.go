package slicer

import "sort"

// IntRange is a set of non-overlapping, closed (inclusive on both ends)
// integer intervals, used to track y-tile ranges that a polygon's outer
// ring fills or an inner ring un-fills within one stripe column.
//
// There is no general-purpose sorted-interval-set library anywhere in
// this module's dependency pack, so this is implemented directly on top
// of a sorted slice of [lo,hi] pairs kept merged after every mutation.
type IntRange struct {
	intervals [][2]int
}

// NewIntRange returns an empty range.
func NewIntRange() *IntRange {
	return &IntRange{}
}

// Add unions the inclusive interval [lo,hi] into the range.
func (r *IntRange) Add(lo, hi int) {
	if lo > hi {
		return
	}
	r.intervals = append(r.intervals, [2]int{lo, hi})
	r.normalize()
}

// AddAll unions every interval of other into r.
func (r *IntRange) AddAll(other *IntRange) {
	if other == nil {
		return
	}
	r.intervals = append(r.intervals, other.intervals...)
	r.normalize()
}

// RemoveAll subtracts every interval of other from r.
func (r *IntRange) RemoveAll(other *IntRange) {
	if other == nil || len(r.intervals) == 0 {
		return
	}
	for _, cut := range other.intervals {
		r.subtract(cut[0], cut[1])
	}
}

// Intersect returns a new range holding the intersection of r and other.
func (r *IntRange) Intersect(other *IntRange) *IntRange {
	result := NewIntRange()
	if other == nil {
		return result
	}
	i, j := 0, 0
	for i < len(r.intervals) && j < len(other.intervals) {
		a, b := r.intervals[i], other.intervals[j]
		lo := max(a[0], b[0])
		hi := min(a[1], b[1])
		if lo <= hi {
			result.intervals = append(result.intervals, [2]int{lo, hi})
		}
		if a[1] < b[1] {
			i++
		} else {
			j++
		}
	}
	return result
}

// Contains reports whether v falls inside any interval of the range.
func (r *IntRange) Contains(v int) bool {
	for _, iv := range r.intervals {
		if v >= iv[0] && v <= iv[1] {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the range holds no values.
func (r *IntRange) IsEmpty() bool {
	return len(r.intervals) == 0
}

// ForEach calls fn once for every value in the range, in increasing order.
func (r *IntRange) ForEach(fn func(v int)) {
	for _, iv := range r.intervals {
		for v := iv[0]; v <= iv[1]; v++ {
			fn(v)
		}
	}
}

func (r *IntRange) normalize() {
	sort.Slice(r.intervals, func(i, j int) bool {
		return r.intervals[i][0] < r.intervals[j][0]
	})
	merged := r.intervals[:0]
	for _, iv := range r.intervals {
		if n := len(merged); n > 0 && iv[0] <= merged[n-1][1]+1 {
			if iv[1] > merged[n-1][1] {
				merged[n-1][1] = iv[1]
			}
		} else {
			merged = append(merged, iv)
		}
	}
	r.intervals = merged
}

func (r *IntRange) subtract(lo, hi int) {
	var out [][2]int
	for _, iv := range r.intervals {
		if hi < iv[0] || lo > iv[1] {
			out = append(out, iv)
			continue
		}
		if lo > iv[0] {
			out = append(out, [2]int{iv[0], lo - 1})
		}
		if hi < iv[1] {
			out = append(out, [2]int{hi + 1, iv[1]})
		}
	}
	r.intervals = out
}
