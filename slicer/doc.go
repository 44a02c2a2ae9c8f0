// Package slicer cuts a single input geometry into per-tile pieces at one
// fixed zoom level across a global tile pyramid.
//
// It is a floating-point stripe clipper, not a general-purpose geometry
// library: it produces clipped coordinate sequences per destination tile,
// detects fully-filled tiles covered by a polygon's interior without
// materializing their boundary, wraps geometries across the antimeridian,
// and preserves polygon ring nesting through clipping.
//
// The algorithm is adapted from the stripe clipping technique in
// mapbox/geojson-vt, generalized to eagerly produce every tile a geometry
// touches at a zoom level instead of one tile at a time on demand.
package slicer
