// Package geojson reads GeoJSON input files into orb geometries, the
// same light wrapping atlasdatatech-tiler's utils.go did for its
// download pipeline, adapted to return errors instead of exiting the
// process so callers can decide how to react to a bad input file.
package geojson

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadFeature reads a single feature from path. The file may contain a
// bare Feature, a FeatureCollection with exactly one feature, or a bare
// Geometry.
func LoadFeature(path string) (*geojson.Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if f, err := geojson.UnmarshalFeature(data); err == nil {
		return f, nil
	}

	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		if len(fc.Features) != 1 {
			return nil, fmt.Errorf("%s: expected exactly 1 feature, got %d", path, len(fc.Features))
		}
		return fc.Features[0], nil
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return geojson.NewFeature(g.Geometry()), nil
}

// LoadFeatureCollection reads a FeatureCollection from path, dropping
// any feature whose "name" property is "original".
func LoadFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}

	count := 0
	for i := range fc.Features {
		if fc.Features[i].Properties["name"] != "original" {
			fc.Features[count] = fc.Features[i]
			count++
		}
	}
	fc.Features = fc.Features[:count]

	return fc, nil
}

// LoadCollection reads every feature's geometry from path into a single
// orb.Collection, the shape a Layer is built from.
func LoadCollection(path string) (orb.Collection, error) {
	fc, err := LoadFeatureCollection(path)
	if err != nil {
		return nil, err
	}

	var collection orb.Collection
	for _, f := range fc.Features {
		collection = append(collection, f.Geometry)
	}
	return collection, nil
}
