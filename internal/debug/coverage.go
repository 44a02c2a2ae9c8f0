// Package debug exports ad-hoc spatial QA data: the centers of every
// tile a slicing run touched, as a spatialite table queryable with real
// GIS tooling. Adapted from atlasdatatech-tiler's spatialite.go, which
// used the same go-spatialite/wkb round trip to smoke-test the driver.
// WriteCoverage is a library function; the tiler CLI does not call it.
package debug

import (
	"database/sql"
	"fmt"

	"github.com/paulmach/orb/maptile"
	_ "github.com/shaxbee/go-spatialite"
	"github.com/shaxbee/go-spatialite/wkb"
)

// WriteCoverage opens (or creates) a spatialite database at path and
// inserts one point per tile, at the tile's center, tagged with its
// Z/X/Y. It is meant for visually sanity-checking slicer output in a
// desktop GIS client, not for production pipelines.
func WriteCoverage(path string, tiles []maptile.Tile) error {
	db, err := sql.Open("spatialite", path)
	if err != nil {
		return fmt.Errorf("debug: open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec("SELECT InitSpatialMetadata()"); err != nil {
		return fmt.Errorf("debug: init spatial metadata: %w", err)
	}

	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS coverage(z INTEGER, x INTEGER, y INTEGER)"); err != nil {
		return fmt.Errorf("debug: create coverage table: %w", err)
	}
	if _, err := db.Exec("SELECT AddGeometryColumn('coverage', 'center', 4326, 'POINT')"); err != nil {
		return fmt.Errorf("debug: add geometry column: %w", err)
	}

	stmt, err := db.Prepare("INSERT INTO coverage(z, x, y, center) VALUES (?, ?, ?, ST_PointFromWKB(?, 4326))")
	if err != nil {
		return fmt.Errorf("debug: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tiles {
		center := t.Center()
		p := wkb.Point{X: center.X(), Y: center.Y()}
		if _, err := stmt.Exec(t.Z, t.X, t.Y, p); err != nil {
			return fmt.Errorf("debug: insert tile %v: %w", t, err)
		}
	}
	return nil
}
