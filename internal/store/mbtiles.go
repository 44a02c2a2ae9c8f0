// Package store writes sliced tiles out to an mbtiles sqlite database,
// the same schema and pragmas atlasdatatech-tiler's task.go set up for
// its download pipeline.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/atlasdatatech/tileslicer/internal/tileset"
)

// MBTileVersion is the mbtiles spec version this store writes.
const MBTileVersion = "1.2"

// Meta describes the tileset-wide metadata row set written once when
// the store is created.
type Meta struct {
	Name        string
	Description string
	Attribution string
	Format      string
	Schema      string // "xyz" or "tms"
	Bounds      string
	Center      string
	MinZoom     int
	MaxZoom     int
}

// Store is an open mbtiles database ready to receive tiles.
type Store struct {
	db            *sql.DB
	path          string
	formatWritten bool
}

// Open creates (overwriting any existing file) an mbtiles database at
// path, writes its metadata table, and returns a Store ready for Save.
func Open(path string, meta Meta) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("store: create output dir: %w", err)
	}
	os.Remove(path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	if err := optimizeConnection(db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec("create table if not exists tiles (zoom_level integer, tile_column integer, tile_row integer, tile_data blob);"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("create table if not exists metadata (name text, value text);"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("create unique index if not exists name on metadata (name);"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("create unique index if not exists tile_index on tiles(zoom_level, tile_column, tile_row);"); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, path: path}
	if err := s.writeMeta(meta); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) writeMeta(m Meta) error {
	return s.writeMetaItems(map[string]string{
		"name":        m.Name,
		"description": m.Description,
		"attribution": m.Attribution,
		"format":      m.Format,
		"type":        m.Schema,
		"pixel_scale": strconv.Itoa(tileset.TileSize),
		"version":     MBTileVersion,
		"bounds":      m.Bounds,
		"center":      m.Center,
		"minzoom":     strconv.Itoa(m.MinZoom),
		"maxzoom":     strconv.Itoa(m.MaxZoom),
	})
}

func (s *Store) writeMetaItems(items map[string]string) error {
	for name, value := range items {
		if _, err := s.db.Exec("insert into metadata (name, value) values (?, ?)", name, value); err != nil {
			return fmt.Errorf("store: write metadata %s: %w", name, err)
		}
	}
	return nil
}

// Save inserts one rendered tile. The first call tagged with a
// tileset.TileFormat records it in the metadata table as "tile_format",
// so a reader knows to gunzip tile_data before decoding it.
func (s *Store) Save(tile tileset.Tile) error {
	if !s.formatWritten && tile.F != "" {
		if err := s.writeMetaItems(map[string]string{"tile_format": string(tile.F)}); err != nil {
			return err
		}
		s.formatWritten = true
	}

	_, err := s.db.Exec(
		"insert into tiles (zoom_level, tile_column, tile_row, tile_data) values (?, ?, ?, ?);",
		tile.T.Z, tile.T.X, tile.Row(), tile.C,
	)
	if err != nil {
		return fmt.Errorf("store: save tile %v: %w", tile.T, err)
	}
	return nil
}

// Optimize runs the post-load ANALYZE/VACUUM pass, the same cleanup
// utils.go's optimizeDatabase ran before handing an mbtiles file off.
func (s *Store) Optimize() error {
	if _, err := s.db.Exec("ANALYZE;"); err != nil {
		return err
	}
	if _, err := s.db.Exec("VACUUM;"); err != nil {
		return err
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func optimizeConnection(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA synchronous=0"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA locking_mode=EXCLUSIVE"); err != nil {
		return err
	}
	if _, err := db.Exec("PRAGMA journal_mode=DELETE"); err != nil {
		return err
	}
	return nil
}
