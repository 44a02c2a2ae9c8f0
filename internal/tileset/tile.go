// Package tileset holds the small value types shared by the store and
// CLI layers: a rendered tile's bytes tagged with its coordinate, the
// thread-safe set used to dedupe tiles across layers, and the
// per-layer unit of work handed to the slicer.
package tileset

import (
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// TileSize is the pixel width/height of a rendered tile.
const TileSize = 256

// ZoomMin and ZoomMax are the widest zoom range this package names. A
// Task does not consult them: its zoom range is validated by
// slicer.NewBoundsExtents against slicer.MinZoom/slicer.MaxZoom (0-14).
const (
	ZoomMin = 0
	ZoomMax = 20
)

// Tile pairs a tile coordinate with its encoded content: a gzip-compressed
// JSON dump of the clipped ring groups a slicing run produced for it (or
// the literal `"full"` sentinel for a tile reported only via
// TiledGeometry.FilledTiles), tagged with the TileFormat it was written in.
type Tile struct {
	T maptile.Tile
	C []byte
	F TileFormat
}

// flipY converts a Z/X/Y tile row to the MBTiles/TMS row convention,
// which counts from the bottom instead of the top.
func (tile Tile) flipY() uint32 {
	zpower := math.Pow(2.0, float64(tile.T.Z))
	return uint32(zpower) - 1 - tile.T.Y
}

// Row returns the tile's TMS row, for callers writing into an mbtiles
// "tile_row" column.
func (tile Tile) Row() uint32 { return tile.flipY() }

// Set is a concurrency-safe collection of tiles, used to de-duplicate
// tile coordinates produced by overlapping features before rendering.
type Set struct {
	sync.RWMutex
	M maptile.Set
}

// Layer is one zoom level's worth of slicing work for a single geometry
// collection.
type Layer struct {
	Name       string
	Zoom       int
	Count      int64
	Collection orb.Collection
}

// TileFormat identifies the encoding stored in a tile's content column.
type TileFormat string

// Constants representing TileFormat types.
const (
	GZIP TileFormat = "gzip"
	ZLIB TileFormat = "zlib"
	PNG  TileFormat = "png"
	JPG  TileFormat = "jpg"
	PBF  TileFormat = "pbf"
	WEBP TileFormat = "webp"
)
