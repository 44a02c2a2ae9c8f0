package store

import (
	"testing"

	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/require"

	"github.com/atlasdatatech/tileslicer/internal/tileset"
)

func TestSaveWritesTileAndFormatMetadata(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir+"/test.mbtiles", Meta{Name: "test", MinZoom: 0, MaxZoom: 4})
	require.NoError(t, err)
	defer s.Close()

	tile := tileset.Tile{T: maptile.New(1, 1, 4), C: []byte("gzipped"), F: tileset.GZIP}
	require.NoError(t, s.Save(tile))

	var data []byte
	row := s.db.QueryRow("select tile_data from tiles where zoom_level=? and tile_column=? and tile_row=?", tile.T.Z, tile.T.X, tile.Row())
	require.NoError(t, row.Scan(&data))
	require.Equal(t, []byte("gzipped"), data)

	var format string
	row = s.db.QueryRow("select value from metadata where name='tile_format'")
	require.NoError(t, row.Scan(&format))
	require.Equal(t, "gzip", format)
}

func TestSaveRejectsDuplicateTileCoordinate(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir+"/test.mbtiles", Meta{Name: "test"})
	require.NoError(t, err)
	defer s.Close()

	tile := tileset.Tile{T: maptile.New(2, 2, 4), C: []byte("a"), F: tileset.GZIP}
	require.NoError(t, s.Save(tile))
	require.Error(t, s.Save(tile))
}
