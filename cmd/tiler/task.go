package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/teris-io/shortid"
	pb "gopkg.in/cheggaaa/pb.v1"

	geojsonio "github.com/atlasdatatech/tileslicer/internal/geojson"
	"github.com/atlasdatatech/tileslicer/internal/store"
	"github.com/atlasdatatech/tileslicer/internal/tileset"
	"github.com/atlasdatatech/tileslicer/slicer"
)

// Task drives one run of the slicer across every configured layer and
// zoom level, fanning each (layer, zoom) pair out across a bounded
// worker pool and funneling the resulting tiles into a single mbtiles
// store, the same shape atlasdatatech-tiler's download Task used for
// its semaphore-channel tile fetcher pool, with the remote HTTP fetch
// replaced by a local slicing call.
type Task struct {
	ID          string
	layers      []cfgLayer
	store       *store.Store
	workerCount int
	workers     chan struct{}
	savingPipe  chan tileset.Tile
	wg          sync.WaitGroup
	jobs        sync.WaitGroup

	bound   orb.Bound
	extents map[int]slicer.Extents

	// seen de-duplicates tile coordinates produced by overlapping
	// features (within a layer/zoom, or across layers sharing a zoom):
	// merged and filled are only ever touched while holding its lock.
	seen   tileset.Set
	merged map[maptile.Tile][]slicer.Group
	filled map[maptile.Tile]bool

	errMu sync.Mutex
	err   error
}

// NewTask loads every configured layer's GeoJSON input, validates and
// computes the per-zoom output extents for the run's overall bound, and
// opens the mbtiles output store.
func NewTask(layers []cfgLayer) (*Task, error) {
	id, err := shortid.Generate()
	if err != nil {
		return nil, fmt.Errorf("task: generate id: %w", err)
	}

	outdir := viper.GetString("output.directory")
	outFile := fmt.Sprintf("%s/%s.mbtiles", outdir, id)

	var bound orb.Bound
	minZoom, maxZoom := layers[0].Min, layers[0].Max
	first := true
	for i := range layers {
		if layers[i].Min < minZoom {
			minZoom = layers[i].Min
		}
		if layers[i].Max > maxZoom {
			maxZoom = layers[i].Max
		}

		collection, err := geojsonio.LoadCollection(layers[i].Geojson)
		if err != nil {
			return nil, err
		}
		for _, g := range collection {
			if first {
				bound = g.Bound()
				first = false
			} else {
				bound = bound.Union(g.Bound())
			}
		}
	}

	extents, err := slicer.NewBoundsExtents(bound, minZoom, maxZoom)
	if err != nil {
		return nil, fmt.Errorf("task: %w", err)
	}

	meta := store.Meta{
		Name:        viper.GetString("app.title"),
		Description: "sliced by tileslicer",
		Attribution: viper.GetString("app.title"),
		Format:      "geojson",
		Schema:      "xyz",
		Bounds:      fmt.Sprintf("%f,%f,%f,%f", bound.Left(), bound.Bottom(), bound.Right(), bound.Top()),
		Center:      fmt.Sprintf("%f,%f", bound.Center().X(), bound.Center().Y()),
		MinZoom:     minZoom,
		MaxZoom:     maxZoom,
	}

	st, err := store.Open(outFile, meta)
	if err != nil {
		return nil, err
	}

	task := &Task{
		ID:          id,
		layers:      layers,
		store:       st,
		workerCount: viper.GetInt("task.workers"),
		bound:       bound,
		extents:     extents,
		seen:        tileset.Set{M: make(maptile.Set)},
		merged:      make(map[maptile.Tile][]slicer.Group),
		filled:      make(map[maptile.Tile]bool),
	}
	task.workers = make(chan struct{}, task.workerCount)
	task.savingPipe = make(chan tileset.Tile, task.workerCount)
	return task, nil
}

// Run slices every configured (layer, zoom) pair, bounded by
// task.workerCount workers, merges overlapping results, and writes the
// deduplicated tiles to the mbtiles store.
func (task *Task) Run() error {
	start := time.Now()
	defer task.store.Close()

	go task.savePipe()

	collections := make([]orb.Collection, len(task.layers))
	for i, cfg := range task.layers {
		collection, err := geojsonio.LoadCollection(cfg.Geojson)
		if err != nil {
			close(task.savingPipe)
			task.wg.Wait()
			return err
		}
		collections[i] = collection
	}

	for i, cfg := range task.layers {
		collection := collections[i]
		for z := cfg.Min; z <= cfg.Max; z++ {
			cfg, z := cfg, z
			layer := tileset.Layer{Name: cfg.Name, Zoom: z, Count: int64(len(collection)), Collection: collection}

			task.jobs.Add(1)
			task.workers <- struct{}{}
			go func() {
				defer task.jobs.Done()
				defer func() { <-task.workers }()
				if err := task.sliceLayerZoom(cfg, layer); err != nil {
					task.recordErr(err)
				}
			}()
		}
	}

	task.jobs.Wait()
	task.flushResults()

	close(task.savingPipe)
	task.wg.Wait()

	if err := task.firstErr(); err != nil {
		return err
	}

	if err := task.store.Optimize(); err != nil {
		return err
	}
	log.Printf("task %s finished in %.3fs", task.ID, time.Since(start).Seconds())
	return nil
}

// sliceLayerZoom is one worker-pool unit of work: every geometry in a
// layer, sliced at a single fixed zoom, merged into the task's shared
// tile accumulator.
func (task *Task) sliceLayerZoom(cfg cfgLayer, layer tileset.Layer) error {
	buffer := viper.GetFloat64("slicer.buffer")
	extents := task.extents[layer.Zoom]
	logger := log.WithField("layer", layer.Name)

	bar := pb.StartNew(int(layer.Count)).Prefix(fmt.Sprintf("%s z%d : ", layer.Name, layer.Zoom))
	defer bar.FinishPrint(fmt.Sprintf("%s z%d finished ~", layer.Name, layer.Zoom))

	for _, g := range layer.Collection {
		bar.Increment()

		switch g := g.(type) {
		case orb.Point, orb.MultiPoint:
			pts, err := geojsonio.ProjectPoints(g, maptile.Zoom(layer.Zoom))
			if err != nil {
				return err
			}
			tiled := slicer.SlicePoints(extents, buffer, layer.Zoom, pts)
			task.mergeResults(tiled)
		default:
			groups, err := geojsonio.ProjectRingGroups(g, maptile.Zoom(layer.Zoom))
			if err != nil {
				return err
			}
			tiled := slicer.SliceShapes(groups, buffer, cfg.Area, layer.Zoom, extents, logger)
			task.mergeResults(tiled)
		}
	}
	return nil
}

// mergeResults folds one geometry's clipped output into the task's
// shared accumulator, using seen to recognize a tile coordinate another
// geometry (in this layer or a concurrently-running one) already
// touched instead of enqueueing a second, colliding row for it.
func (task *Task) mergeResults(tiled *slicer.TiledGeometry) {
	task.seen.Lock()
	defer task.seen.Unlock()

	for tileID, groups := range tiled.TileData() {
		task.seen.M[tileID] = true
		task.merged[tileID] = append(task.merged[tileID], groups...)
	}
	for _, tileID := range tiled.FilledTiles() {
		task.seen.M[tileID] = true
		task.filled[tileID] = true
	}
}

// flushResults drains the accumulator, built once every slicing worker
// has finished, into the saving pipe: one row per distinct tile
// coordinate, gzip-compressed, explicit content taking priority over a
// "fully covered" marker for any tile that has both.
func (task *Task) flushResults() {
	task.seen.Lock()
	defer task.seen.Unlock()

	for tileID, groups := range task.merged {
		task.enqueue(tileID, groups)
	}
	for tileID := range task.filled {
		if _, ok := task.merged[tileID]; ok {
			continue
		}
		task.enqueue(tileID, nil)
	}
}

// enqueue gzip-compresses groups (or the "full" sentinel, if groups is
// nil) and hands the resulting tile to the saving pipe.
func (task *Task) enqueue(tileID maptile.Tile, groups []slicer.Group) {
	payload := []byte(`"full"`)
	if groups != nil {
		data, err := json.Marshal(groups)
		if err != nil {
			log.Errorf("marshal tile %v contents: %s", tileID, err)
			return
		}
		payload = data
	}

	gz, err := gzipBytes(payload)
	if err != nil {
		log.Errorf("gzip tile %v contents: %s", tileID, err)
		return
	}

	task.wg.Add(1)
	task.savingPipe <- tileset.Tile{T: tileID, C: gz, F: tileset.GZIP}
}

// gzipBytes compresses data the same way atlasdatatech-tiler's
// tileFetcher compressed a fetched tile body before handing it to the
// saving pipe.
func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (task *Task) recordErr(err error) {
	task.errMu.Lock()
	defer task.errMu.Unlock()
	if task.err == nil {
		task.err = err
	}
	log.Errorf("task %s: %s", task.ID, err)
}

func (task *Task) firstErr() error {
	task.errMu.Lock()
	defer task.errMu.Unlock()
	return task.err
}

func (task *Task) savePipe() {
	for tile := range task.savingPipe {
		if err := task.store.Save(tile); err != nil {
			log.Errorf("save %v tile to mbtiles db error ~ %s", tile.T, err)
		}
		task.wg.Done()
	}
}
