package parallel

import "image"

// TileRenderer redraws the invalidated tiles of a canvas in parallel.
//
// Invalidate may be called from any goroutine. Render must not run
// concurrently with itself.
type TileRenderer struct {
	grid  *TileGrid
	dirty *DirtyRegion
	pool  *WorkerPool
}

// NewTileRenderer creates a renderer for bounds with the given number of
// workers (<= 0 selects GOMAXPROCS). Every tile starts invalid.
func NewTileRenderer(bounds image.Rectangle, workers int) *TileRenderer {
	g := NewTileGrid(bounds)
	r := &TileRenderer{
		grid:  g,
		dirty: NewDirtyRegion(g.TilesX(), g.TilesY()),
		pool:  NewWorkerPool(workers),
	}
	r.dirty.MarkAll()
	return r
}

// Grid returns the tile layout.
func (r *TileRenderer) Grid() *TileGrid { return r.grid }

// Workers returns the number of pool workers.
func (r *TileRenderer) Workers() int { return r.pool.Workers() }

// Invalidate marks every tile overlapping rect for redraw.
func (r *TileRenderer) Invalidate(rect image.Rectangle) {
	if tx0, ty0, tx1, ty1, ok := r.grid.Span(rect); ok {
		r.dirty.MarkSpan(tx0, ty0, tx1, ty1)
	}
}

// InvalidateAll marks the whole canvas for redraw.
func (r *TileRenderer) InvalidateAll() { r.dirty.MarkAll() }

// Pending returns the number of tiles awaiting redraw.
func (r *TileRenderer) Pending() int { return r.dirty.Count() }

// Render calls draw once for every invalidated tile, in parallel, and
// returns how many tiles were drawn. draw must only write inside t.Rect.
func (r *TileRenderer) Render(draw func(t Tile)) int {
	coords := r.dirty.Take()
	r.pool.ForEach(len(coords), func(i int) {
		t, _ := r.grid.At(coords[i][0], coords[i][1])
		draw(t)
	})
	return len(coords)
}

// Close stops the worker pool.
func (r *TileRenderer) Close() { r.pool.Close() }
