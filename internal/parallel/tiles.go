// Package parallel renders an image as independent square tiles on a
// worker pool, redrawing only the tiles that were invalidated since the
// last pass.
//
// A tile is a rectangle of the destination image. Workers draw into
// disjoint rectangles of one shared image, so no compositing step is
// needed afterwards.
package parallel

import "image"

// TileSize is the edge length of a tile in pixels.
const TileSize = 64

// Tile is one rectangle of the canvas.
type Tile struct {
	// X and Y are the tile column and row.
	X, Y int

	// Rect is the tile's pixel rectangle in canvas coordinates. Tiles on the
	// right and bottom edges may be smaller than TileSize.
	Rect image.Rectangle
}

// TileGrid divides a canvas into tiles, stored row-major.
type TileGrid struct {
	bounds image.Rectangle
	tilesX int
	tilesY int
	tiles  []Tile
}

// NewTileGrid covers bounds with tiles. An empty bounds yields no tiles.
func NewTileGrid(bounds image.Rectangle) *TileGrid {
	g := &TileGrid{bounds: bounds}
	if bounds.Empty() {
		return g
	}

	g.tilesX = (bounds.Dx() + TileSize - 1) / TileSize
	g.tilesY = (bounds.Dy() + TileSize - 1) / TileSize
	g.tiles = make([]Tile, 0, g.tilesX*g.tilesY)
	for ty := range g.tilesY {
		for tx := range g.tilesX {
			origin := bounds.Min.Add(image.Pt(tx*TileSize, ty*TileSize))
			r := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(TileSize, TileSize))}
			g.tiles = append(g.tiles, Tile{X: tx, Y: ty, Rect: r.Intersect(bounds)})
		}
	}
	return g
}

// Bounds returns the canvas rectangle.
func (g *TileGrid) Bounds() image.Rectangle { return g.bounds }

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int { return g.tilesY }

// Len returns the number of tiles.
func (g *TileGrid) Len() int { return len(g.tiles) }

// At returns the tile at column tx, row ty.
func (g *TileGrid) At(tx, ty int) (Tile, bool) {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return Tile{}, false
	}
	return g.tiles[ty*g.tilesX+tx], true
}

// Span returns the inclusive tile range covering r, clipped to the grid.
// ok is false when r misses the canvas.
func (g *TileGrid) Span(r image.Rectangle) (tx0, ty0, tx1, ty1 int, ok bool) {
	r = r.Intersect(g.bounds)
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	r = r.Sub(g.bounds.Min)
	return r.Min.X / TileSize, r.Min.Y / TileSize, (r.Max.X - 1) / TileSize, (r.Max.Y - 1) / TileSize, true
}
