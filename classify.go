package terra

import "github.com/go-gl/mathgl/mgl64"

// Case bits, most significant first.
const (
	bitTopLeft     = 8
	bitTopRight    = 4
	bitBottomRight = 2
	bitBottomLeft  = 1
)

// Corners holds the four samples of one cell. Top is the lower grid row:
// TopLeft is sample (x, y) and BottomRight is sample (x+1, y+1).
type Corners struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// CenterAvg returns the arithmetic mean of the four corners, used to decide
// how a saddle is resolved.
func (c Corners) CenterAvg() float64 {
	return (c.TopLeft + c.TopRight + c.BottomRight + c.BottomLeft) * 0.25
}

// CaseIndex returns the 4-bit marching squares case for c: TL, TR, BR, BL
// from the most significant bit down, a bit being set when that corner is
// solid (sample < threshold).
func CaseIndex(c Corners, threshold float64) uint8 {
	var idx uint8
	if c.TopLeft < threshold {
		idx |= bitTopLeft
	}
	if c.TopRight < threshold {
		idx |= bitTopRight
	}
	if c.BottomRight < threshold {
		idx |= bitBottomRight
	}
	if c.BottomLeft < threshold {
		idx |= bitBottomLeft
	}
	return idx
}

// IsSaddle reports whether idx is one of the two ambiguous cases, where
// diagonal corners are solid and the other diagonal is open.
func IsSaddle(idx uint8) bool {
	return lookupCase(idx).saddle
}

// Cell is a classified grid cell.
type Cell struct {
	// X and Y are the cell coordinates within its grid.
	X, Y int

	// BlockX and BlockY are the world block coordinates of the top-left corner.
	BlockX, BlockY int

	Corners Corners

	// Case is the marching squares case index in [0, 15].
	Case uint8

	// CenterSolid is the saddle decision: the centroid average is below the
	// threshold, so the two solid corners connect through the centre.
	CenterSolid bool

	threshold float64
}

// Classify reads the corners of cell (x, y) from g and classifies it.
func Classify(g *DensityGrid, x, y int, threshold float64) Cell {
	c := Corners{
		TopLeft:     g.At(x, y),
		TopRight:    g.At(x+1, y),
		BottomRight: g.At(x+1, y+1),
		BottomLeft:  g.At(x, y+1),
	}
	return Cell{
		X:           x,
		Y:           y,
		BlockX:      g.originX + x,
		BlockY:      g.originY + y,
		Corners:     c,
		Case:        CaseIndex(c, threshold),
		CenterSolid: c.CenterAvg() < threshold,
		threshold:   threshold,
	}
}

// Saddle reports whether the cell is an ambiguous case.
func (c Cell) Saddle() bool { return IsSaddle(c.Case) }

// Triangles returns the triangles the cell contributes, as SquarePoint
// triples with positive signed area.
func (c Cell) Triangles() [][3]SquarePoint {
	return recipeFor(c.Case, c.CenterSolid).triangles
}

// Outline returns the directed silhouette segments of the cell, solid on
// the left of each.
func (c Cell) Outline() [][2]SquarePoint {
	return recipeFor(c.Case, c.CenterSolid).outline
}

// corner returns the block coordinates and sample of a corner.
func (c *Cell) corner(p SquarePoint) (x, y int, d float64) {
	switch p {
	case CornerTopLeft:
		return c.BlockX, c.BlockY, c.Corners.TopLeft
	case CornerTopRight:
		return c.BlockX + 1, c.BlockY, c.Corners.TopRight
	case CornerBottomRight:
		return c.BlockX + 1, c.BlockY + 1, c.Corners.BottomRight
	default:
		return c.BlockX, c.BlockY + 1, c.Corners.BottomLeft
	}
}

// edgeCorners maps an edge to its corners in canonical order (smaller block
// coordinate first). Both cells sharing an edge see the same order, so they
// interpolate the crossing bit-identically.
// Order: Top, Right, Bottom, Left.
var edgeCorners = [4][2]SquarePoint{
	{CornerTopLeft, CornerTopRight},
	{CornerTopRight, CornerBottomRight},
	{CornerBottomLeft, CornerBottomRight},
	{CornerTopLeft, CornerBottomLeft},
}

// Resolve returns the world position of p, scaled by unitsPerBlock.
func (c Cell) Resolve(p SquarePoint, unitsPerBlock float64) mgl64.Vec2 {
	var x, y float64
	switch {
	case p <= CornerBottomLeft:
		cx, cy, _ := c.corner(p)
		x, y = float64(cx), float64(cy)

	case p <= EdgeLeft:
		pair := edgeCorners[p-EdgeTop]
		ax, ay, da := c.corner(pair[0])
		bx, by, db := c.corner(pair[1])
		t := InverseLerp(da, db, c.threshold)
		x = lerp(float64(ax), float64(bx), t)
		y = lerp(float64(ay), float64(by), t)

	case p == Center:
		x, y = float64(c.BlockX)+0.5, float64(c.BlockY)+0.5

	case p <= CenterBottomLeft:
		cx, cy, d := c.corner(p - CenterTopLeft)
		t := InverseLerp(c.Corners.CenterAvg(), d, c.threshold)
		x = lerp(float64(c.BlockX)+0.5, float64(cx), t)
		y = lerp(float64(c.BlockY)+0.5, float64(cy), t)

	default:
		panic("terra: unknown square point " + p.String())
	}
	return mgl64.Vec2{x * unitsPerBlock, y * unitsPerBlock}
}
