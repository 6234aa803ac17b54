package terra

import "fmt"

// SquarePoint names a position within a cell. It is resolved to a concrete
// position by Cell.Resolve using the cell's corner samples.
type SquarePoint uint8

const (
	// Grid corners.
	CornerTopLeft SquarePoint = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft

	// Threshold crossings interpolated along the cell edges.
	EdgeTop
	EdgeRight
	EdgeBottom
	EdgeLeft

	// Center is the cell centroid.
	Center

	// Threshold crossings interpolated between the centroid and a corner,
	// used when a saddle is split into two caps.
	CenterTopLeft
	CenterTopRight
	CenterBottomRight
	CenterBottomLeft
)

var squarePointNames = [...]string{
	CornerTopLeft:     "CornerTopLeft",
	CornerTopRight:    "CornerTopRight",
	CornerBottomRight: "CornerBottomRight",
	CornerBottomLeft:  "CornerBottomLeft",
	EdgeTop:           "EdgeTop",
	EdgeRight:         "EdgeRight",
	EdgeBottom:        "EdgeBottom",
	EdgeLeft:          "EdgeLeft",
	Center:            "Center",
	CenterTopLeft:     "CenterTopLeft",
	CenterTopRight:    "CenterTopRight",
	CenterBottomRight: "CenterBottomRight",
	CenterBottomLeft:  "CenterBottomLeft",
}

// String returns the name of the point.
func (p SquarePoint) String() string {
	if int(p) < len(squarePointNames) {
		return squarePointNames[p]
	}
	return fmt.Sprintf("SquarePoint(%d)", uint8(p))
}

// Short names keep the table below readable.
const (
	tl  = CornerTopLeft
	tr  = CornerTopRight
	br  = CornerBottomRight
	bl  = CornerBottomLeft
	et  = EdgeTop
	er  = EdgeRight
	eb  = EdgeBottom
	el  = EdgeLeft
	cc  = Center
	ctl = CenterTopLeft
	ctr = CenterTopRight
	cbr = CenterBottomRight
	cbl = CenterBottomLeft
)

// recipe is the geometry one cell contributes: triangles with positive
// signed area, and directed outline segments with solid on their left.
type recipe struct {
	triangles [][3]SquarePoint
	outline   [][2]SquarePoint
}

// caseEntry is one row of the case table. Saddle rows carry two
// resolutions: split (centre open, two caps) and joined (centre solid, one
// band through the centroid).
type caseEntry struct {
	split  recipe
	joined recipe
	saddle bool
}

// caseTable is indexed by TL*8 | TR*4 | BR*2 | BL*1, where a bit is set
// when that corner is solid. Each polygon is listed in ring order
// TL, Top, TR, Right, BR, Bottom, BL, Left and fanned from its first point.
var caseTable = [16]caseEntry{
	0: {},
	1: {split: recipe{
		triangles: [][3]SquarePoint{{bl, el, eb}},
		outline:   [][2]SquarePoint{{el, eb}},
	}},
	2: {split: recipe{
		triangles: [][3]SquarePoint{{br, eb, er}},
		outline:   [][2]SquarePoint{{eb, er}},
	}},
	3: {split: recipe{
		triangles: [][3]SquarePoint{{br, bl, el}, {br, el, er}},
		outline:   [][2]SquarePoint{{el, er}},
	}},
	4: {split: recipe{
		triangles: [][3]SquarePoint{{tr, er, et}},
		outline:   [][2]SquarePoint{{er, et}},
	}},
	5: {
		saddle: true,
		split: recipe{
			triangles: [][3]SquarePoint{
				{tr, er, ctr}, {tr, ctr, et},
				{bl, el, cbl}, {bl, cbl, eb},
			},
			outline: [][2]SquarePoint{{er, ctr}, {ctr, et}, {el, cbl}, {cbl, eb}},
		},
		joined: recipe{
			triangles: [][3]SquarePoint{
				{cc, et, tr}, {cc, tr, er},
				{cc, eb, bl}, {cc, bl, el},
				// Close the band between the two corners.
				{cc, er, eb}, {cc, el, et},
			},
			outline: [][2]SquarePoint{{er, eb}, {el, et}},
		},
	},
	6: {split: recipe{
		triangles: [][3]SquarePoint{{tr, br, eb}, {tr, eb, et}},
		outline:   [][2]SquarePoint{{eb, et}},
	}},
	7: {split: recipe{
		triangles: [][3]SquarePoint{{tr, br, bl}, {tr, bl, el}, {tr, el, et}},
		outline:   [][2]SquarePoint{{el, et}},
	}},
	8: {split: recipe{
		triangles: [][3]SquarePoint{{tl, et, el}},
		outline:   [][2]SquarePoint{{et, el}},
	}},
	9: {split: recipe{
		triangles: [][3]SquarePoint{{tl, et, eb}, {tl, eb, bl}},
		outline:   [][2]SquarePoint{{et, eb}},
	}},
	10: {
		saddle: true,
		split: recipe{
			triangles: [][3]SquarePoint{
				{tl, et, ctl}, {tl, ctl, el},
				{br, eb, cbr}, {br, cbr, er},
			},
			outline: [][2]SquarePoint{{et, ctl}, {ctl, el}, {eb, cbr}, {cbr, er}},
		},
		joined: recipe{
			triangles: [][3]SquarePoint{
				{cc, tl, et}, {cc, er, br},
				{cc, br, eb}, {cc, el, tl},
				// Close the band between the two corners.
				{cc, et, er}, {cc, eb, el},
			},
			outline: [][2]SquarePoint{{et, er}, {eb, el}},
		},
	},
	11: {split: recipe{
		triangles: [][3]SquarePoint{{tl, et, er}, {tl, er, br}, {tl, br, bl}},
		outline:   [][2]SquarePoint{{et, er}},
	}},
	12: {split: recipe{
		triangles: [][3]SquarePoint{{tl, tr, er}, {tl, er, el}},
		outline:   [][2]SquarePoint{{er, el}},
	}},
	13: {split: recipe{
		triangles: [][3]SquarePoint{{tl, tr, er}, {tl, er, eb}, {tl, eb, bl}},
		outline:   [][2]SquarePoint{{er, eb}},
	}},
	14: {split: recipe{
		triangles: [][3]SquarePoint{{tl, tr, br}, {tl, br, eb}, {tl, eb, el}},
		outline:   [][2]SquarePoint{{eb, el}},
	}},
	15: {split: recipe{
		triangles: [][3]SquarePoint{{tl, tr, br}, {tl, br, bl}},
	}},
}

// lookupCase returns the table row for idx. An index outside the table can
// only come from a broken classifier, so it panics.
func lookupCase(idx uint8) *caseEntry {
	if int(idx) >= len(caseTable) {
		panic(fmt.Errorf("%w: %d", ErrDegenerateTopology, idx))
	}
	return &caseTable[idx]
}

// recipeFor picks the resolution for a case and saddle decision.
func recipeFor(idx uint8, centerSolid bool) *recipe {
	e := lookupCase(idx)
	if e.saddle && centerSolid {
		return &e.joined
	}
	return &e.split
}
