package terra

import (
	"context"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Stats summarizes one contouring pass.
type Stats struct {
	Cells int

	// Cases counts cells per case index.
	Cases [16]int

	// Saddles counts ambiguous cells; Joined counts those resolved as
	// connected through the centre.
	Saddles int
	Joined  int
}

// ContourResult is the output of one Builder pass. The mesh and polylines
// are owned by the result and stay valid after the builder is reset.
type ContourResult struct {
	Mesh      Mesh
	Polylines []Polyline
	Stats     Stats
}

// Builder contours density grids into meshes and outline polylines. Its
// buffers are reused between passes, so one Builder must not be shared
// between goroutines; give each worker its own.
type Builder struct {
	threshold     float64
	unitsPerBlock float64

	indexer   *VertexIndexer
	graph     *BoundaryGraph
	triangles []int32
}

// NewBuilder creates a builder that treats samples below threshold as
// solid and scales block coordinates by unitsPerBlock.
func NewBuilder(threshold, unitsPerBlock float64) *Builder {
	return &Builder{
		threshold:     threshold,
		unitsPerBlock: unitsPerBlock,
		indexer:       NewVertexIndexer(0),
		graph:         NewBoundaryGraph(0),
	}
}

// Build sweeps every cell of g in row-major order and returns the mesh,
// the traced outline and the pass statistics. Positions are in world units:
// block coordinates (including the grid origin) times unitsPerBlock.
func (b *Builder) Build(g *DensityGrid) *ContourResult {
	b.Reset()

	var stats Stats
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			cell := Classify(g, x, y, b.threshold)
			b.addCell(&cell)

			stats.Cells++
			stats.Cases[cell.Case]++
			if cell.Saddle() {
				stats.Saddles++
				if cell.CenterSolid {
					stats.Joined++
				}
			}
		}
	}

	res := &ContourResult{
		Mesh:      b.mesh(),
		Polylines: b.graph.Trace(),
		Stats:     stats,
	}

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("terra: contoured grid",
			"originX", g.originX, "originY", g.originY,
			"cells", stats.Cells,
			"triangles", res.Mesh.TriangleCount(),
			"vertices", len(res.Mesh.Vertices),
			"polylines", len(res.Polylines),
			"saddles", stats.Saddles,
			"joined", stats.Joined)
	}
	return res
}

// addCell appends the triangles and outline of one classified cell.
func (b *Builder) addCell(c *Cell) {
	r := recipeFor(c.Case, c.CenterSolid)
	for _, tri := range r.triangles {
		for _, p := range tri {
			b.triangles = append(b.triangles, b.indexer.Index(c.Resolve(p, b.unitsPerBlock)))
		}
	}
	for _, seg := range r.outline {
		b.graph.AddEdge(c.Resolve(seg[0], b.unitsPerBlock), c.Resolve(seg[1], b.unitsPerBlock))
	}
}

// mesh copies the accumulated buffers into a standalone Mesh.
func (b *Builder) mesh() Mesh {
	positions := b.indexer.Positions()
	verts := make([]mgl64.Vec3, len(positions))
	for i, p := range positions {
		verts[i] = p.Vec3(0)
	}
	tris := make([]int32, len(b.triangles))
	copy(tris, b.triangles)
	return Mesh{Vertices: verts, Triangles: tris}
}

// Graph returns the boundary graph of the last pass. It is valid until the
// next Build or Reset.
func (b *Builder) Graph() *BoundaryGraph { return b.graph }

// Reset drops the state of the previous pass, keeping buffers for reuse.
func (b *Builder) Reset() {
	b.indexer.Reset()
	b.graph.Reset()
	b.triangles = b.triangles[:0]
}

// Contour builds a single grid with a fresh builder.
func Contour(g *DensityGrid, threshold, unitsPerBlock float64) *ContourResult {
	return NewBuilder(threshold, unitsPerBlock).Build(g)
}
