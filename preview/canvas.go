// Package preview draws terrain chunks into an image.
//
// A Canvas is a terra.MeshSink and a terra.ColliderSink, so a Scheduler can
// deliver straight into it. Rendering is incremental: only the tiles
// touched by chunks added or removed since the last Render are redrawn, in
// parallel.
package preview

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/vector"

	"github.com/gogpu/terra"
	"github.com/gogpu/terra/internal/parallel"
)

// ErrEmptyView is returned by New for a canvas or world rectangle without
// area.
var ErrEmptyView = errors.New("preview: empty view")

var (
	_ terra.MeshSink     = (*Canvas)(nil)
	_ terra.ColliderSink = (*Canvas)(nil)
)

type meshEntry struct {
	mesh *terra.Mesh
	rect image.Rectangle
}

type outlineEntry struct {
	line terra.Polyline
	rect image.Rectangle
}

// Canvas renders chunk meshes, outlines and labels over a fixed world
// rectangle. It is not safe for concurrent use; drive it from the
// goroutine that drives the Scheduler.
type Canvas struct {
	img      *image.RGBA
	origin   mgl64.Vec2 // world position of pixel (0, 0)
	scale    float64    // pixels per world unit
	opts     options
	renderer *parallel.TileRenderer

	meshes   map[terra.ChunkPos]meshEntry
	outlines map[terra.ChunkPos][]outlineEntry
	labels   []label

	faces       *facePool
	rasterizers sync.Pool
	land        *image.Uniform
	outline     *image.Uniform
	text        *image.Uniform
	water       *image.Uniform
}

// New creates a width x height canvas showing the world rectangle
// [worldMin, worldMax]. The world is scaled uniformly to fit and anchored
// at the top-left corner.
func New(width, height int, worldMin, worldMax mgl64.Vec2, opts ...Option) (*Canvas, error) {
	span := worldMax.Sub(worldMin)
	if width <= 0 || height <= 0 || !(span[0] > 0) || !(span[1] > 0) {
		return nil, ErrEmptyView
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	faces, err := newFacePool(o.labelSize)
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, width, height)
	c := &Canvas{
		img:      image.NewRGBA(bounds),
		origin:   worldMin,
		scale:    math.Min(float64(width)/span[0], float64(height)/span[1]),
		opts:     o,
		renderer: parallel.NewTileRenderer(bounds, o.workers),
		meshes:   make(map[terra.ChunkPos]meshEntry),
		outlines: make(map[terra.ChunkPos][]outlineEntry),
		faces:    faces,
		land:     image.NewUniform(o.palette.Land),
		outline:  image.NewUniform(o.palette.Outline),
		text:     image.NewUniform(o.palette.Label),
		water:    image.NewUniform(o.palette.Water),
	}
	c.rasterizers.New = func() any { return vector.NewRasterizer(0, 0) }
	return c, nil
}

// Bounds returns the pixel bounds.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Scale returns the number of pixels per world unit.
func (c *Canvas) Scale() float64 { return c.scale }

// ToPixel maps a world position to pixel coordinates.
func (c *Canvas) ToPixel(p mgl64.Vec2) mgl64.Vec2 {
	return p.Sub(c.origin).Mul(c.scale)
}

// pixelRect returns the pixel rectangle covering the world box, grown by
// pad pixels.
func (c *Canvas) pixelRect(minPt, maxPt mgl64.Vec2, pad float64) image.Rectangle {
	a, b := c.ToPixel(minPt), c.ToPixel(maxPt)
	return image.Rect(
		int(math.Floor(a[0]-pad)), int(math.Floor(a[1]-pad)),
		int(math.Ceil(b[0]+pad)), int(math.Ceil(b[1]+pad)),
	)
}

func polylineBounds(p terra.Polyline) (minPt, maxPt mgl64.Vec2) {
	minPt = mgl64.Vec2{math.Inf(1), math.Inf(1)}
	maxPt = mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, q := range p.Points {
		minPt = mgl64.Vec2{math.Min(minPt[0], q[0]), math.Min(minPt[1], q[1])}
		maxPt = mgl64.Vec2{math.Max(maxPt[0], q[0]), math.Max(maxPt[1], q[1])}
	}
	return minPt, maxPt
}

// SetMesh shows m as the land of the chunk at pos, replacing any earlier
// mesh of that chunk.
func (c *Canvas) SetMesh(pos terra.ChunkPos, m *terra.Mesh) {
	c.ClearMesh(pos)
	if m == nil || m.Empty() {
		return
	}
	minPt, maxPt := m.Bounds()
	e := meshEntry{mesh: m, rect: c.pixelRect(minPt, maxPt, 1)}
	c.meshes[pos] = e
	c.renderer.Invalidate(e.rect)
}

// ClearMesh removes the land of the chunk at pos.
func (c *Canvas) ClearMesh(pos terra.ChunkPos) {
	if e, ok := c.meshes[pos]; ok {
		delete(c.meshes, pos)
		c.renderer.Invalidate(e.rect)
	}
}

// AddPolyline adds an outline to the chunk at pos.
func (c *Canvas) AddPolyline(pos terra.ChunkPos, p terra.Polyline) {
	if len(p.Points) < 2 {
		return
	}
	minPt, maxPt := polylineBounds(p)
	e := outlineEntry{line: p, rect: c.pixelRect(minPt, maxPt, c.opts.outlineWidth+1)}
	c.outlines[pos] = append(c.outlines[pos], e)
	c.renderer.Invalidate(e.rect)
}

// ClearPolylines removes every outline of the chunk at pos.
func (c *Canvas) ClearPolylines(pos terra.ChunkPos) {
	for _, e := range c.outlines[pos] {
		c.renderer.Invalidate(e.rect)
	}
	delete(c.outlines, pos)
}

// Label draws text with its baseline origin at the world position p.
func (c *Canvas) Label(p mgl64.Vec2, text string) {
	if text == "" {
		return
	}
	px := c.ToPixel(p)
	l := c.faces.layout(text, int(math.Round(px[0])), int(math.Round(px[1])))
	c.labels = append(c.labels, l)
	c.renderer.Invalidate(l.rect)
}

// ClearLabels removes every label.
func (c *Canvas) ClearLabels() {
	for _, l := range c.labels {
		c.renderer.Invalidate(l.rect)
	}
	c.labels = nil
}

// Render redraws the invalidated tiles and returns the image. The image is
// owned by the canvas and updated in place by later calls.
func (c *Canvas) Render() *image.RGBA {
	n := c.renderer.Render(c.drawTile)
	if l := terra.Logger(); n > 0 && l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("preview: rendered", "tiles", n, "chunks", len(c.meshes), "labels", len(c.labels))
	}
	return c.img
}

// drawTile paints one tile: water, then land, outlines and labels clipped
// to the tile. It runs on a pool worker and only reads canvas state.
func (c *Canvas) drawTile(t parallel.Tile) {
	draw.Draw(c.img, t.Rect, c.water, image.Point{}, draw.Src)

	z := c.rasterizers.Get().(*vector.Rasterizer)
	defer c.rasterizers.Put(z)
	off := mgl64.Vec2{float64(t.Rect.Min.X), float64(t.Rect.Min.Y)}

	// All triangles go into one coverage pass so shared edges leave no
	// seams.
	z.Reset(t.Rect.Dx(), t.Rect.Dy())
	filled := false
	for _, e := range c.meshes {
		if !e.rect.Overlaps(t.Rect) {
			continue
		}
		m := e.mesh
		for i := range m.TriangleCount() {
			a, b, d := m.Triangle(i)
			pa, pb, pd := c.ToPixel(a.Vec2()).Sub(off), c.ToPixel(b.Vec2()).Sub(off), c.ToPixel(d.Vec2()).Sub(off)
			if !triangleOverlaps(pa, pb, pd, t.Rect.Dx(), t.Rect.Dy()) {
				continue
			}
			z.MoveTo(float32(pa[0]), float32(pa[1]))
			z.LineTo(float32(pb[0]), float32(pb[1]))
			z.LineTo(float32(pd[0]), float32(pd[1]))
			z.ClosePath()
			filled = true
		}
	}
	if filled {
		z.DrawOp = draw.Over
		z.Draw(c.img, t.Rect, c.land, image.Point{})
	}

	if w := c.opts.outlineWidth; w > 0 {
		z.Reset(t.Rect.Dx(), t.Rect.Dy())
		stroked := false
		for _, lines := range c.outlines {
			for _, e := range lines {
				if !e.rect.Overlaps(t.Rect) {
					continue
				}
				stroked = c.strokePolyline(z, e.line, off, w/2) || stroked
			}
		}
		if stroked {
			z.DrawOp = draw.Over
			z.Draw(c.img, t.Rect, c.outline, image.Point{})
		}
	}

	if len(c.labels) > 0 {
		c.drawLabels(t)
	}
}

// strokePolyline adds one quad per segment, each wound the same way so
// overlapping quads never cancel.
func (c *Canvas) strokePolyline(z *vector.Rasterizer, p terra.Polyline, off mgl64.Vec2, half float64) bool {
	n := len(p.Points)
	segs := p.Segments()
	added := false
	for i := range segs {
		a := c.ToPixel(p.Points[i]).Sub(off)
		b := c.ToPixel(p.Points[(i+1)%n]).Sub(off)
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			continue
		}
		nrm := mgl64.Vec2{-d[1], d[0]}.Mul(half / l)
		q0, q1, q2, q3 := a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm)
		z.MoveTo(float32(q0[0]), float32(q0[1]))
		z.LineTo(float32(q1[0]), float32(q1[1]))
		z.LineTo(float32(q2[0]), float32(q2[1]))
		z.LineTo(float32(q3[0]), float32(q3[1]))
		z.ClosePath()
		added = true
	}
	return added
}

func (c *Canvas) drawLabels(t parallel.Tile) {
	dst, ok := c.img.SubImage(t.Rect).(*image.RGBA)
	if !ok {
		return
	}
	var face font.Face
	for _, l := range c.labels {
		if !l.rect.Overlaps(t.Rect) {
			continue
		}
		if face == nil {
			face = c.faces.get()
			defer c.faces.put(face)
		}
		d := font.Drawer{Dst: dst, Src: c.text, Face: face, Dot: l.dot}
		d.DrawString(l.text)
	}
}

// triangleOverlaps reports whether the bounding box of a, b, d touches
// [0, w] x [0, h].
func triangleOverlaps(a, b, d mgl64.Vec2, w, h int) bool {
	minX := math.Min(a[0], math.Min(b[0], d[0]))
	maxX := math.Max(a[0], math.Max(b[0], d[0]))
	minY := math.Min(a[1], math.Min(b[1], d[1]))
	maxY := math.Max(a[1], math.Max(b[1], d[1]))
	return maxX >= 0 && minX <= float64(w) && maxY >= 0 && minY <= float64(h)
}

// Thumbnail renders the canvas and returns a copy scaled to fit within
// maxSide pixels.
func (c *Canvas) Thumbnail(maxSide int) *image.RGBA {
	src := c.Render()
	b := src.Bounds()
	if maxSide <= 0 {
		maxSide = 1
	}
	k := math.Min(1, float64(maxSide)/float64(max(b.Dx(), b.Dy())))
	dst := image.NewRGBA(image.Rect(0, 0, max(1, int(float64(b.Dx())*k)), max(1, int(float64(b.Dy())*k))))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// EncodePNG renders the canvas and writes it to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Render())
}

// SavePNG renders the canvas into a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Close stops the tile workers. The last rendered image stays valid.
func (c *Canvas) Close() { c.renderer.Close() }
