package terra

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a triangle mesh in the z = 0 plane. Triangles is a flat index
// list, three indices per triangle, each valid into Vertices. Every
// triangle winds counter-clockwise with y up (positive signed area).
type Mesh struct {
	Vertices  []mgl64.Vec3
	Triangles []int32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool { return len(m.Triangles) == 0 }

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	return m.Vertices[m.Triangles[3*i]], m.Vertices[m.Triangles[3*i+1]], m.Vertices[m.Triangles[3*i+2]]
}

// Area returns the sum of the signed triangle areas.
func (m *Mesh) Area() float64 {
	var sum float64
	for i := range m.TriangleCount() {
		a, b, c := m.Triangle(i)
		sum += signedArea(a.Vec2(), b.Vec2(), c.Vec2())
	}
	return sum
}

// Normals returns per-vertex normals accumulated from the face normals of
// the adjacent triangles, weighted by triangle area. Vertices used only by
// degenerate triangles get a zero normal.
func (m *Mesh) Normals() []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(m.Vertices))
	for i := range m.TriangleCount() {
		ia, ib, ic := m.Triangles[3*i], m.Triangles[3*i+1], m.Triangles[3*i+2]
		a, b, c := m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]
		// The cross product's length is twice the area, which is the weight.
		n := b.Sub(a).Cross(c.Sub(a))
		normals[ia] = normals[ia].Add(n)
		normals[ib] = normals[ib].Add(n)
		normals[ic] = normals[ic].Add(n)
	}
	for i, n := range normals {
		if l := n.Len(); l > 0 {
			normals[i] = n.Mul(1 / l)
		}
	}
	return normals
}

// Bounds returns the axis-aligned bounds of the vertices. An empty mesh
// returns min > max.
func (m *Mesh) Bounds() (minPt, maxPt mgl64.Vec2) {
	minPt = mgl64.Vec2{math.Inf(1), math.Inf(1)}
	maxPt = mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		minPt[0] = math.Min(minPt[0], v[0])
		minPt[1] = math.Min(minPt[1], v[1])
		maxPt[0] = math.Max(maxPt[0], v[0])
		maxPt[1] = math.Max(maxPt[1], v[1])
	}
	return minPt, maxPt
}

// signedArea is positive when a, b, c turn counter-clockwise with y up.
func signedArea(a, b, c mgl64.Vec2) float64 {
	ab, ac := b.Sub(a), c.Sub(a)
	return 0.5 * (ab[0]*ac[1] - ab[1]*ac[0])
}
