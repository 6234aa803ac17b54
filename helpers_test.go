package terra

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// gridFrom builds a width x height cell grid at origin (0, 0) whose sample
// (x, y) is f(x, y).
func gridFrom(t testing.TB, width, height int, f func(x, y int) float64) *DensityGrid {
	t.Helper()
	return gridAt(t, width, height, 0, 0, f)
}

func gridAt(t testing.TB, width, height, ox, oy int, f func(x, y int) float64) *DensityGrid {
	t.Helper()
	samples := make([]float64, 0, (width+1)*(height+1))
	for x := 0; x <= width; x++ {
		for y := 0; y <= height; y++ {
			samples = append(samples, f(x, y))
		}
	}
	g, err := NewDensityGrid(width, height, ox, oy, samples)
	if err != nil {
		t.Fatalf("NewDensityGrid() = %v", err)
	}
	return g
}

// cellGrid builds a single-cell grid from corner samples.
func cellGrid(t testing.TB, c Corners) *DensityGrid {
	t.Helper()
	return gridFrom(t, 1, 1, func(x, y int) float64 {
		switch {
		case x == 0 && y == 0:
			return c.TopLeft
		case x == 1 && y == 0:
			return c.TopRight
		case x == 1 && y == 1:
			return c.BottomRight
		default:
			return c.BottomLeft
		}
	})
}

func uniform(v float64) func(x, y int) float64 {
	return func(int, int) float64 { return v }
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearVec(a, b mgl64.Vec2) bool {
	return near(a[0], b[0]) && near(a[1], b[1])
}

func hasVertex(m *Mesh, p mgl64.Vec2) bool {
	for _, v := range m.Vertices {
		if nearVec(v.Vec2(), p) {
			return true
		}
	}
	return false
}
