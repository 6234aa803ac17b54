package terra

import "fmt"

// DensityGrid is an immutable (W+1) x (H+1) lattice of density samples for
// one chunk of W x H cells. The extra row and column repeat the first
// samples of the neighbouring chunks so that shared borders contour
// identically on both sides.
//
// The grid also records the chunk's block origin, so that positions derived
// from it land in world block coordinates.
type DensityGrid struct {
	width   int
	height  int
	originX int
	originY int
	samples []float64
}

// NewDensityGrid wraps samples as a width x height cell grid whose sample
// (0, 0) sits at block (originX, originY). Samples are column-major:
// sample (x, y) is samples[x*(height+1)+y]. The slice is retained, not
// copied; the caller must not modify it afterwards.
func NewDensityGrid(width, height, originX, originY int, samples []float64) (*DensityGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidChunkSize, width, height)
	}
	if want := (width + 1) * (height + 1); len(samples) != want {
		return nil, fmt.Errorf("%w: have %d samples, want %d", ErrInvalidGrid, len(samples), want)
	}
	return &DensityGrid{
		width:   width,
		height:  height,
		originX: originX,
		originY: originY,
		samples: samples,
	}, nil
}

// SampleGrid evaluates field over the (width+1) x (height+1) lattice that
// starts at block (originX, originY).
func SampleGrid(field DensityField, width, height, originX, originY int) *DensityGrid {
	samples := make([]float64, (width+1)*(height+1))
	i := 0
	for x := 0; x <= width; x++ {
		fx := float64(originX + x)
		for y := 0; y <= height; y++ {
			samples[i] = field.Sample(fx, float64(originY+y))
			i++
		}
	}
	return &DensityGrid{
		width:   width,
		height:  height,
		originX: originX,
		originY: originY,
		samples: samples,
	}
}

// Width returns the number of cells along x.
func (g *DensityGrid) Width() int { return g.width }

// Height returns the number of cells along y.
func (g *DensityGrid) Height() int { return g.height }

// Origin returns the block coordinates of sample (0, 0).
func (g *DensityGrid) Origin() (x, y int) { return g.originX, g.originY }

// At returns sample (x, y). Coordinates outside [0, W] x [0, H] read as 0,
// which is always solid: this closes chunk borders instead of leaving them
// undefined.
func (g *DensityGrid) At(x, y int) float64 {
	if x < 0 || x > g.width || y < 0 || y > g.height {
		return 0
	}
	return g.samples[x*(g.height+1)+y]
}

// Solid reports whether sample (x, y) is below threshold.
func (g *DensityGrid) Solid(x, y int, threshold float64) bool {
	return g.At(x, y) < threshold
}
