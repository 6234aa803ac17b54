package terra

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ChunkPos identifies a chunk by its integer position in chunk units.
type ChunkPos struct {
	X, Y int
}

// String returns "(x, y)".
func (p ChunkPos) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// ChunkOrigin returns the block coordinates of the first sample of the
// chunk at pos.
func (c Config) ChunkOrigin(pos ChunkPos) (x, y int) {
	return pos.X * c.ChunkWidth, pos.Y * c.ChunkHeight
}

// ChunkToWorld returns the world position of the chunk's origin corner.
func (c Config) ChunkToWorld(pos ChunkPos) mgl64.Vec2 {
	x, y := c.ChunkOrigin(pos)
	return mgl64.Vec2{float64(x) * c.UnitsPerBlock, float64(y) * c.UnitsPerBlock}
}

// WorldToChunk returns the chunk containing the world position p.
func (c Config) WorldToChunk(p mgl64.Vec2) ChunkPos {
	return ChunkPos{
		X: int(math.Floor(p[0] / (c.UnitsPerBlock * float64(c.ChunkWidth)))),
		Y: int(math.Floor(p[1] / (c.UnitsPerBlock * float64(c.ChunkHeight)))),
	}
}

// SampleChunk samples the density grid of the chunk at pos.
func (c Config) SampleChunk(field DensityField, pos ChunkPos) *DensityGrid {
	ox, oy := c.ChunkOrigin(pos)
	return SampleGrid(field, c.ChunkWidth, c.ChunkHeight, ox, oy)
}

// IsSolidAt reports whether the world position p lies inside terrain.
func (c Config) IsSolidAt(field DensityField, p mgl64.Vec2) bool {
	return field.Sample(p[0]/c.UnitsPerBlock, p[1]/c.UnitsPerBlock) < c.Threshold
}

// IsAreaClear probes a square of half-size halfExtent around center every
// step world units and reports whether none of the probes is solid. It is
// the check a caller runs before placing something at center.
func (c Config) IsAreaClear(field DensityField, center mgl64.Vec2, halfExtent, step float64) bool {
	if step <= 0 {
		step = halfExtent
	}
	if step <= 0 {
		return !c.IsSolidAt(field, center)
	}
	n := int(math.Floor(2*halfExtent/step + 1e-9))
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			p := mgl64.Vec2{center[0] - halfExtent + float64(i)*step, center[1] - halfExtent + float64(j)*step}
			if c.IsSolidAt(field, p) {
				return false
			}
		}
	}
	return true
}
