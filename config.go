package terra

import (
	"fmt"
	"math"
	"math/rand"
)

// Offset bounds used by OffsetFromSeed.
const (
	minOffset = -500000
	maxOffset = 500000
)

// Config describes one world: the density field parameters, the chunk
// dimensions and the contouring threshold. A Config is a plain value and is
// passed explicitly to every component that needs it.
type Config struct {
	// ChunkWidth and ChunkHeight are the chunk size in blocks (cells).
	ChunkWidth  int
	ChunkHeight int

	// Threshold separates solid (sample < Threshold) from open space.
	Threshold float64

	// UnitsPerBlock is the world-space length of one block.
	UnitsPerBlock float64

	// Scale is the noise feature size in blocks.
	Scale float64

	// MapSize is the island radius in blocks. Density falls to zero at it.
	MapSize float64

	// Octaves is the number of noise octaves summed by NoiseField.
	Octaves int

	// Seed seeds the noise permutation; Offset decorrelates worlds that
	// share a noise function.
	Seed   int64
	Offset int
}

// DefaultConfig returns the configuration of a default world: 32x32 block
// chunks, threshold 0.5, one block per unit, scale 15 and map size 250.
func DefaultConfig() Config {
	return Config{
		ChunkWidth:    32,
		ChunkHeight:   32,
		Threshold:     0.5,
		UnitsPerBlock: 1,
		Scale:         15,
		MapSize:       250,
		Octaves:       1,
	}
}

// WithSeed returns a copy of c using seed and the offset derived from it.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = seed
	c.Offset = OffsetFromSeed(seed)
	return c
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	switch {
	case c.ChunkWidth <= 0 || c.ChunkHeight <= 0:
		return fmt.Errorf("%w: got %dx%d", ErrInvalidChunkSize, c.ChunkWidth, c.ChunkHeight)
	case math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold > 1:
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, c.Threshold)
	case !(c.UnitsPerBlock > 0):
		return fmt.Errorf("%w: got %v", ErrInvalidUnits, c.UnitsPerBlock)
	case !(c.Scale > 0):
		return fmt.Errorf("%w: got %v", ErrInvalidScale, c.Scale)
	case !(c.MapSize > 0):
		return fmt.Errorf("%w: got %v", ErrInvalidMapSize, c.MapSize)
	}
	return nil
}

// OffsetFromSeed derives the per-world noise offset, uniformly drawn from
// [-500000, 500000) by a source seeded with seed.
func OffsetFromSeed(seed int64) int {
	r := rand.New(rand.NewSource(seed))
	return minOffset + r.Intn(maxOffset-minOffset)
}
