package terra

import (
	"github.com/aquilax/go-perlin"
)

// Perlin parameters: alpha is the per-octave amplitude divisor, beta the
// per-octave frequency multiplier.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
)

// DensityField is a scalar field over block coordinates. Sample must return
// a value in [0, 1] and must be a pure function of its arguments: two chunks
// sampling the same coordinate must observe the same value, otherwise chunk
// borders will not line up.
//
// Implementations must be safe for concurrent use.
type DensityField interface {
	Sample(x, y float64) float64
}

// FieldFunc adapts an ordinary function to the DensityField interface.
type FieldFunc func(x, y float64) float64

// Sample calls f(x, y).
func (f FieldFunc) Sample(x, y float64) float64 { return f(x, y) }

// NoiseField is the default island density field: coherent Perlin noise
// attenuated radially so that density reaches zero at MapSize blocks from
// the origin.
//
//	density(p) = clamp01(noise((p + offset) / scale)) * (1 - clamp01(InverseLerp(0, mapSize², |p|²)))
type NoiseField struct {
	noise    *perlin.Perlin
	offset   float64
	invScale float64
	mapSqr   float64
}

// NewNoiseField creates the density field described by cfg. Only the noise
// parameters of cfg are used; call cfg.Validate first to reject bad input.
func NewNoiseField(cfg Config) *NoiseField {
	octaves := cfg.Octaves
	if octaves < 1 {
		octaves = 1
	}
	return &NoiseField{
		noise:    perlin.NewPerlin(perlinAlpha, perlinBeta, int32(octaves), cfg.Seed),
		offset:   float64(cfg.Offset),
		invScale: 1 / cfg.Scale,
		mapSqr:   cfg.MapSize * cfg.MapSize,
	}
}

// Sample returns the density at block coordinates (x, y).
func (f *NoiseField) Sample(x, y float64) float64 {
	// go-perlin returns roughly [-1, 1].
	n := f.noise.Noise2D((x+f.offset)*f.invScale, (y+f.offset)*f.invScale)
	v := clamp01(0.5 + 0.5*n)
	return v * (1 - InverseLerp(0, f.mapSqr, x*x+y*y))
}

// InverseLerp returns where v lies between a and b as a fraction clamped to
// [0, 1]. It returns 0 when a == b.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return clamp01((v - a) / (b - a))
}

// lerp is written as a + (b-a)*t so that equal operands give bit-identical
// results regardless of which cell computes them.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
