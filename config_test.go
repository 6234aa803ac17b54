package terra

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Config
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.ChunkWidth != 32 || cfg.ChunkHeight != 32 {
		t.Errorf("chunk = %dx%d, want 32x32", cfg.ChunkWidth, cfg.ChunkHeight)
	}
	if cfg.Threshold != 0.5 || cfg.UnitsPerBlock != 1 || cfg.Scale != 15 || cfg.MapSize != 250 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.ChunkWidth = 0 }, ErrInvalidChunkSize},
		{"negative height", func(c *Config) { c.ChunkHeight = -4 }, ErrInvalidChunkSize},
		{"threshold above one", func(c *Config) { c.Threshold = 1.5 }, ErrInvalidThreshold},
		{"threshold NaN", func(c *Config) { c.Threshold = math.NaN() }, ErrInvalidThreshold},
		{"zero units", func(c *Config) { c.UnitsPerBlock = 0 }, ErrInvalidUnits},
		{"NaN units", func(c *Config) { c.UnitsPerBlock = math.NaN() }, ErrInvalidUnits},
		{"zero scale", func(c *Config) { c.Scale = 0 }, ErrInvalidScale},
		{"negative map", func(c *Config) { c.MapSize = -1 }, ErrInvalidMapSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOffsetFromSeed(t *testing.T) {
	distinct := make(map[int]bool)
	for seed := range int64(100) {
		off := OffsetFromSeed(seed)
		if off < -500000 || off >= 500000 {
			t.Errorf("OffsetFromSeed(%d) = %d, want in [-500000, 500000)", seed, off)
		}
		if again := OffsetFromSeed(seed); again != off {
			t.Errorf("OffsetFromSeed(%d) = %d then %d", seed, off, again)
		}
		distinct[off] = true
	}
	if len(distinct) < 90 {
		t.Errorf("only %d distinct offsets for 100 seeds", len(distinct))
	}
}

func TestWithSeed(t *testing.T) {
	base := DefaultConfig()
	cfg := base.WithSeed(77)
	if cfg.Seed != 77 || cfg.Offset != OffsetFromSeed(77) {
		t.Errorf("WithSeed(77) = seed %d offset %d", cfg.Seed, cfg.Offset)
	}
	if base.Seed != 0 || base.Offset != 0 {
		t.Error("WithSeed modified its receiver")
	}
}

// =============================================================================
// World coordinates
// =============================================================================

func TestChunkOrigin(t *testing.T) {
	cfg := DefaultConfig()
	if x, y := cfg.ChunkOrigin(ChunkPos{-2, 3}); x != -64 || y != 96 {
		t.Errorf("ChunkOrigin(-2, 3) = %d, %d, want -64, 96", x, y)
	}

	cfg.UnitsPerBlock = 0.5
	if got := cfg.ChunkToWorld(ChunkPos{-2, 3}); got != (mgl64.Vec2{-32, 48}) {
		t.Errorf("ChunkToWorld(-2, 3) = %v, want (-32, 48)", got)
	}
}

func TestWorldToChunk(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		p    mgl64.Vec2
		want ChunkPos
	}{
		{mgl64.Vec2{0, 0}, ChunkPos{0, 0}},
		{mgl64.Vec2{31.9, 31.9}, ChunkPos{0, 0}},
		{mgl64.Vec2{32, 64}, ChunkPos{1, 2}},
		{mgl64.Vec2{-0.5, 31.9}, ChunkPos{-1, 0}},
		{mgl64.Vec2{-32, -32.1}, ChunkPos{-1, -2}},
	}
	for _, tt := range tests {
		if got := cfg.WorldToChunk(tt.p); got != tt.want {
			t.Errorf("WorldToChunk(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	// Round trip through the chunk origin.
	cfg.UnitsPerBlock = 0.25
	for _, pos := range []ChunkPos{{0, 0}, {3, -7}, {-5, 2}} {
		if got := cfg.WorldToChunk(cfg.ChunkToWorld(pos)); got != pos {
			t.Errorf("WorldToChunk(ChunkToWorld(%v)) = %v", pos, got)
		}
	}
}

func TestChunkPosString(t *testing.T) {
	if got := (ChunkPos{-1, 4}).String(); got != "(-1, 4)" {
		t.Errorf("String() = %q, want %q", got, "(-1, 4)")
	}
}

func TestIsAreaClear(t *testing.T) {
	cfg := DefaultConfig()
	// A solid block around (10, 0).
	field := FieldFunc(func(x, y float64) float64 {
		if math.Abs(x-10) < 1 && math.Abs(y) < 1 {
			return 0.1
		}
		return 0.9
	})

	if !cfg.IsAreaClear(field, mgl64.Vec2{0, 0}, 2, 0.1) {
		t.Error("IsAreaClear(origin) = false, want true")
	}
	if cfg.IsAreaClear(field, mgl64.Vec2{8, 0}, 2, 0.1) {
		t.Error("IsAreaClear(8, 0) = true, want false")
	}
	if cfg.IsSolidAt(field, mgl64.Vec2{0, 0}) || !cfg.IsSolidAt(field, mgl64.Vec2{10, 0}) {
		t.Error("IsSolidAt() disagrees with the field")
	}

	// Positions are world units; with two units per block the solid block
	// sits around world x = 20.
	cfg.UnitsPerBlock = 2
	if !cfg.IsSolidAt(field, mgl64.Vec2{20, 0}) {
		t.Error("IsSolidAt(20, 0) = false with two units per block")
	}
	if cfg.IsAreaClear(field, mgl64.Vec2{20, 0}, 0, 0) {
		t.Error("IsAreaClear(20, 0) with zero extent = true on a solid point")
	}
}
