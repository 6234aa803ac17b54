// Command terrademo generates a square of terrain chunks around the origin
// and writes a PNG preview, optionally with a thumbnail and an OBJ dump of
// the chunk meshes.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/terra"
	"github.com/gogpu/terra/preview"
)

func main() {
	var (
		seed      = flag.Int64("seed", 42, "world seed")
		radius    = flag.Int("radius", 4, "chunks to generate on each side of the origin")
		chunk     = flag.Int("chunk", 32, "chunk size in blocks")
		threshold = flag.Float64("threshold", 0.5, "solid threshold")
		workers   = flag.Int("workers", 0, "contouring workers (0 = GOMAXPROCS)")
		budget    = flag.Int("budget", 0, "polylines delivered per tick (0 = unlimited)")
		size      = flag.Int("size", 1024, "image size in pixels")
		output    = flag.String("output", "terrain.png", "output file")
		thumb     = flag.String("thumb", "", "thumbnail output file")
		objOut    = flag.String("obj", "", "OBJ mesh output file")
		timeout   = flag.Duration("timeout", time.Minute, "generation timeout")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		terra.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := terra.DefaultConfig().WithSeed(*seed)
	cfg.ChunkWidth, cfg.ChunkHeight = *chunk, *chunk
	cfg.Threshold = *threshold
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	field := terra.NewNoiseField(cfg)

	r := *radius
	lo := cfg.ChunkToWorld(terra.ChunkPos{X: -r, Y: -r})
	hi := cfg.ChunkToWorld(terra.ChunkPos{X: r + 1, Y: r + 1})
	canvas, err := preview.New(*size, *size, lo, hi, preview.WithWorkers(*workers))
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	defer canvas.Close()

	s, err := terra.NewScheduler(field, cfg,
		terra.WithParallelism(*workers),
		terra.WithPolylineBudget(*budget),
		terra.WithMeshSink(canvas),
		terra.WithColliderSink(canvas),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	defer s.Close()

	start := time.Now()
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			s.Request(terra.ChunkPos{X: x, Y: y})
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		log.Fatalf("Generation did not finish: %v", err)
	}
	elapsed := time.Since(start)

	canvas.Label(lo.Add(mgl64.Vec2{cfg.UnitsPerBlock, 2 * cfg.UnitsPerBlock}), "seed "+message.NewPrinter(language.English).Sprint(*seed))
	if p, ok := findSpawn(cfg, field, r); ok {
		canvas.Label(p, "spawn")
	}

	if err := canvas.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *thumb != "" {
		if err := savePNG(*thumb, canvas.Thumbnail(*size/8)); err != nil {
			log.Fatalf("Failed to save thumbnail: %v", err)
		}
	}
	if *objOut != "" {
		if err := writeOBJFile(*objOut, s); err != nil {
			log.Fatalf("Failed to write OBJ: %v", err)
		}
	}

	printStats(s, elapsed)
	log.Printf("Terrain saved to %s (%dx%d)\n", *output, *size, *size)
}

// findSpawn walks outward from the origin block by block and returns the
// first position with open space around it.
func findSpawn(cfg terra.Config, field terra.DensityField, radius int) (mgl64.Vec2, bool) {
	const clearance = 3
	u := cfg.UnitsPerBlock
	limit := (radius + 1) * cfg.ChunkWidth
	for ring := 0; ring < limit; ring++ {
		for dy := -ring; dy <= ring; dy++ {
			for dx := -ring; dx <= ring; dx++ {
				if max(abs(dx), abs(dy)) != ring {
					continue
				}
				p := mgl64.Vec2{float64(dx) * u, float64(dy) * u}
				if cfg.IsAreaClear(field, p, clearance*u, u) {
					return p, true
				}
			}
		}
	}
	return mgl64.Vec2{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func printStats(s *terra.Scheduler, elapsed time.Duration) {
	var st terra.Stats
	triangles, vertices, polylines := 0, 0, 0
	chunks := s.Chunks()
	for _, pos := range chunks {
		c, _ := s.Chunk(pos)
		triangles += c.Mesh.TriangleCount()
		vertices += len(c.Mesh.Vertices)
		polylines += len(c.Polylines)
		st.Cells += c.Stats.Cells
		st.Saddles += c.Stats.Saddles
		st.Joined += c.Stats.Joined
	}

	p := message.NewPrinter(language.English)
	p.Printf("%d chunks in %v\n", len(chunks), elapsed.Round(time.Millisecond))
	p.Printf("  cells:     %d (%d saddles, %d joined)\n", st.Cells, st.Saddles, st.Joined)
	p.Printf("  triangles: %d\n", triangles)
	p.Printf("  vertices:  %d\n", vertices)
	p.Printf("  polylines: %d\n", polylines)
}
