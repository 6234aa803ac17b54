// Package terra generates chunked 2D terrain from a scalar density field.
//
// # Overview
//
// A world is an island-shaped density field sampled on a block lattice and
// streamed in fixed-size chunks. Each chunk is contoured with marching
// squares into a triangle mesh for rendering and a set of outline
// polylines for collision.
//
// # Quick Start
//
//	cfg := terra.DefaultConfig().WithSeed(42)
//	field := terra.NewNoiseField(cfg)
//
//	s, err := terra.NewScheduler(field, cfg,
//	    terra.WithMeshSink(renderer),
//	    terra.WithColliderSink(physics),
//	)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.Request(terra.ChunkPos{X: 0, Y: 0})
//	for s.Busy() {
//	    s.Tick() // once per frame
//	}
//
// # Contouring
//
// Each cell is classified by its four corners (TL, TR, BR, BL, most
// significant bit first; a corner is solid when its sample is below the
// threshold) into one of 16 cases. One table maps each case to triangles
// and outline segments. The two saddle cases (5 and 10) are resolved by the
// average of the corners: below the threshold the solid corners connect
// through the cell centre, otherwise they become two separate caps.
//
// Vertices shared between cells are merged by exact position equality.
// Crossings on a shared edge are always interpolated in the same corner
// order, so both cells, and both chunks on a chunk border, compute
// bit-identical positions.
//
// # Coordinate System
//
// Grid rows grow with y. Sample (x, y) is the top-left corner of cell
// (x, y). Positions are world units: block coordinates times
// Config.UnitsPerBlock. Triangles have positive signed area, which is
// counter-clockwise when y points up.
//
// # Concurrency
//
// Contouring a chunk shares no mutable state with any other chunk, so the
// Scheduler runs sweeps on a bounded worker pool. Finalization and all
// sink calls happen on the goroutine driving the Scheduler.
package terra
