package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/terra"
)

// chunkSource is the part of a Scheduler the OBJ writer reads.
type chunkSource interface {
	Chunks() []terra.ChunkPos
	Chunk(pos terra.ChunkPos) (*terra.Chunk, bool)
}

// writeOBJ writes every chunk mesh as one OBJ object. Face indices are
// 1-based and run on across objects.
func writeOBJ(w io.Writer, src chunkSource) (faces int, err error) {
	out := bufio.NewWriterSize(w, 256*1024)
	fmt.Fprintln(out, "# terra chunk meshes")

	vertexBase := 0
	for _, pos := range src.Chunks() {
		c, ok := src.Chunk(pos)
		if !ok || c.Mesh.Empty() {
			continue
		}
		m := c.Mesh
		fmt.Fprintf(out, "o chunk_%d_%d\n", pos.X, pos.Y)
		for _, v := range m.Vertices {
			fmt.Fprintf(out, "v %g %g %g\n", v[0], v[1], v[2])
		}
		for _, n := range m.Normals() {
			fmt.Fprintf(out, "vn %g %g %g\n", n[0], n[1], n[2])
		}
		for i := range m.TriangleCount() {
			a := int(m.Triangles[3*i]) + vertexBase + 1
			b := int(m.Triangles[3*i+1]) + vertexBase + 1
			d := int(m.Triangles[3*i+2]) + vertexBase + 1
			fmt.Fprintf(out, "f %d//%d %d//%d %d//%d\n", a, a, b, b, d, d)
			faces++
		}
		vertexBase += len(m.Vertices)
	}
	return faces, out.Flush()
}

func writeOBJFile(path string, src chunkSource) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if _, err := writeOBJ(f, src); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
