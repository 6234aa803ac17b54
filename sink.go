package terra

// MeshSink consumes finished chunk meshes, typically a renderer. Calls are
// made from the goroutine driving the Scheduler.
type MeshSink interface {
	// SetMesh assigns the mesh of the chunk at pos.
	SetMesh(pos ChunkPos, m *Mesh)
	// ClearMesh removes the mesh of an evicted chunk.
	ClearMesh(pos ChunkPos)
}

// ColliderSink consumes outline polylines, typically a physics world. The
// polylines of one chunk arrive in trace order, after its mesh. Stitching
// open polylines across chunk borders is up to the sink.
type ColliderSink interface {
	// AddPolyline adds one collision outline to the chunk at pos.
	AddPolyline(pos ChunkPos, p Polyline)
	// ClearPolylines removes every outline of an evicted chunk.
	ClearPolylines(pos ChunkPos)
}

type nopMeshSink struct{}

func (nopMeshSink) SetMesh(ChunkPos, *Mesh) {}
func (nopMeshSink) ClearMesh(ChunkPos)      {}

type nopColliderSink struct{}

func (nopColliderSink) AddPolyline(ChunkPos, Polyline) {}
func (nopColliderSink) ClearPolylines(ChunkPos)        {}
