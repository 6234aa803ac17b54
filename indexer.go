package terra

import "github.com/go-gl/mathgl/mgl64"

// VertexIndexer deduplicates positions into a dense, insertion-ordered
// array. Positions are compared by exact equality: two cells that share an
// edge compute its crossing with the same operands and therefore the same
// bits, so no tolerance is needed (and a tolerance would silently merge
// distinct vertices).
//
// A VertexIndexer is owned by one builder and is not safe for concurrent use.
type VertexIndexer struct {
	index     map[mgl64.Vec2]int32
	positions []mgl64.Vec2
}

// NewVertexIndexer creates an indexer sized for about capacity vertices.
func NewVertexIndexer(capacity int) *VertexIndexer {
	return &VertexIndexer{
		index:     make(map[mgl64.Vec2]int32, capacity),
		positions: make([]mgl64.Vec2, 0, capacity),
	}
}

// Index returns the index of pos, appending it on first sight.
func (vi *VertexIndexer) Index(pos mgl64.Vec2) int32 {
	if i, ok := vi.index[pos]; ok {
		return i
	}
	i := int32(len(vi.positions))
	vi.positions = append(vi.positions, pos)
	vi.index[pos] = i
	return i
}

// Lookup returns the index of pos without inserting it.
func (vi *VertexIndexer) Lookup(pos mgl64.Vec2) (int32, bool) {
	i, ok := vi.index[pos]
	return i, ok
}

// Len returns the number of distinct positions.
func (vi *VertexIndexer) Len() int { return len(vi.positions) }

// Positions returns the deduplicated positions in insertion order. The
// slice is owned by the indexer until the next Reset.
func (vi *VertexIndexer) Positions() []mgl64.Vec2 { return vi.positions }

// Reset empties the indexer, keeping its storage for reuse.
func (vi *VertexIndexer) Reset() {
	clear(vi.index)
	vi.positions = vi.positions[:0]
}
