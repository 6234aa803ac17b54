package terra

import "github.com/go-gl/mathgl/mgl64"

// Polyline is one traced piece of a chunk outline. A closed polyline is a
// cycle and does not repeat its first point at the end; an open one ends at
// the chunk border, where the neighbouring chunk continues it.
type Polyline struct {
	Points []mgl64.Vec2
	Closed bool
}

// Segments returns the number of line segments in p.
func (p Polyline) Segments() int {
	switch {
	case len(p.Points) < 2:
		return 0
	case p.Closed:
		return len(p.Points)
	default:
		return len(p.Points) - 1
	}
}

// BoundaryEdge is a directed outline segment with solid on its left.
type BoundaryEdge struct {
	From, To mgl64.Vec2
}

type graphEdge struct {
	from, to int32
	next     int32 // next out-edge of the same node, -1 at the end
}

// BoundaryGraph records directed outline segments between deduplicated
// points. For well-formed input each node has at most one outgoing edge;
// the graph still accepts more (a sample exactly at the threshold can make
// several crossings coincide) and keeps them in insertion order.
//
// A BoundaryGraph is not safe for concurrent use.
type BoundaryGraph struct {
	nodeIndex map[mgl64.Vec2]int32
	nodes     []mgl64.Vec2
	firstOut  []int32
	lastOut   []int32
	inDegree  []int32
	edges     []graphEdge
}

// NewBoundaryGraph creates a graph sized for about capacity edges.
func NewBoundaryGraph(capacity int) *BoundaryGraph {
	return &BoundaryGraph{
		nodeIndex: make(map[mgl64.Vec2]int32, capacity),
		nodes:     make([]mgl64.Vec2, 0, capacity),
		firstOut:  make([]int32, 0, capacity),
		lastOut:   make([]int32, 0, capacity),
		inDegree:  make([]int32, 0, capacity),
		edges:     make([]graphEdge, 0, capacity),
	}
}

func (g *BoundaryGraph) node(pos mgl64.Vec2) int32 {
	if n, ok := g.nodeIndex[pos]; ok {
		return n
	}
	n := int32(len(g.nodes))
	g.nodeIndex[pos] = n
	g.nodes = append(g.nodes, pos)
	g.firstOut = append(g.firstOut, -1)
	g.lastOut = append(g.lastOut, -1)
	g.inDegree = append(g.inDegree, 0)
	return n
}

// AddEdge records the segment from -> to. Zero-length segments carry no
// outline and are dropped; AddEdge reports whether the edge was kept.
func (g *BoundaryGraph) AddEdge(from, to mgl64.Vec2) bool {
	if from == to {
		return false
	}
	f, t := g.node(from), g.node(to)
	e := int32(len(g.edges))
	g.edges = append(g.edges, graphEdge{from: f, to: t, next: -1})
	if g.lastOut[f] < 0 {
		g.firstOut[f] = e
	} else {
		g.edges[g.lastOut[f]].next = e
	}
	g.lastOut[f] = e
	g.inDegree[t]++
	return true
}

// Len returns the number of edges.
func (g *BoundaryGraph) Len() int { return len(g.edges) }

// Nodes returns the number of distinct points.
func (g *BoundaryGraph) Nodes() int { return len(g.nodes) }

// Next returns the target of the first edge leaving pos.
func (g *BoundaryGraph) Next(pos mgl64.Vec2) (mgl64.Vec2, bool) {
	n, ok := g.nodeIndex[pos]
	if !ok || g.firstOut[n] < 0 {
		return mgl64.Vec2{}, false
	}
	return g.nodes[g.edges[g.firstOut[n]].to], true
}

// Edges returns a copy of all edges in insertion order.
func (g *BoundaryGraph) Edges() []BoundaryEdge {
	out := make([]BoundaryEdge, len(g.edges))
	for i, e := range g.edges {
		out[i] = BoundaryEdge{From: g.nodes[e.from], To: g.nodes[e.to]}
	}
	return out
}

// Trace walks the graph into polylines. Open chains are traced first,
// starting from points with no incoming edge, so that each chain comes out
// whole; the remaining edges form cycles. Every edge appears in exactly one
// polyline and no edge is walked twice.
func (g *BoundaryGraph) Trace() []Polyline {
	if len(g.edges) == 0 {
		return nil
	}

	visited := make([]bool, len(g.edges))
	var lines []Polyline

	walk := func(e int32) {
		start := g.edges[e].from
		pts := []mgl64.Vec2{g.nodes[start]}
		last := start
		for e >= 0 {
			visited[e] = true
			last = g.edges[e].to
			pts = append(pts, g.nodes[last])
			e = g.nextUnvisited(last, visited)
		}
		closed := last == start
		if closed {
			pts = pts[:len(pts)-1]
		}
		lines = append(lines, Polyline{Points: pts, Closed: closed})
	}

	for i := range g.edges {
		if !visited[i] && g.inDegree[g.edges[i].from] == 0 {
			walk(int32(i))
		}
	}
	for i := range g.edges {
		if !visited[i] {
			walk(int32(i))
		}
	}
	return lines
}

func (g *BoundaryGraph) nextUnvisited(n int32, visited []bool) int32 {
	for e := g.firstOut[n]; e >= 0; e = g.edges[e].next {
		if !visited[e] {
			return e
		}
	}
	return -1
}

// Reset empties the graph, keeping its storage for reuse.
func (g *BoundaryGraph) Reset() {
	clear(g.nodeIndex)
	g.nodes = g.nodes[:0]
	g.firstOut = g.firstOut[:0]
	g.lastOut = g.lastOut[:0]
	g.inDegree = g.inDegree[:0]
	g.edges = g.edges[:0]
}
