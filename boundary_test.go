package terra

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	pA = mgl64.Vec2{0, 0}
	pB = mgl64.Vec2{1, 0}
	pC = mgl64.Vec2{1, 1}
	pD = mgl64.Vec2{0, 1}
	pX = mgl64.Vec2{0.5, 0.5}
)

func totalSegments(lines []Polyline) int {
	n := 0
	for _, l := range lines {
		n += l.Segments()
	}
	return n
}

func TestPolylineSegments(t *testing.T) {
	tests := []struct {
		pl   Polyline
		want int
	}{
		{Polyline{}, 0},
		{Polyline{Points: []mgl64.Vec2{pA}}, 0},
		{Polyline{Points: []mgl64.Vec2{pA, pB, pC}}, 2},
		{Polyline{Points: []mgl64.Vec2{pA, pB, pC}, Closed: true}, 3},
	}
	for _, tt := range tests {
		if got := tt.pl.Segments(); got != tt.want {
			t.Errorf("%+v.Segments() = %d, want %d", tt.pl, got, tt.want)
		}
	}
}

func TestTraceCycle(t *testing.T) {
	g := NewBoundaryGraph(4)
	g.AddEdge(pA, pB)
	g.AddEdge(pB, pC)
	g.AddEdge(pC, pD)
	g.AddEdge(pD, pA)

	lines := g.Trace()
	if len(lines) != 1 {
		t.Fatalf("len(Trace()) = %d, want 1", len(lines))
	}
	want := Polyline{Points: []mgl64.Vec2{pA, pB, pC, pD}, Closed: true}
	if !reflect.DeepEqual(lines[0], want) {
		t.Errorf("Trace() = %+v, want %+v", lines[0], want)
	}
}

func TestTraceChainStartsAtSource(t *testing.T) {
	// Edges arrive out of order; the chain must still come out whole.
	g := NewBoundaryGraph(0)
	g.AddEdge(pB, pC)
	g.AddEdge(pA, pB)
	g.AddEdge(pC, pD)

	lines := g.Trace()
	if len(lines) != 1 {
		t.Fatalf("len(Trace()) = %d, want 1: %+v", len(lines), lines)
	}
	want := Polyline{Points: []mgl64.Vec2{pA, pB, pC, pD}}
	if !reflect.DeepEqual(lines[0], want) {
		t.Errorf("Trace() = %+v, want %+v", lines[0], want)
	}
}

func TestTraceChainsBeforeCycles(t *testing.T) {
	g := NewBoundaryGraph(0)
	// Cycle first in insertion order.
	g.AddEdge(mgl64.Vec2{10, 10}, mgl64.Vec2{11, 10})
	g.AddEdge(mgl64.Vec2{11, 10}, mgl64.Vec2{10, 11})
	g.AddEdge(mgl64.Vec2{10, 11}, mgl64.Vec2{10, 10})
	g.AddEdge(pA, pB)

	lines := g.Trace()
	if len(lines) != 2 {
		t.Fatalf("len(Trace()) = %d, want 2", len(lines))
	}
	if lines[0].Closed || !lines[1].Closed {
		t.Errorf("Trace() closed flags = %v, %v, want open then closed", lines[0].Closed, lines[1].Closed)
	}
	if got := totalSegments(lines); got != g.Len() {
		t.Errorf("segments = %d, want %d", got, g.Len())
	}
}

func TestTraceMultipleOutEdges(t *testing.T) {
	// Two chains cross at pX, as when crossings coincide on a sample that
	// equals the threshold.
	g := NewBoundaryGraph(0)
	g.AddEdge(pA, pX)
	g.AddEdge(pX, pC)
	g.AddEdge(pB, pX)
	g.AddEdge(pX, pD)

	lines := g.Trace()
	want := []Polyline{
		{Points: []mgl64.Vec2{pA, pX, pC}},
		{Points: []mgl64.Vec2{pB, pX, pD}},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Trace() = %+v, want %+v", lines, want)
	}
}

func TestTraceFigureEight(t *testing.T) {
	g := NewBoundaryGraph(0)
	g.AddEdge(pX, pA)
	g.AddEdge(pA, pB)
	g.AddEdge(pB, pX)
	g.AddEdge(pX, pC)
	g.AddEdge(pC, pD)
	g.AddEdge(pD, pX)

	lines := g.Trace()
	if len(lines) != 1 {
		t.Fatalf("len(Trace()) = %d, want 1: %+v", len(lines), lines)
	}
	if !lines[0].Closed {
		t.Error("figure eight traced open")
	}
	if got := totalSegments(lines); got != 6 {
		t.Errorf("segments = %d, want 6", got)
	}
}

func TestAddEdgeDropsZeroLength(t *testing.T) {
	g := NewBoundaryGraph(0)
	if g.AddEdge(pA, pA) {
		t.Error("AddEdge(p, p) = true, want false")
	}
	if g.Len() != 0 || g.Nodes() != 0 {
		t.Errorf("Len() = %d, Nodes() = %d, want 0, 0", g.Len(), g.Nodes())
	}
	if lines := g.Trace(); lines != nil {
		t.Errorf("Trace() = %v, want nil", lines)
	}
}

func TestBoundaryGraphQueries(t *testing.T) {
	g := NewBoundaryGraph(0)
	g.AddEdge(pA, pB)
	g.AddEdge(pB, pC)

	if g.Nodes() != 3 {
		t.Errorf("Nodes() = %d, want 3", g.Nodes())
	}
	if next, ok := g.Next(pA); !ok || next != pB {
		t.Errorf("Next(A) = %v, %v, want %v, true", next, ok, pB)
	}
	if _, ok := g.Next(pC); ok {
		t.Error("Next(C) found an edge")
	}
	if _, ok := g.Next(pX); ok {
		t.Error("Next(unknown) found an edge")
	}

	want := []BoundaryEdge{{pA, pB}, {pB, pC}}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}

	g.Reset()
	if g.Len() != 0 || g.Nodes() != 0 {
		t.Errorf("after Reset: Len() = %d, Nodes() = %d", g.Len(), g.Nodes())
	}
	if _, ok := g.Next(pA); ok {
		t.Error("Next(A) found an edge after Reset")
	}
}
