package terra

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// CaseIndex
// =============================================================================

func TestCaseIndex(t *testing.T) {
	const lo, hi = 0.1, 0.9
	tests := []struct {
		name    string
		corners Corners
		want    uint8
	}{
		{"all open", Corners{hi, hi, hi, hi}, 0},
		{"bottom left", Corners{hi, hi, hi, lo}, 1},
		{"bottom right", Corners{hi, hi, lo, hi}, 2},
		{"top right", Corners{hi, lo, hi, hi}, 4},
		{"top left", Corners{lo, hi, hi, hi}, 8},
		{"saddle 5", Corners{hi, lo, hi, lo}, 5},
		{"saddle 10", Corners{lo, hi, lo, hi}, 10},
		{"bottom row", Corners{hi, hi, lo, lo}, 3},
		{"top row", Corners{lo, lo, hi, hi}, 12},
		{"all solid", Corners{lo, lo, lo, lo}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CaseIndex(tt.corners, 0.5); got != tt.want {
				t.Errorf("CaseIndex(%+v) = %d, want %d", tt.corners, got, tt.want)
			}
		})
	}
}

func TestCaseIndexThresholdIsOpen(t *testing.T) {
	// A sample exactly at the threshold is not solid.
	if got := CaseIndex(Corners{0.5, 0.5, 0.5, 0.5}, 0.5); got != 0 {
		t.Errorf("CaseIndex(all at threshold) = %d, want 0", got)
	}
}

func TestIsSaddle(t *testing.T) {
	for idx := range uint8(16) {
		want := idx == 5 || idx == 10
		if got := IsSaddle(idx); got != want {
			t.Errorf("IsSaddle(%d) = %v, want %v", idx, got, want)
		}
	}
}

func TestLookupCasePanicsOutsideTable(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("lookupCase(16) did not panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDegenerateTopology) {
			t.Errorf("panic value = %v, want ErrDegenerateTopology", r)
		}
	}()
	lookupCase(16)
}

// =============================================================================
// Classify
// =============================================================================

func TestClassifySingleSolidCorner(t *testing.T) {
	g := gridFrom(t, 4, 4, func(x, y int) float64 {
		if x == 0 && y == 0 {
			return 0.1
		}
		return 0.9
	})

	c := Classify(g, 0, 0, 0.5)
	if c.Case != 8 {
		t.Fatalf("Classify(0, 0).Case = %d, want 8", c.Case)
	}
	if got := len(c.Triangles()); got != 1 {
		t.Errorf("len(Triangles()) = %d, want 1", got)
	}

	want := InverseLerp(0.1, 0.9, 0.5)
	if !near(want, 0.5) {
		t.Fatalf("InverseLerp(0.1, 0.9, 0.5) = %v, want 0.5", want)
	}
	if p := c.Resolve(EdgeTop, 1); !nearVec(p, mgl64.Vec2{0.5, 0}) {
		t.Errorf("Resolve(EdgeTop) = %v, want (0.5, 0)", p)
	}
	if p := c.Resolve(EdgeLeft, 1); !nearVec(p, mgl64.Vec2{0, 0.5}) {
		t.Errorf("Resolve(EdgeLeft) = %v, want (0, 0.5)", p)
	}

	if c := Classify(g, 1, 1, 0.5); c.Case != 0 {
		t.Errorf("Classify(1, 1).Case = %d, want 0", c.Case)
	}
}

func TestClassifySaddleDeterminism(t *testing.T) {
	corners := Corners{TopLeft: 0.2, TopRight: 0.8, BottomRight: 0.2, BottomLeft: 0.8}
	g := cellGrid(t, corners)

	first := Classify(g, 0, 0, 0.5)
	if first.Case != 10 {
		t.Fatalf("Case = %d, want 10", first.Case)
	}
	if first.CenterSolid {
		t.Fatal("CenterSolid = true for centre average 0.5 at threshold 0.5")
	}
	for i := range 100 {
		c := Classify(g, 0, 0, 0.5)
		if c.Case != first.Case || c.CenterSolid != first.CenterSolid {
			t.Fatalf("iteration %d: got (%d, %v), want (%d, %v)", i, c.Case, c.CenterSolid, first.Case, first.CenterSolid)
		}
		if got := len(c.Triangles()); got != 4 {
			t.Fatalf("iteration %d: len(Triangles()) = %d, want 4", i, got)
		}
	}
}

func TestClassifySaddleResolutions(t *testing.T) {
	tests := []struct {
		name        string
		corners     Corners
		wantCase    uint8
		centerSolid bool
		triangles   int
		outline     int
	}{
		{"10 split", Corners{0.2, 0.8, 0.2, 0.8}, 10, false, 4, 4},
		{"10 joined", Corners{0.2, 0.6, 0.2, 0.6}, 10, true, 6, 2},
		{"5 split", Corners{0.9, 0.3, 0.9, 0.3}, 5, false, 4, 4},
		{"5 joined", Corners{0.7, 0.1, 0.7, 0.1}, 5, true, 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(cellGrid(t, tt.corners), 0, 0, 0.5)
			if c.Case != tt.wantCase {
				t.Fatalf("Case = %d, want %d", c.Case, tt.wantCase)
			}
			if c.CenterSolid != tt.centerSolid {
				t.Errorf("CenterSolid = %v, want %v", c.CenterSolid, tt.centerSolid)
			}
			if got := len(c.Triangles()); got != tt.triangles {
				t.Errorf("len(Triangles()) = %d, want %d", got, tt.triangles)
			}
			if got := len(c.Outline()); got != tt.outline {
				t.Errorf("len(Outline()) = %d, want %d", got, tt.outline)
			}
		})
	}
}

// =============================================================================
// Resolve
// =============================================================================

func TestResolveFixedPoints(t *testing.T) {
	g := gridAt(t, 2, 2, 10, 20, uniform(0.9))
	c := Classify(g, 1, 0, 0.5)

	tests := []struct {
		p    SquarePoint
		want mgl64.Vec2
	}{
		{CornerTopLeft, mgl64.Vec2{22, 40}},
		{CornerTopRight, mgl64.Vec2{24, 40}},
		{CornerBottomRight, mgl64.Vec2{24, 42}},
		{CornerBottomLeft, mgl64.Vec2{22, 42}},
		{Center, mgl64.Vec2{23, 41}},
	}
	for _, tt := range tests {
		if got := c.Resolve(tt.p, 2); got != tt.want {
			t.Errorf("Resolve(%v, 2) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestResolveCenterInterpolated(t *testing.T) {
	// Centre average 0.5 exactly at threshold: open. The crossing toward a
	// corner at 0.2 sits at the centre itself (t = 0).
	c := Classify(cellGrid(t, Corners{0.2, 0.8, 0.2, 0.8}), 0, 0, 0.5)
	if p := c.Resolve(CenterTopLeft, 1); !nearVec(p, mgl64.Vec2{0.5, 0.5}) {
		t.Errorf("Resolve(CenterTopLeft) = %v, want (0.5, 0.5)", p)
	}

	// Centre average 0.55; toward a corner at 0.25 the crossing is 1/6 of
	// the way from the centre.
	c = Classify(cellGrid(t, Corners{0.25, 0.85, 0.25, 0.85}), 0, 0, 0.5)
	want := 0.5 + (1.0-0.5)*(1.0/6)
	if p := c.Resolve(CenterBottomRight, 1); !nearVec(p, mgl64.Vec2{want, want}) {
		t.Errorf("Resolve(CenterBottomRight) = %v, want (%v, %v)", p, want, want)
	}
}

func TestSharedEdgeIsBitIdentical(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	g := gridFrom(t, 6, 6, func(int, int) float64 { return r.Float64() })

	for y := range 6 {
		for x := range 5 {
			left := Classify(g, x, y, 0.5)
			right := Classify(g, x+1, y, 0.5)
			if left.Resolve(EdgeRight, 0.37) != right.Resolve(EdgeLeft, 0.37) {
				t.Errorf("cells (%d,%d)/(%d,%d): vertical edge crossing differs", x, y, x+1, y)
			}
		}
	}
	for y := range 5 {
		for x := range 6 {
			top := Classify(g, x, y, 0.5)
			bottom := Classify(g, x, y+1, 0.5)
			if top.Resolve(EdgeBottom, 0.37) != bottom.Resolve(EdgeTop, 0.37) {
				t.Errorf("cells (%d,%d)/(%d,%d): horizontal edge crossing differs", x, y, x, y+1)
			}
		}
	}
}

func TestSquarePointString(t *testing.T) {
	if got := EdgeLeft.String(); got != "EdgeLeft" {
		t.Errorf("EdgeLeft.String() = %q", got)
	}
	if got := SquarePoint(99).String(); got != "SquarePoint(99)" {
		t.Errorf("SquarePoint(99).String() = %q", got)
	}
}
