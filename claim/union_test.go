package claim

import "testing"

func TestBuildUnionOutlineFastPath(t *testing.T) {
	r := Rect{MinX: 10, MaxX: 110, MinY: 20, MaxY: 80}
	u, ok := BuildUnionOutline([]Rect{r}, nil, 100)
	if !ok {
		t.Fatal("union should succeed")
	}

	if u.Path != rectPath(r) {
		t.Errorf("Path = %q, want %q", u.Path, rectPath(r))
	}
	if len(u.Loops) != 1 || len(u.Loops[0]) != 4 {
		t.Fatalf("Loops = %v, want one four-corner ring", u.Loops)
	}
	if u.Area() != 6000 {
		t.Errorf("Area = %g, want 6000", u.Area())
	}
	if u.Centroid() != r.Center() {
		t.Errorf("Centroid = %+v, want %+v", u.Centroid(), r.Center())
	}
	if !u.ContainsRect(Rect{MinX: 20, MaxX: 100, MinY: 30, MaxY: 70}) {
		t.Error("inner rect should be contained")
	}

	// A distant exclusion does not disturb the fast path.
	far := Rect{MinX: 500, MaxX: 600, MinY: 500, MaxY: 600}
	u2, ok := BuildUnionOutline([]Rect{r}, []Rect{far}, 100)
	if !ok || u2.Path != u.Path {
		t.Error("non-intersecting exclusion should keep the fast path")
	}
}

func TestBuildUnionOutlineMergesNearRects(t *testing.T) {
	a := Rect{MinX: 0, MaxX: 50, MinY: 0, MaxY: 50}
	b := Rect{MinX: 149, MaxX: 199, MinY: 0, MaxY: 50}

	u, ok := BuildUnionOutline([]Rect{a, b}, nil, 100)
	if !ok {
		t.Fatal("union should succeed")
	}
	if len(u.Loops) != 1 {
		t.Fatalf("99-unit gap should merge into one loop, got %d", len(u.Loops))
	}
	if got := u.Bound(); got != (Rect{MinX: 0, MaxX: 199, MinY: 0, MaxY: 50}) {
		t.Errorf("Bound = %+v", got)
	}
	// The closed gap belongs to the region.
	if !u.ContainsRect(Rect{MinX: 60, MaxX: 140, MinY: 10, MaxY: 40}) {
		t.Error("closed gap should be part of the region")
	}
}

func TestBuildUnionOutlineKeepsWideGapSplit(t *testing.T) {
	a := Rect{MinX: 0, MaxX: 50, MinY: 0, MaxY: 50}
	b := Rect{MinX: 150, MaxX: 200, MinY: 0, MaxY: 50}

	u, ok := BuildUnionOutline([]Rect{a, b}, nil, 100)
	if !ok {
		t.Fatal("union should succeed")
	}
	if len(u.Loops) != 2 {
		t.Fatalf("100-unit gap should stay split, got %d loops", len(u.Loops))
	}
}

func TestBuildUnionOutlinePunchOut(t *testing.T) {
	big := Rect{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}
	hole := Rect{MinX: 40, MaxX: 50, MinY: 40, MaxY: 50}

	u, ok := BuildUnionOutline([]Rect{big}, []Rect{hole}, 100)
	if !ok {
		t.Fatal("union should succeed")
	}
	if len(u.Loops) != 2 {
		t.Fatalf("expected outer loop plus hole, got %d loops", len(u.Loops))
	}
	if u.Area() != 9900 {
		t.Errorf("Area = %g, want 9900", u.Area())
	}
	if u.ContainsRect(Rect{MinX: 41, MaxX: 49, MinY: 41, MaxY: 49}) {
		t.Error("carved hole must not be part of the region")
	}
	if !u.ContainsRect(Rect{MinX: 5, MaxX: 35, MinY: 5, MaxY: 35}) {
		t.Error("area away from the hole should remain filled")
	}
}

func TestBuildUnionOutlineSwallowedRegion(t *testing.T) {
	r := Rect{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	if _, ok := BuildUnionOutline([]Rect{r}, []Rect{r}, 100); ok {
		t.Error("fully excluded region should report ok=false")
	}
}

func TestBuildUnionOutlineNoInput(t *testing.T) {
	if _, ok := BuildUnionOutline(nil, nil, 100); ok {
		t.Error("empty input should report ok=false")
	}
	degenerate := Rect{MinX: 5, MaxX: 5, MinY: 0, MaxY: 10}
	if _, ok := BuildUnionOutline([]Rect{degenerate}, nil, 100); ok {
		t.Error("degenerate rectangles alone should report ok=false")
	}
}

func TestBuildUnionOutlineDeterministic(t *testing.T) {
	filled := []Rect{
		{MinX: 0, MaxX: 60, MinY: 0, MaxY: 60},
		{MinX: 90, MaxX: 150, MinY: 20, MaxY: 80},
		{MinX: 40, MaxX: 100, MinY: 120, MaxY: 180},
	}
	excluded := []Rect{{MinX: 20, MaxX: 40, MinY: 20, MaxY: 40}}

	first, ok := BuildUnionOutline(filled, excluded, 100)
	if !ok {
		t.Fatal("union should succeed")
	}
	for i := 0; i < 5; i++ {
		again, ok := BuildUnionOutline(filled, excluded, 100)
		if !ok || again.Path != first.Path {
			t.Fatalf("run %d: path differs\nfirst %q\nagain %q", i, first.Path, again.Path)
		}
	}
}
