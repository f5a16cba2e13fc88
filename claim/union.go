package claim

// UnionOutline is the merged shape of one territory cluster: the path string
// for rendering, the raw loops for exports that need real coordinates, and
// the cell grid the shape was traced from. The grid is nil on the
// single-rectangle fast path.
type UnionOutline struct {
	Path  string
	Loops []Ring

	grid   *cellGrid
	single Rect
}

// BuildUnionOutline merges the filled rectangles into one outlined region.
// Excluded rectangles are carved out of the region and also block gap
// closure, so the shape never paints over them. Gaps narrower than gapClose
// plane units between filled cells are bridged, and fully enclosed air
// pockets are filled so the outline has no cosmetic holes.
//
// A single filled rectangle untouched by any exclusion skips rasterization
// entirely and returns the rectangle's own four-corner loop.
//
// ok is false when exclusions swallow the region whole.
func BuildUnionOutline(filled, excluded []Rect, gapClose float64) (UnionOutline, bool) {
	rects := nonEmpty(filled)
	if len(rects) == 0 {
		return UnionOutline{}, false
	}

	if len(rects) == 1 && !anyIntersects(excluded, rects[0]) {
		r := rects[0]
		return UnionOutline{
			Path:   rectPath(r),
			Loops:  []Ring{rectRing(r)},
			single: r,
		}, true
	}

	g := newCellGrid(rects, nonEmpty(excluded))
	g.closeGaps(gapClose)
	g.fillEnclosedHoles()

	if !g.hasFilled() {
		return UnionOutline{}, false
	}

	path, loops := traceOutline(g)
	return UnionOutline{Path: path, Loops: loops, grid: g}, true
}

// Centroid returns the area-weighted center of the region.
func (u *UnionOutline) Centroid() Point {
	if u.grid == nil {
		return u.single.Center()
	}
	c, ok := u.grid.centroid()
	if !ok {
		return u.grid.bound().Center()
	}
	return c
}

// Area returns the total filled area of the region.
func (u *UnionOutline) Area() float64 {
	if u.grid == nil {
		return u.single.Area()
	}
	var area float64
	for j := 0; j < u.grid.ny; j++ {
		h := u.grid.ys[j+1] - u.grid.ys[j]
		for i := 0; i < u.grid.nx; i++ {
			if u.grid.filled(i, j) {
				area += (u.grid.xs[i+1] - u.grid.xs[i]) * h
			}
		}
	}
	return area
}

// Bound returns the bounding box of the region.
func (u *UnionOutline) Bound() Rect {
	if u.grid == nil {
		return u.single
	}
	return u.grid.bound()
}

// ContainsRect reports whether r lies entirely within the filled region.
func (u *UnionOutline) ContainsRect(r Rect) bool {
	if u.grid == nil {
		return u.single.ContainsRect(r)
	}
	return u.grid.rectFilled(r)
}

func nonEmpty(rects []Rect) []Rect {
	out := make([]Rect, 0, len(rects))
	for _, r := range rects {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

func anyIntersects(rects []Rect, target Rect) bool {
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		if r.MinX < target.MaxX && target.MinX < r.MaxX &&
			r.MinY < target.MaxY && target.MinY < r.MaxY {
			return true
		}
	}
	return false
}
