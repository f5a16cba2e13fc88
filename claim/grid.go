package claim

import "sort"

type cellState uint8

const (
	cellEmpty cellState = iota
	cellFilled
	cellExcluded
)

// cellGrid is a coordinate-compressed cell grid over one cluster. The axis
// coordinate lists hold every distinct rectangle edge value, so the grid has
// exactly (len(xs)-1) x (len(ys)-1) cells and every input rectangle covers a
// whole number of cells.
type cellGrid struct {
	xs, ys []float64
	nx, ny int
	cells  []cellState
}

// newCellGrid rasterizes the filled rectangles onto a compressed grid and
// then overwrites every cell covered by an excluded rectangle. Exclusion
// always wins over fill.
func newCellGrid(filled, excluded []Rect) *cellGrid {
	var xs, ys []float64
	for _, r := range filled {
		xs = append(xs, r.MinX, r.MaxX)
		ys = append(ys, r.MinY, r.MaxY)
	}
	for _, r := range excluded {
		xs = append(xs, r.MinX, r.MaxX)
		ys = append(ys, r.MinY, r.MaxY)
	}

	g := &cellGrid{
		xs: sortedUnique(xs),
		ys: sortedUnique(ys),
	}
	g.nx = len(g.xs) - 1
	g.ny = len(g.ys) - 1
	if g.nx < 1 || g.ny < 1 {
		g.nx, g.ny = 0, 0
		return g
	}
	g.cells = make([]cellState, g.nx*g.ny)

	for _, r := range filled {
		g.mark(r, cellFilled)
	}
	for _, r := range excluded {
		g.mark(r, cellExcluded)
	}
	return g
}

func sortedUnique(vs []float64) []float64 {
	if len(vs) == 0 {
		return nil
	}
	sort.Float64s(vs)
	out := vs[:1]
	for _, v := range vs[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func (g *cellGrid) at(i, j int) cellState {
	if i < 0 || i >= g.nx || j < 0 || j >= g.ny {
		return cellEmpty
	}
	return g.cells[j*g.nx+i]
}

func (g *cellGrid) set(i, j int, s cellState) {
	g.cells[j*g.nx+i] = s
}

// filled reports whether a cell belongs to the claim region. Excluded cells
// are never part of it.
func (g *cellGrid) filled(i, j int) bool {
	return g.at(i, j) == cellFilled
}

// mark sets every cell covered by r to state. Rectangle edges are members of
// the coordinate lists, so the covered cell range is exact.
func (g *cellGrid) mark(r Rect, s cellState) {
	if r.Empty() {
		return
	}
	i0 := sort.SearchFloat64s(g.xs, r.MinX)
	i1 := sort.SearchFloat64s(g.xs, r.MaxX)
	j0 := sort.SearchFloat64s(g.ys, r.MinY)
	j1 := sort.SearchFloat64s(g.ys, r.MaxY)
	for j := j0; j < j1; j++ {
		for i := i0; i < i1; i++ {
			g.set(i, j, s)
		}
	}
}

// closeGaps fills, per row and per column, any run of empty cells that sits
// between two filled cells, spans less than maxGap plane units, and contains
// no excluded cell. Excluded cells block closure so another guild's claim is
// never painted over.
func (g *cellGrid) closeGaps(maxGap float64) {
	// Rows.
	for j := 0; j < g.ny; j++ {
		prev := -1
		for i := 0; i < g.nx; i++ {
			if !g.filled(i, j) {
				continue
			}
			if prev >= 0 && i > prev+1 {
				g.tryCloseRun(prev+1, i, j, maxGap, true)
			}
			prev = i
		}
	}
	// Columns.
	for i := 0; i < g.nx; i++ {
		prev := -1
		for j := 0; j < g.ny; j++ {
			if !g.filled(i, j) {
				continue
			}
			if prev >= 0 && j > prev+1 {
				g.tryCloseRun(prev+1, j, i, maxGap, false)
			}
			prev = j
		}
	}
}

// tryCloseRun fills the half-open cell range [from, to) along a row
// (horizontal=true, fixed is the row index) or column when the gap qualifies.
func (g *cellGrid) tryCloseRun(from, to, fixed int, maxGap float64, horizontal bool) {
	var width float64
	if horizontal {
		width = g.xs[to] - g.xs[from]
	} else {
		width = g.ys[to] - g.ys[from]
	}
	if width >= maxGap {
		return
	}

	for k := from; k < to; k++ {
		var s cellState
		if horizontal {
			s = g.at(k, fixed)
		} else {
			s = g.at(fixed, k)
		}
		if s != cellEmpty {
			return
		}
	}

	for k := from; k < to; k++ {
		if horizontal {
			g.set(k, fixed, cellFilled)
		} else {
			g.set(fixed, k, cellFilled)
		}
	}
}

// fillEnclosedHoles flood-fills the exterior, starting from every excluded
// cell and every non-filled cell on the grid boundary, moving through
// non-filled cells. Empty cells the flood never reaches are air pockets fully
// surrounded by the cluster's own territory and get filled. Holes adjacent to
// an excluded region stay open because the flood passes through exclusions.
func (g *cellGrid) fillEnclosedHoles() {
	if g.nx == 0 || g.ny == 0 {
		return
	}

	visited := make([]bool, len(g.cells))
	var queue [][2]int

	enqueue := func(i, j int) {
		idx := j*g.nx + i
		if visited[idx] || g.at(i, j) == cellFilled {
			return
		}
		visited[idx] = true
		queue = append(queue, [2]int{i, j})
	}

	for i := 0; i < g.nx; i++ {
		enqueue(i, 0)
		enqueue(i, g.ny-1)
	}
	for j := 0; j < g.ny; j++ {
		enqueue(0, j)
		enqueue(g.nx-1, j)
	}
	for j := 0; j < g.ny; j++ {
		for i := 0; i < g.nx; i++ {
			if g.at(i, j) == cellExcluded {
				enqueue(i, j)
			}
		}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		i, j := c[0], c[1]
		if i > 0 {
			enqueue(i-1, j)
		}
		if i < g.nx-1 {
			enqueue(i+1, j)
		}
		if j > 0 {
			enqueue(i, j-1)
		}
		if j < g.ny-1 {
			enqueue(i, j+1)
		}
	}

	for j := 0; j < g.ny; j++ {
		for i := 0; i < g.nx; i++ {
			idx := j*g.nx + i
			if g.cells[idx] == cellEmpty && !visited[idx] {
				g.cells[idx] = cellFilled
			}
		}
	}
}

// hasFilled reports whether any cell belongs to the claim region.
func (g *cellGrid) hasFilled() bool {
	for _, s := range g.cells {
		if s == cellFilled {
			return true
		}
	}
	return false
}

// centroid returns the area-weighted center of mass of the filled cells and
// whether any filled cell exists. Unlike the bounding-box center this lands
// inside the dominant sub-region of an irregular shape.
func (g *cellGrid) centroid() (Point, bool) {
	var area, sx, sy float64
	for j := 0; j < g.ny; j++ {
		h := g.ys[j+1] - g.ys[j]
		cy := (g.ys[j] + g.ys[j+1]) / 2
		for i := 0; i < g.nx; i++ {
			if !g.filled(i, j) {
				continue
			}
			a := (g.xs[i+1] - g.xs[i]) * h
			area += a
			sx += a * (g.xs[i] + g.xs[i+1]) / 2
			sy += a * cy
		}
	}
	if area == 0 {
		return Point{}, false
	}
	return Point{X: sx / area, Y: sy / area}, true
}

// bound returns the outer extent of the grid.
func (g *cellGrid) bound() Rect {
	if g.nx == 0 || g.ny == 0 {
		return Rect{}
	}
	return Rect{MinX: g.xs[0], MaxX: g.xs[g.nx], MinY: g.ys[0], MaxY: g.ys[g.ny]}
}

// rectFilled reports whether r lies entirely inside the grid and every cell
// it overlaps is filled and not excluded.
func (g *cellGrid) rectFilled(r Rect) bool {
	if g.nx == 0 || g.ny == 0 || r.Empty() {
		return false
	}
	b := g.bound()
	if r.MinX < b.MinX || r.MaxX > b.MaxX || r.MinY < b.MinY || r.MaxY > b.MaxY {
		return false
	}

	i0 := cellIndexAtOrBefore(g.xs, r.MinX)
	j0 := cellIndexAtOrBefore(g.ys, r.MinY)
	for j := j0; j < g.ny && g.ys[j] < r.MaxY; j++ {
		for i := i0; i < g.nx && g.xs[i] < r.MaxX; i++ {
			if !g.filled(i, j) {
				return false
			}
		}
	}
	return true
}

// cellIndexAtOrBefore returns the index of the cell whose span contains v,
// i.e. the largest i with coords[i] <= v, clamped to a valid cell index.
func cellIndexAtOrBefore(coords []float64, v float64) int {
	idx := sort.SearchFloat64s(coords, v)
	if idx < len(coords) && coords[idx] == v {
		return idx
	}
	if idx > 0 {
		idx--
	}
	return idx
}
