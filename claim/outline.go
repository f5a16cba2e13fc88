package claim

import (
	"strconv"
	"strings"
)

// Directions for boundary edges, in counter-clockwise order.
const (
	dirEast = iota
	dirNorth
	dirWest
	dirSouth
)

var dirVec = [4][2]int{
	{1, 0},  // east
	{0, 1},  // north
	{-1, 0}, // west
	{0, -1}, // south
}

// boundaryEdge is one directed unit edge of the filled-region boundary,
// oriented so the filled side is on the left of the travel direction.
type boundaryEdge struct {
	i, j int // start vertex, in grid-line indices
	dir  int
}

// traceOutline chains the filled-region boundary into closed rectilinear
// loops and renders them as one path string using only M, H, V and Z
// commands. Each filled/unfilled cell transition contributes one directed
// unit edge; edges are chained head to tail, preferring the rightmost turn
// at junction vertices so loops never self-cross.
func traceOutline(g *cellGrid) (string, []Ring) {
	if g.nx == 0 || g.ny == 0 {
		return "", nil
	}

	var edges []boundaryEdge

	// Horizontal boundaries between vertically adjacent cells.
	for j := 0; j <= g.ny; j++ {
		for i := 0; i < g.nx; i++ {
			above := g.filled(i, j)
			below := g.filled(i, j-1)
			if above && !below {
				edges = append(edges, boundaryEdge{i: i, j: j, dir: dirEast})
			} else if below && !above {
				edges = append(edges, boundaryEdge{i: i + 1, j: j, dir: dirWest})
			}
		}
	}
	// Vertical boundaries between horizontally adjacent cells.
	for i := 0; i <= g.nx; i++ {
		for j := 0; j < g.ny; j++ {
			right := g.filled(i, j)
			left := g.filled(i-1, j)
			if left && !right {
				edges = append(edges, boundaryEdge{i: i, j: j, dir: dirNorth})
			} else if right && !left {
				edges = append(edges, boundaryEdge{i: i, j: j + 1, dir: dirSouth})
			}
		}
	}

	if len(edges) == 0 {
		return "", nil
	}

	// Index edges by start vertex for chaining.
	vkey := func(i, j int) int { return j*(g.nx+1) + i }
	outgoing := make(map[int][]int, len(edges))
	for idx, e := range edges {
		k := vkey(e.i, e.j)
		outgoing[k] = append(outgoing[k], idx)
	}

	used := make([]bool, len(edges))
	var loops []Ring
	var path strings.Builder

	for start := range edges {
		if used[start] {
			continue
		}

		ring := g.walkLoop(edges, outgoing, used, start, vkey)
		if len(ring) < 4 {
			continue
		}
		loops = append(loops, ring)
		if path.Len() > 0 {
			path.WriteByte(' ')
		}
		path.WriteString(ringPath(ring))
	}

	return path.String(), loops
}

// walkLoop follows directed edges from the start edge until the walk returns
// to its first vertex, compressing collinear runs as it goes.
func (g *cellGrid) walkLoop(edges []boundaryEdge, outgoing map[int][]int, used []bool, start int, vkey func(i, j int) int) Ring {
	first := edges[start]
	curI, curJ := first.i, first.j
	curDir := first.dir

	ring := Ring{g.vertexPoint(curI, curJ)}
	lastDir := -1

	for steps := 0; steps <= len(edges); steps++ {
		used[edgeAt(edges, outgoing, curI, curJ, curDir, vkey)] = true

		if curDir != lastDir && lastDir != -1 {
			ring = append(ring, g.vertexPoint(curI, curJ))
		}
		lastDir = curDir

		curI += dirVec[curDir][0]
		curJ += dirVec[curDir][1]

		if curI == first.i && curJ == first.j {
			return normalizeRing(ring)
		}

		next := nextEdgeDir(edges, outgoing, used, curI, curJ, curDir, vkey)
		if next == -1 {
			// Open chain; should not happen for a well-formed cell boundary.
			return nil
		}
		curDir = next
	}
	return nil
}

// normalizeRing drops a redundant first vertex left behind when the walk
// started in the middle of a straight run, so every ring begins at a corner.
func normalizeRing(ring Ring) Ring {
	n := len(ring)
	if n < 3 {
		return ring
	}
	sameY := ring[n-1].Y == ring[0].Y && ring[0].Y == ring[1].Y
	sameX := ring[n-1].X == ring[0].X && ring[0].X == ring[1].X
	if sameY || sameX {
		return ring[1:]
	}
	return ring
}

// edgeAt returns the index of the unused-or-used edge starting at the vertex
// with the given direction.
func edgeAt(edges []boundaryEdge, outgoing map[int][]int, i, j, dir int, vkey func(i, j int) int) int {
	for _, idx := range outgoing[vkey(i, j)] {
		if edges[idx].dir == dir {
			return idx
		}
	}
	return -1
}

// nextEdgeDir picks the direction of the next unused edge leaving the vertex,
// preferring right turn, then straight, then left turn relative to the
// incoming direction. The rightmost-turn preference splits saddle vertices
// into separate loops instead of crossing them.
func nextEdgeDir(edges []boundaryEdge, outgoing map[int][]int, used []bool, i, j, incoming int, vkey func(i, j int) int) int {
	candidates := outgoing[vkey(i, j)]
	for _, turn := range [3]int{3, 0, 1} { // right, straight, left
		want := (incoming + turn) % 4
		for _, idx := range candidates {
			if !used[idx] && edges[idx].dir == want {
				return want
			}
		}
	}
	return -1
}

func (g *cellGrid) vertexPoint(i, j int) Point {
	return Point{X: g.xs[i], Y: g.ys[j]}
}

// ringPath renders one closed loop as an M/H/V command sequence. The segment
// returning to the first vertex is implied by Z.
func ringPath(ring Ring) string {
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(formatCoord(ring[0].X))
	b.WriteByte(' ')
	b.WriteString(formatCoord(ring[0].Y))

	prev := ring[0]
	for _, p := range ring[1:] {
		if p.Y == prev.Y {
			b.WriteString(" H ")
			b.WriteString(formatCoord(p.X))
		} else {
			b.WriteString(" V ")
			b.WriteString(formatCoord(p.Y))
		}
		prev = p
	}
	b.WriteString(" Z")
	return b.String()
}

// rectPath is the single-rectangle fast path: the same four-corner loop the
// tracer would emit for one filled cell.
func rectPath(r Rect) string {
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(formatCoord(r.MinX))
	b.WriteByte(' ')
	b.WriteString(formatCoord(r.MinY))
	b.WriteString(" H ")
	b.WriteString(formatCoord(r.MaxX))
	b.WriteString(" V ")
	b.WriteString(formatCoord(r.MaxY))
	b.WriteString(" H ")
	b.WriteString(formatCoord(r.MinX))
	b.WriteString(" Z")
	return b.String()
}

func rectRing(r Rect) Ring {
	return Ring{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
