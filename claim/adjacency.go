package claim

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// RectGapDistance returns the minimum edge-to-edge Euclidean distance between
// two axis-aligned rectangles. An axis on which the rectangles overlap or
// touch contributes zero, so overlapping rectangles have distance 0.
func RectGapDistance(a, b Rect) float64 {
	dx := axisGap(a.MinX, a.MaxX, b.MinX, b.MaxX)
	dy := axisGap(a.MinY, a.MaxY, b.MinY, b.MaxY)
	return math.Hypot(dx, dy)
}

func axisGap(aMin, aMax, bMin, bMax float64) float64 {
	if bMin > aMax {
		return bMin - aMax
	}
	if aMin > bMax {
		return aMin - bMax
	}
	return 0
}

// IsNear reports whether two territories are spatially adjacent: their
// edge-to-edge distance is at most threshold plane units.
func IsNear(a, b *Territory, threshold float64) bool {
	if a == nil || b == nil {
		return false
	}
	return RectGapDistance(a.Rect(), b.Rect()) <= threshold
}

// IsLinked reports whether two territories are connected by an explicit
// trading route. The source data may record a route on either endpoint only,
// so both directions are checked. The static fallback table is consulted for
// a territory only when its live route list is empty.
func IsLinked(name1, name2 string, tm TerritoryMap, static RouteTable) bool {
	return containsName(routesFor(name1, tm, static), name2) ||
		containsName(routesFor(name2, tm, static), name1)
}

// routesFor returns the effective trading-route list for a territory:
// the live list when present, the static fallback entry otherwise.
func routesFor(name string, tm TerritoryMap, static RouteTable) []string {
	if t, ok := tm[name]; ok && t != nil && len(t.TradingRoutes) > 0 {
		return t.TradingRoutes
	}
	if static == nil {
		return nil
	}
	return static[name]
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// territoryEntry wraps a territory for R-tree storage.
type territoryEntry struct {
	name string
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *territoryEntry) Bounds() rtreego.Rect { return e.bbox }

// territoryIndex answers "which candidate territories might be near this
// rectangle" without scanning every pair. Intersecting the query rectangle
// expanded by the proximity threshold yields a candidate superset; callers
// still confirm with IsNear.
type territoryIndex struct {
	tree *rtreego.Rtree
}

func newTerritoryIndex(names []string, tm TerritoryMap) *territoryIndex {
	tree := rtreego.NewTree(2, 2, 16)
	for _, name := range names {
		t, ok := tm[name]
		if !ok || t == nil {
			continue
		}
		r := t.Rect()
		bbox, err := rtreego.NewRect(
			rtreego.Point{r.MinX, r.MinY},
			[]float64{spanOrEpsilon(r.Width()), spanOrEpsilon(r.Height())},
		)
		if err != nil {
			continue
		}
		tree.Insert(&territoryEntry{name: name, bbox: bbox})
	}
	return &territoryIndex{tree: tree}
}

// nearby returns the names of indexed territories whose bounding box
// intersects r expanded by margin on all sides.
func (ix *territoryIndex) nearby(r Rect, margin float64) []string {
	query, err := rtreego.NewRect(
		rtreego.Point{r.MinX - margin, r.MinY - margin},
		[]float64{spanOrEpsilon(r.Width() + 2*margin), spanOrEpsilon(r.Height() + 2*margin)},
	)
	if err != nil {
		return nil
	}

	results := ix.tree.SearchIntersect(query)
	names := make([]string, 0, len(results))
	for _, item := range results {
		names = append(names, item.(*territoryEntry).name)
	}
	return names
}

// spanOrEpsilon guards against zero-extent rectangles, which rtreego rejects.
func spanOrEpsilon(v float64) float64 {
	if v <= 0 {
		return 1e-9
	}
	return v
}
