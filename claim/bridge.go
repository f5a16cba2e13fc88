package claim

import "math"

// BridgeRect manufactures the auxiliary rectangle that visually connects two
// trading-route-linked rectangles so the union step yields one contiguous
// shape. Three layouts are possible:
//
//   - X ranges overlap, Y ranges have a gap: a vertical connector spanning
//     the full X overlap and filling the Y gap.
//   - Y ranges overlap, X ranges have a gap: the symmetric horizontal
//     connector.
//   - neither axis overlaps (diagonal separation): a band around the segment
//     between the two centers, as wide as widthRatio times the smaller
//     participant's smallest dimension.
//
// When the rectangles already overlap or touch on both axes no connector is
// needed and ok is false.
func BridgeRect(a, b Rect, widthRatio float64) (bridge Rect, ok bool) {
	overlapMinX := math.Max(a.MinX, b.MinX)
	overlapMaxX := math.Min(a.MaxX, b.MaxX)
	overlapMinY := math.Max(a.MinY, b.MinY)
	overlapMaxY := math.Min(a.MaxY, b.MaxY)

	xOverlap := overlapMinX < overlapMaxX
	yOverlap := overlapMinY < overlapMaxY

	switch {
	case xOverlap && !yOverlap:
		return Rect{
			MinX: overlapMinX,
			MaxX: overlapMaxX,
			MinY: math.Min(a.MaxY, b.MaxY),
			MaxY: math.Max(a.MinY, b.MinY),
		}, true

	case yOverlap && !xOverlap:
		return Rect{
			MinX: math.Min(a.MaxX, b.MaxX),
			MaxX: math.Max(a.MinX, b.MinX),
			MinY: overlapMinY,
			MaxY: overlapMaxY,
		}, true

	case !xOverlap && !yOverlap:
		return diagonalBridge(a, b, widthRatio), true

	default:
		// Overlapping on both axes; the union already connects them.
		return Rect{}, false
	}
}

// diagonalBridge covers the bounding box of the two rectangle centers,
// thickened by half the bridge side on every edge. Both centers lie inside
// the result, so the union of the three rectangles is connected.
func diagonalBridge(a, b Rect, widthRatio float64) Rect {
	ca := a.Center()
	cb := b.Center()

	side := widthRatio * math.Min(
		math.Min(a.Width(), a.Height()),
		math.Min(b.Width(), b.Height()),
	)
	half := side / 2

	return Rect{
		MinX: math.Min(ca.X, cb.X) - half,
		MaxX: math.Max(ca.X, cb.X) + half,
		MinY: math.Min(ca.Y, cb.Y) - half,
		MaxY: math.Max(ca.Y, cb.Y) + half,
	}
}
