package claim

import "math"

// labelBoxAt centers a box of the given size on the anchor point.
func labelBoxAt(anchor Point, w, h float64) Rect {
	return Rect{
		MinX: anchor.X - w/2,
		MaxX: anchor.X + w/2,
		MinY: anchor.Y - h/2,
		MaxY: anchor.Y + h/2,
	}
}

// PlaceLabel finds where a guild tag can be drawn inside the claim region and
// how large it may be. The base box is sized from the tag length; the search
// walks rings of candidate anchors outward from the region centroid and takes
// the first anchor whose box lies entirely inside the region. The box is then
// doubled up to the configured maximum, re-running the position search at
// each size; the last size that found a home wins, together with its anchor,
// so a growing label may drift away from the spot the base box landed on.
//
// When even the base box fits nowhere, the label falls back to the centroid
// with the region's bounding-box dimensions and the renderer is expected to
// shrink to fit.
func PlaceLabel(u *UnionOutline, tag string, cfg EngineConfig) LabelBox {
	baseW := cfg.LabelCharWidth * float64(len(tag))
	if baseW <= 0 {
		baseW = cfg.LabelCharWidth
	}
	baseH := cfg.LabelBaseHeight

	centroid := u.Centroid()
	anchor, found := searchAnchor(u, centroid, baseW, baseH, cfg.LabelSearchStep)
	if !found {
		b := u.Bound()
		return LabelBox{X: centroid.X, Y: centroid.Y, MaxWidth: b.Width(), MaxHeight: b.Height()}
	}

	scale := 1.0
	for scale*2 <= cfg.LabelMaxScale {
		next := scale * 2
		grown, ok := searchAnchor(u, centroid, baseW*next, baseH*next, cfg.LabelSearchStep)
		if !ok {
			break
		}
		anchor = grown
		scale = next
	}

	return LabelBox{
		X:         anchor.X,
		Y:         anchor.Y,
		MaxWidth:  baseW * scale,
		MaxHeight: baseH * scale,
	}
}

// searchAnchor tries the centroid first, then concentric rings of candidates
// around it. Ring radii advance by step; the sample count per ring keeps the
// arc spacing near step so coverage density stays roughly constant. The
// search stops at half the region's bounding-box diagonal, beyond which no
// anchor can be interior.
func searchAnchor(u *UnionOutline, centroid Point, w, h, step float64) (Point, bool) {
	if u.ContainsRect(labelBoxAt(centroid, w, h)) {
		return centroid, true
	}
	if step <= 0 {
		return Point{}, false
	}

	b := u.Bound()
	maxRadius := math.Hypot(b.Width(), b.Height()) / 2

	for radius := step; radius <= maxRadius; radius += step {
		samples := int(2 * math.Pi * radius / step)
		if samples < 8 {
			samples = 8
		}
		for k := 0; k < samples; k++ {
			angle := 2 * math.Pi * float64(k) / float64(samples)
			p := Point{
				X: centroid.X + radius*math.Cos(angle),
				Y: centroid.Y + radius*math.Sin(angle),
			}
			if u.ContainsRect(labelBoxAt(p, w, h)) {
				return p, true
			}
		}
	}
	return Point{}, false
}
