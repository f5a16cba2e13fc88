package claim

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ClaimsToFeatureCollection converts the claim set into a GeoJSON
// FeatureCollection with one MultiPolygon feature per claim. Loop orientation
// from the boundary tracer distinguishes exterior rings from holes; each hole
// is attached to the exterior ring that contains it.
func ClaimsToFeatureCollection(claims []ClaimShape) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, claim := range claims {
		mp := loopsToMultiPolygon(claim.Loops)
		if len(mp) == 0 {
			continue
		}

		f := geojson.NewFeature(mp)
		f.Properties["guild"] = claim.Guild.Name
		f.Properties["prefix"] = claim.Guild.Tag
		f.Properties["color"] = claim.Color
		f.Properties["territories"] = claim.Territories
		f.Properties["area"] = planar.Area(mp)
		fc.Append(f)
	}
	return fc
}

// ClaimsGeoJSON renders the claim set as GeoJSON bytes.
func ClaimsGeoJSON(claims []ClaimShape) ([]byte, error) {
	data, err := json.Marshal(ClaimsToFeatureCollection(claims))
	if err != nil {
		return nil, fmt.Errorf("encoding claims GeoJSON: %w", err)
	}
	return data, nil
}

// loopsToMultiPolygon groups traced loops into polygons. Exterior loops and
// hole loops carry opposite winding, so the signed area tells them apart.
func loopsToMultiPolygon(loops []Ring) orb.MultiPolygon {
	var outers []orb.Ring
	var holes []orb.Ring

	for _, ring := range loops {
		if len(ring) < 3 {
			continue
		}
		r := toOrbRing(ring)
		if signedRingArea(ring) > 0 {
			outers = append(outers, r)
		} else {
			holes = append(holes, r)
		}
	}

	mp := make(orb.MultiPolygon, 0, len(outers))
	for _, outer := range outers {
		mp = append(mp, orb.Polygon{outer})
	}
	for _, hole := range holes {
		for i, poly := range mp {
			if ringContains(poly[0], hole[0]) {
				mp[i] = append(mp[i], hole)
				break
			}
		}
	}
	return mp
}

// toOrbRing converts a loop to a closed orb ring.
func toOrbRing(ring Ring) orb.Ring {
	out := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		out = append(out, orb.Point{p.X, p.Y})
	}
	out = append(out, out[0])
	return out
}

// signedRingArea is the shoelace area of the loop; the sign encodes winding.
func signedRingArea(ring Ring) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// ringContains reports whether the point lies inside the closed orb ring,
// by even-odd ray crossing.
func ringContains(ring orb.Ring, p orb.Point) bool {
	inside := false
	for i := 0; i+1 < len(ring); i++ {
		a := ring[i]
		b := ring[i+1]
		if (a[1] > p[1]) == (b[1] > p[1]) {
			continue
		}
		t := (p[1] - a[1]) / (b[1] - a[1])
		if p[0] < a[0]+t*(b[0]-a[0]) {
			inside = !inside
		}
	}
	return inside
}
