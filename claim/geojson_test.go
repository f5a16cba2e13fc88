package claim

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func holedClaim() ClaimShape {
	return ClaimShape{
		Guild:       Guild{Name: "Alpha Legion", Tag: "ALF"},
		Color:       "#ff0000",
		Territories: []string{"A"},
		Loops: []Ring{
			// Counter-clockwise outer, clockwise hole, as the tracer emits.
			{{0, 0}, {30, 0}, {30, 30}, {0, 30}},
			{{10, 10}, {10, 20}, {20, 20}, {20, 10}},
		},
	}
}

func TestClaimsToFeatureCollection(t *testing.T) {
	fc := ClaimsToFeatureCollection([]ClaimShape{holedClaim()})
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(fc.Features))
	}

	f := fc.Features[0]
	mp, ok := f.Geometry.(orb.MultiPolygon)
	if !ok {
		t.Fatalf("geometry is %T, want MultiPolygon", f.Geometry)
	}
	if len(mp) != 1 {
		t.Fatalf("got %d polygons, want 1", len(mp))
	}
	if len(mp[0]) != 2 {
		t.Fatalf("polygon has %d rings, want outer plus hole", len(mp[0]))
	}

	// GeoJSON rings repeat the first coordinate at the end.
	for _, ring := range mp[0] {
		if ring[0] != ring[len(ring)-1] {
			t.Errorf("ring not closed: %v", ring)
		}
	}

	if f.Properties["guild"] != "Alpha Legion" || f.Properties["prefix"] != "ALF" {
		t.Errorf("properties = %v", f.Properties)
	}
	area, ok := f.Properties["area"].(float64)
	if !ok || math.Abs(area-800) > 1e-9 {
		t.Errorf("area property = %v, want 800 (hole subtracted)", f.Properties["area"])
	}
}

func TestClaimsToFeatureCollectionSkipsEmptyLoops(t *testing.T) {
	claims := []ClaimShape{{Guild: Guild{Name: "Ghost"}}}
	fc := ClaimsToFeatureCollection(claims)
	if len(fc.Features) != 0 {
		t.Errorf("claims without loops should be skipped, got %d features", len(fc.Features))
	}
}

func TestClaimsGeoJSONEncodes(t *testing.T) {
	data, err := ClaimsGeoJSON([]ClaimShape{holedClaim()})
	if err != nil {
		t.Fatalf("ClaimsGeoJSON failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["type"] != "FeatureCollection" {
		t.Errorf("type = %v, want FeatureCollection", doc["type"])
	}
	features, ok := doc["features"].([]interface{})
	if !ok || len(features) != 1 {
		t.Errorf("features = %v", doc["features"])
	}
}

func TestSignedRingArea(t *testing.T) {
	ccw := Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := signedRingArea(ccw); got != 100 {
		t.Errorf("counter-clockwise area = %g, want 100", got)
	}
	cw := Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if got := signedRingArea(cw); got != -100 {
		t.Errorf("clockwise area = %g, want -100", got)
	}
}

func TestHoleAttachedToContainingOuter(t *testing.T) {
	loops := []Ring{
		{{0, 0}, {30, 0}, {30, 30}, {0, 30}},
		{{100, 0}, {130, 0}, {130, 30}, {100, 30}},
		{{110, 10}, {110, 20}, {120, 20}, {120, 10}}, // hole in the second island
	}
	mp := loopsToMultiPolygon(loops)
	if len(mp) != 2 {
		t.Fatalf("got %d polygons, want 2", len(mp))
	}
	if len(mp[0]) != 1 {
		t.Errorf("first island should have no hole, got %d rings", len(mp[0]))
	}
	if len(mp[1]) != 2 {
		t.Errorf("second island should carry the hole, got %d rings", len(mp[1]))
	}
}
