package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/guildmap/guildmap/claim"
)

const testTerritoryJSON = `{
	"Detlas": {
		"guild": {"name": "Alpha Legion", "prefix": "ALF"},
		"location": {"start": [0, 0], "end": [300, 300]}
	},
	"Ragni": {
		"guild": {"name": "Bravo Corps", "prefix": "BRV"},
		"location": {"start": [140, 140], "end": [160, 160]}
	}
}`

func testServer(t *testing.T, withData bool) http.Handler {
	t.Helper()
	config := &claim.Config{HTTPPort: 8080, Engine: claim.DefaultEngineConfig()}
	tracker := claim.NewClaimTracker(config.Engine, claim.NewColorResolver(config.Guilds))
	if withData {
		tm, err := claim.ParseTerritories([]byte(testTerritoryJSON))
		if err != nil {
			t.Fatalf("parsing test territories: %v", err)
		}
		tracker.SetTerritories(tm)
	}
	return newHTTPServer(tracker, config)
}

func get(t *testing.T, server http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := get(t, testServer(t, false), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var status struct {
		Status         string `json:"status"`
		HasTerritories bool   `json:"hasTerritories"`
	}
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("status = %q", status.Status)
	}
	if status.HasTerritories {
		t.Error("empty tracker should report hasTerritories=false")
	}
}

func TestClaimsEndpointsUnavailableWithoutData(t *testing.T) {
	server := testServer(t, false)
	for _, path := range []string{
		"/claims.json", "/claims.svg", "/claims.png",
		"/claims.geojson", "/preview.png", "/territories.json",
	} {
		if w := get(t, server, path); w.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s = %d, want 503", path, w.Code)
		}
	}
}

func TestClaimsJSONEndpoint(t *testing.T) {
	w := get(t, testServer(t, true), "/claims.json")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var payload struct {
		Claims    []claim.ClaimShape `json:"claims"`
		Timestamp int64              `json:"timestamp"`
	}
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding claims response: %v", err)
	}
	if len(payload.Claims) != 2 {
		t.Errorf("got %d claims, want 2", len(payload.Claims))
	}
	if payload.Timestamp == 0 {
		t.Error("timestamp missing")
	}
	for _, c := range payload.Claims {
		if c.Path == "" {
			t.Errorf("claim %s has no path", c.Guild.Name)
		}
	}
}

func TestClaimsSVGEndpoint(t *testing.T) {
	w := get(t, testServer(t, true), "/claims.svg")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("body should contain an svg element")
	}
}

func TestClaimsGeoJSONEndpoint(t *testing.T) {
	w := get(t, testServer(t, true), "/claims.geojson")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatalf("decoding GeoJSON: %v", err)
	}
	if doc["type"] != "FeatureCollection" {
		t.Errorf("type = %v", doc["type"])
	}
}

func TestTerritoriesEndpoint(t *testing.T) {
	w := get(t, testServer(t, true), "/territories.json")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var tm claim.TerritoryMap
	if err := json.NewDecoder(w.Body).Decode(&tm); err != nil {
		t.Fatalf("decoding territories: %v", err)
	}
	if len(tm) != 2 {
		t.Errorf("got %d territories, want 2", len(tm))
	}
}

func TestPostTerritories(t *testing.T) {
	server := testServer(t, false)

	// The dataset is required before claims are served.
	if w := get(t, server, "/claims.json"); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("claims before ingest = %d, want 503", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/territories", strings.NewReader(testTerritoryJSON))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("POST status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Territories int `json:"territories"`
		Claims      int `json:"claims"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Territories != 2 || resp.Claims != 2 {
		t.Errorf("response = %+v, want 2 territories and 2 claims", resp)
	}

	if w := get(t, server, "/claims.json"); w.Code != http.StatusOK {
		t.Errorf("claims after ingest = %d, want 200", w.Code)
	}
}

func TestPostTerritoriesRejectsBadInput(t *testing.T) {
	server := testServer(t, false)

	req := httptest.NewRequest(http.MethodPost, "/territories", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body = %d, want 400", w.Code)
	}

	if w := get(t, server, "/territories"); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /territories = %d, want 405", w.Code)
	}
}
