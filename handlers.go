package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/guildmap/guildmap/claim"
)

// maxTerritoryPostBytes caps pushed datasets at 20 MB.
const maxTerritoryPostBytes = 20 << 20

// newHTTPServer creates an HTTP server with all endpoints
func newHTTPServer(tracker *claim.ClaimTracker, config *claim.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := struct {
			Status         string    `json:"status"`
			Timestamp      time.Time `json:"timestamp"`
			HasTerritories bool      `json:"hasTerritories"`
		}{
			Status:         "ok",
			Timestamp:      time.Now(),
			HasTerritories: tracker.HasTerritories(),
		}
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Printf("Error encoding health status: %v", err)
		}
	})

	// Claim shapes as JSON (paths, labels, colors)
	mux.HandleFunc("/claims.json", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, tracker)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		if err := writeClaimsJSON(w, claims); err != nil {
			log.Printf("Error encoding claims JSON: %v", err)
		}
	})

	// Vector claim map
	mux.HandleFunc("/claims.svg", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, tracker)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-cache")
		if err := claim.NewClaimRenderer(claims).RenderToSVG(w); err != nil {
			log.Printf("Error encoding claims SVG: %v", err)
		}
	})

	// Rasterized claim map
	mux.HandleFunc("/claims.png", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, tracker)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		if err := claim.NewClaimRenderer(claims).RenderToPNG(w); err != nil {
			log.Printf("Error encoding claims PNG: %v", err)
		}
	})

	// GeoJSON export
	mux.HandleFunc("/claims.geojson", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, tracker)
		if !ok {
			return
		}
		data, err := claim.ClaimsGeoJSON(claims)
		if err != nil {
			log.Printf("Error encoding claims GeoJSON: %v", err)
			http.Error(w, "GeoJSON encoding failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Header().Set("Cache-Control", "no-cache")
		if _, err := w.Write(data); err != nil {
			log.Printf("Error writing claims GeoJSON: %v", err)
		}
	})

	// Quick raster preview with guild tags
	mux.HandleFunc("/preview.png", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, tracker)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		if err := claim.NewPreviewRenderer(claims).RenderPNG(w); err != nil {
			log.Printf("Error encoding preview PNG: %v", err)
		}
	})

	// Current territory dataset
	mux.HandleFunc("/territories.json", func(w http.ResponseWriter, r *http.Request) {
		tm := tracker.Territories()
		if len(tm) == 0 {
			http.Error(w, "No territory dataset available", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		if err := json.NewEncoder(w).Encode(tm); err != nil {
			log.Printf("Error encoding territories JSON: %v", err)
		}
	})

	// Push a new territory dataset
	mux.HandleFunc("/territories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxTerritoryPostBytes))
		if err != nil {
			http.Error(w, "Error reading request body", http.StatusBadRequest)
			return
		}

		tm, err := claim.ParseTerritories(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		tracker.SetTerritories(tm)
		log.Printf("Territory dataset replaced via HTTP: %d territories", len(tm))

		w.Header().Set("Content-Type", "application/json")
		resp := struct {
			Territories int `json:"territories"`
			Claims      int `json:"claims"`
		}{
			Territories: len(tm),
			Claims:      len(tracker.Claims()),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("Error encoding territories response: %v", err)
		}
	})

	return mux
}

// requireClaims computes the claim set and writes a 503 when no territory
// dataset has been ingested yet.
func requireClaims(w http.ResponseWriter, tracker *claim.ClaimTracker) ([]claim.ClaimShape, bool) {
	if !tracker.HasTerritories() {
		http.Error(w, "No territory dataset available", http.StatusServiceUnavailable)
		return nil, false
	}
	return tracker.Claims(), true
}

// writeClaimsJSON encodes the claim list with a generation timestamp.
func writeClaimsJSON(w io.Writer, claims []claim.ClaimShape) error {
	payload := struct {
		Claims    []claim.ClaimShape `json:"claims"`
		Timestamp int64              `json:"timestamp"`
	}{
		Claims:    claims,
		Timestamp: time.Now().Unix(),
	}
	return json.NewEncoder(w).Encode(payload)
}
