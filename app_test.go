package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/guildmap/guildmap/claim"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestApplyOptions(t *testing.T) {
	app := NewApp()
	app.ApplyOptions(AppOptions{
		ConfigFile:      "cfg.yaml",
		TerritoriesFile: "t.json",
		RoutesFile:      "r.json",
		OutputFile:      "out.svg",
		RenderFormat:    "svg",
		HTTPPort:        9000,
		MqttMode:        true,
		HTTPMode:        true,
	})

	if app.ConfigFile != "cfg.yaml" || app.TerritoriesFile != "t.json" || app.RoutesFile != "r.json" {
		t.Errorf("input paths not applied: %+v", app)
	}
	if app.OutputFile != "out.svg" || app.RenderFormat != "svg" || app.HTTPPort != 9000 {
		t.Errorf("output options not applied: %+v", app)
	}
	if !app.MqttMode || !app.HTTPMode {
		t.Errorf("modes not applied: %+v", app)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	app := NewApp()
	app.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")

	config := app.loadConfig(false)
	if config.HTTPPort != 8080 {
		t.Errorf("default HTTPPort = %d, want 8080", config.HTTPPort)
	}
	if config.Engine.ProximityThreshold != claim.DefaultProximityThreshold {
		t.Errorf("engine defaults not applied: %+v", config.Engine)
	}

	// CLI port flag wins over the config value.
	app.HTTPPort = 9001
	if config := app.loadConfig(false); config.HTTPPort != 9001 {
		t.Errorf("HTTPPort = %d, want CLI override 9001", config.HTTPPort)
	}
}

func TestLoadTerritoriesFromFlagFile(t *testing.T) {
	dir := t.TempDir()
	app := NewApp()
	app.TerritoriesFile = writeFile(t, dir, "territories.json", testTerritoryJSON)

	tm, err := app.loadTerritories(&claim.Config{})
	if err != nil {
		t.Fatalf("loadTerritories failed: %v", err)
	}
	if len(tm) != 2 {
		t.Errorf("got %d territories, want 2", len(tm))
	}
}

func TestLoadTerritoriesNoSource(t *testing.T) {
	app := NewApp()
	if _, err := app.loadTerritories(&claim.Config{}); err == nil {
		t.Error("no configured source should fail")
	}
}

func TestLoadRoutesOptional(t *testing.T) {
	app := NewApp()
	if rt := app.loadRoutes(&claim.Config{}); rt != nil {
		t.Errorf("no route source should yield nil, got %v", rt)
	}

	app.RoutesFile = filepath.Join(t.TempDir(), "missing.json")
	if rt := app.loadRoutes(&claim.Config{}); rt != nil {
		t.Errorf("unreadable route table should be skipped with a warning, got %v", rt)
	}

	dir := t.TempDir()
	app.RoutesFile = writeFile(t, dir, "routes.json", `{"Detlas": {"Trading Routes": ["Ragni"]}}`)
	rt := app.loadRoutes(&claim.Config{})
	if len(rt) != 1 {
		t.Errorf("routes = %v, want 1 entry", rt)
	}
}

func TestRunRenderOnceJSON(t *testing.T) {
	dir := t.TempDir()
	app := NewApp()
	app.ConfigFile = filepath.Join(dir, "missing.yaml")
	app.TerritoriesFile = writeFile(t, dir, "territories.json", testTerritoryJSON)
	app.OutputFile = filepath.Join(dir, "claims.json")
	app.RenderFormat = "json"

	app.RunRenderOnce()

	data, err := os.ReadFile(app.OutputFile)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	var payload struct {
		Claims []claim.ClaimShape `json:"claims"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(payload.Claims) != 2 {
		t.Errorf("got %d claims, want 2", len(payload.Claims))
	}
}

func TestRunRenderOnceSVG(t *testing.T) {
	dir := t.TempDir()
	app := NewApp()
	app.ConfigFile = filepath.Join(dir, "missing.yaml")
	app.TerritoriesFile = writeFile(t, dir, "territories.json", testTerritoryJSON)
	app.OutputFile = filepath.Join(dir, "claims.svg")
	app.RenderFormat = "svg"

	app.RunRenderOnce()

	data, err := os.ReadFile(app.OutputFile)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("SVG output is empty")
	}
}
