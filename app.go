package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/guildmap/guildmap/claim"
)

// App encapsulates the application state and dependencies
type App struct {
	Config     *claim.Config
	Tracker    *claim.ClaimTracker
	MQTTClient *claim.MQTTClient
	Publisher  *claim.Publisher

	// CLI Flags (effectively dependencies)
	ConfigFile      string
	TerritoriesFile string
	RoutesFile      string
	OutputFile      string
	RenderFormat    string
	HTTPPort        int
	MqttMode        bool
	HTTPMode        bool
}

// AppOptions carries the parsed CLI flags into the App.
type AppOptions struct {
	ConfigFile      string
	TerritoriesFile string
	RoutesFile      string
	OutputFile      string
	RenderFormat    string
	HTTPPort        int
	MqttMode        bool
	HTTPMode        bool
}

// NewApp creates a new App instance
func NewApp() *App {
	return &App{}
}

// ApplyOptions applies CLI options to the App instance
func (a *App) ApplyOptions(opts AppOptions) {
	a.ConfigFile = opts.ConfigFile
	a.TerritoriesFile = opts.TerritoriesFile
	a.RoutesFile = opts.RoutesFile
	a.OutputFile = opts.OutputFile
	a.RenderFormat = opts.RenderFormat
	a.HTTPPort = opts.HTTPPort
	a.MqttMode = opts.MqttMode
	a.HTTPMode = opts.HTTPMode
}

// loadConfig loads the configuration file. A missing file is not fatal for
// one-shot rendering; defaults apply.
func (a *App) loadConfig(required bool) *claim.Config {
	config, err := claim.LoadConfig(a.ConfigFile)
	if err != nil {
		if required {
			log.Fatalf("Failed to load config: %v (looked at %s)", err, a.ConfigFile)
		}
		log.Printf("Warning: no config loaded from %s: %v (using defaults)", a.ConfigFile, err)
		config = &claim.Config{Engine: claim.DefaultEngineConfig(), HTTPPort: 8080}
	} else {
		log.Printf("Loaded config from %s", a.ConfigFile)
	}
	if a.HTTPPort > 0 {
		config.HTTPPort = a.HTTPPort
	}
	return config
}

// loadTerritories reads the territory dataset from the CLI flag, the
// configured file, or the configured remote API, in that order.
func (a *App) loadTerritories(config *claim.Config) (claim.TerritoryMap, error) {
	path := a.TerritoriesFile
	if path == "" {
		path = config.Sources.TerritoriesFile
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading territories file: %w", err)
		}
		return claim.ParseTerritories(data)
	}

	if config.Sources.TerritoriesURL != "" {
		return claim.FetchTerritories(config.Sources.TerritoriesURL)
	}
	return nil, fmt.Errorf("no territory source configured (need --territories, sources.territoriesFile, or sources.territoriesUrl)")
}

// loadRoutes reads the static trading-route fallback table. The table is
// optional; territories with live route lists work without it.
func (a *App) loadRoutes(config *claim.Config) claim.RouteTable {
	path := a.RoutesFile
	if path == "" {
		path = config.Sources.RoutesFile
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: failed to read route table %s: %v", path, err)
		return nil
	}
	table, err := claim.ParseRouteTable(data)
	if err != nil {
		log.Printf("Warning: failed to parse route table %s: %v", path, err)
		return nil
	}
	log.Printf("Loaded static trading routes for %d territories from %s", len(table), path)
	return table
}

// newTracker builds the claim tracker from config and loads the datasets.
func (a *App) newTracker(config *claim.Config, requireData bool) *claim.ClaimTracker {
	tracker := claim.NewClaimTracker(config.Engine, claim.NewColorResolver(config.Guilds))

	tm, err := a.loadTerritories(config)
	if err != nil {
		if requireData {
			log.Fatalf("Failed to load territories: %v", err)
		}
		log.Printf("Warning: no initial territory dataset: %v", err)
	} else {
		tracker.SetTerritories(tm)
		log.Printf("Loaded %d territories", len(tm))
	}

	if rt := a.loadRoutes(config); rt != nil {
		tracker.SetRoutes(rt)
	}
	return tracker
}

// RunRenderOnce computes the claim map once and writes it to the output file.
func (a *App) RunRenderOnce() {
	config := a.loadConfig(false)
	tracker := a.newTracker(config, true)

	claims := tracker.Claims()
	fmt.Printf("Computed %d claims\n", len(claims))

	out, err := os.Create(a.OutputFile)
	if err != nil {
		log.Fatalf("Error creating output file %s: %v", a.OutputFile, err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Printf("Warning: error closing output file %s: %v", a.OutputFile, err)
		}
	}()

	switch strings.ToLower(a.RenderFormat) {
	case "svg":
		if err := claim.NewClaimRenderer(claims).RenderToSVG(out); err != nil {
			log.Fatalf("Error rendering SVG: %v", err)
		}
	case "png":
		if err := claim.NewClaimRenderer(claims).RenderToPNG(out); err != nil {
			log.Fatalf("Error rendering PNG: %v", err)
		}
	case "preview":
		if err := claim.NewPreviewRenderer(claims).RenderPNG(out); err != nil {
			log.Fatalf("Error rendering preview: %v", err)
		}
	case "geojson":
		data, err := claim.ClaimsGeoJSON(claims)
		if err != nil {
			log.Fatalf("Error encoding GeoJSON: %v", err)
		}
		if _, err := out.Write(data); err != nil {
			log.Fatalf("Error writing GeoJSON: %v", err)
		}
	case "json":
		if err := writeClaimsJSON(out, claims); err != nil {
			log.Fatalf("Error writing claims JSON: %v", err)
		}
	default:
		log.Fatalf("Invalid format: %s (must be svg, png, preview, geojson, or json)", a.RenderFormat)
	}

	fmt.Printf("Created %s: %s\n", a.RenderFormat, a.OutputFile)
}

// RunService starts the combined MQTT and/or HTTP service
func (a *App) RunService() {
	fmt.Println("Starting guildmap service...")

	config := a.loadConfig(true)
	a.Config = config
	a.Tracker = a.newTracker(config, false)

	if a.MqttMode {
		messageHandler := func(rawPayload []byte, tm claim.TerritoryMap, err error) {
			if err != nil {
				log.Printf("Error receiving territory dataset: %v", err)
				return
			}

			a.Tracker.SetTerritories(tm)
			claims := a.Tracker.Claims()
			log.Printf("Territory update: %d territories -> %d claims", len(tm), len(claims))

			if a.Publisher != nil {
				if err := a.Publisher.PublishClaims(claims); err != nil {
					log.Printf("Error publishing claims: %v", err)
				}
			}
		}

		mqttClient, err := claim.InitMQTT(config, messageHandler)
		if err != nil {
			log.Fatalf("Failed to initialize MQTT: %v", err)
		}
		a.MQTTClient = mqttClient

		if mqttClient == nil {
			log.Fatal("MQTT broker not configured in config.yaml")
		}

		a.Publisher = claim.NewPublisher(mqttClient.GetClient())
		if config.MQTT.PublishPrefix != "" {
			a.Publisher.SetPrefix(config.MQTT.PublishPrefix)
		}
		fmt.Println("MQTT claim publisher initialized")
	}

	if a.HTTPMode {
		httpServer := newHTTPServer(a.Tracker, config)
		go func() {
			addr := fmt.Sprintf(":%d", config.HTTPPort)
			log.Printf("[HTTP] Starting server on %s", addr)
			if err := http.ListenAndServe(addr, httpServer); err != nil {
				log.Fatalf("[HTTP] Server error: %v", err)
			}
		}()
	}

	fmt.Println("\nService Running")
	fmt.Println("===============")

	if a.MqttMode {
		fmt.Println("\nMQTT:")
		fmt.Printf("  Subscribed to: %s\n", config.MQTT.TerritoriesTopic)
		publishPrefix := config.MQTT.PublishPrefix
		if publishPrefix == "" {
			publishPrefix = "guildmap"
		}
		fmt.Printf("  Publishing claims to: %s/claims\n", publishPrefix)
		fmt.Printf("  Publishing GeoJSON to: %s/claims/geojson\n", publishPrefix)
	}

	if a.HTTPMode {
		fmt.Printf("\nHTTP endpoints (port %d):\n", config.HTTPPort)
		fmt.Println("  GET  /health            - Health check")
		fmt.Println("  GET  /claims.json       - Claim shapes with paths and labels")
		fmt.Println("  GET  /claims.svg        - Vector claim map")
		fmt.Println("  GET  /claims.png        - Rasterized claim map")
		fmt.Println("  GET  /claims.geojson    - Claims as a GeoJSON FeatureCollection")
		fmt.Println("  GET  /preview.png       - Quick raster preview with guild tags")
		fmt.Println("  GET  /territories.json  - Current territory dataset")
		fmt.Println("  POST /territories       - Push a new territory dataset")
	}

	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	fmt.Println("\nShutting down service...")
	if a.MQTTClient != nil {
		a.MQTTClient.Disconnect()
	}
	fmt.Println("Service stopped")
}
