package main

import (
	"flag"
	"fmt"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile      = flag.String("config", "config.yaml", "Path to configuration file")
	territoriesFile = flag.String("territories", "", "Path to a territory dataset JSON file (overrides config)")
	routesFile      = flag.String("routes", "", "Path to the static trading-route table JSON file (overrides config)")
	renderOnly      = flag.Bool("render", false, "Render the claim map once and exit")
	outputFile      = flag.String("output", "claims.svg", "Output file for --render mode")
	renderFormat    = flag.String("format", "svg", "Render format: svg, png, geojson, json, or preview")
	mqttMode        = flag.Bool("mqtt", false, "Subscribe to territory updates and publish claims over MQTT")
	httpMode        = flag.Bool("http", false, "Enable HTTP server for serving the claim map")
	httpPort        = flag.Int("http-port", 0, "HTTP server port (overrides config)")
)

func main() {
	flag.Parse()
	fmt.Printf("guildmap version: %s\n", Version)

	app := NewApp()
	app.ApplyOptions(AppOptions{
		ConfigFile:      *configFile,
		TerritoriesFile: *territoriesFile,
		RoutesFile:      *routesFile,
		OutputFile:      *outputFile,
		RenderFormat:    *renderFormat,
		HTTPPort:        *httpPort,
		MqttMode:        *mqttMode,
		HTTPMode:        *httpMode,
	})

	if *renderOnly {
		app.RunRenderOnce()
		return
	}

	if *mqttMode || *httpMode {
		app.RunService()
		return
	}

	fmt.Println("guildmap claim map service")
	fmt.Println("Use --render to write the claim map once and exit")
	fmt.Println("Use --http to serve the claim map over HTTP")
	fmt.Println("Use --mqtt to follow territory updates and publish claims")
	fmt.Println("Use --mqtt --http to run both together")
	fmt.Println("\nConfiguration:")
	fmt.Println("  config.yaml - data sources, guild colors, engine tuning, MQTT settings")
}
