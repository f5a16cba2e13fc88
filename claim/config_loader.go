package claim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads the service configuration from a YAML file and applies
// engine defaults to any tuning field left unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	config.Engine.applyDefaults()
	if config.HTTPPort == 0 {
		config.HTTPPort = 8080
	}

	return &config, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	for i, gc := range config.Guilds {
		if gc.Name == "" {
			return fmt.Errorf("guilds[%d].name is required", i)
		}
		if gc.Color == "" {
			return fmt.Errorf("guilds[%d].color is required for %s", i, gc.Name)
		}
	}

	if config.MQTT.Broker != "" && config.MQTT.TerritoriesTopic == "" && config.MQTT.PublishPrefix == "" {
		return fmt.Errorf("mqtt.broker is set but neither mqtt.territoriesTopic nor mqtt.publishPrefix is configured")
	}

	if config.Engine.BridgeWidthRatio < 0 || config.Engine.BridgeWidthRatio > 1 {
		return fmt.Errorf("engine.bridgeWidthRatio must be within [0, 1], got %v", config.Engine.BridgeWidthRatio)
	}

	return nil
}
