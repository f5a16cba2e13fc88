package main

import "testing"

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version must have a default for unflagged builds")
	}
}

func TestFlagDefaults(t *testing.T) {
	if *configFile != "config.yaml" {
		t.Errorf("config default = %q", *configFile)
	}
	if *outputFile != "claims.svg" {
		t.Errorf("output default = %q", *outputFile)
	}
	if *renderFormat != "svg" {
		t.Errorf("format default = %q", *renderFormat)
	}
	if *renderOnly || *mqttMode || *httpMode {
		t.Error("mode flags must default to off")
	}
	if *httpPort != 0 {
		t.Errorf("http-port default = %d, want 0 (use config)", *httpPort)
	}
}
