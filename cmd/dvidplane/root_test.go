package main

import (
	"testing"

	"github.com/spf13/viper"
)

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DVIDPLANE_EXTRACT_SHAPE", "zy")
	t.Setenv("DVIDPLANE_STATS_UPDATE", "true")
	t.Setenv("DVIDPLANE_STORE", "/tmp/planes")
	initConfig()

	if shape := viper.GetString("extract.shape"); shape != "zy" {
		t.Errorf("expected shape from environment, got %q\n", shape)
	}
	if !viper.GetBool("stats.update") {
		t.Errorf("expected stats.update from environment\n")
	}
	config, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if config.Store.Path != "/tmp/planes" {
		t.Errorf("expected store path from environment, got %s\n", config.Store.Path)
	}
}
