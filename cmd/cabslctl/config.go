package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// runConfig is cabslctl's run configuration: how many cycles to drive the
// demo robot behavior for, and where its patrol waypoints are.
type runConfig struct {
	Cycles          int
	CycleIntervalMS int
	Waypoints       []waypoint
}

type fileConfig struct {
	Cycles          int        `toml:"cycles"`
	CycleIntervalMS int        `toml:"cycle_interval_ms"`
	Waypoints       []waypoint `toml:"waypoints"`
}

type waypoint struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		Cycles:          20,
		CycleIntervalMS: 0,
	}
}

func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load run config: %w", err)
	}

	if meta.IsDefined("cycles") {
		cfg.Cycles = raw.Cycles
	}
	if meta.IsDefined("cycle_interval_ms") {
		cfg.CycleIntervalMS = raw.CycleIntervalMS
	}
	if meta.IsDefined("waypoints") {
		cfg.Waypoints = raw.Waypoints
	}

	return cfg, nil
}
