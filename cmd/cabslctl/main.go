// Command cabslctl drives the examples/robot demo behavior for a
// configurable number of cycles, logging the activation graph each cycle.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bhuman/cabsl"
	"github.com/bhuman/cabsl/examples/robot"
	"github.com/rs/zerolog"
)

func main() {
	var (
		configPath string
		cycles     int
		quiet      bool
	)

	flag.StringVar(&configPath, "config", "", "path to a TOML run configuration")
	flag.IntVar(&cycles, "cycles", 0, "number of cycles to run (overrides config)")
	flag.BoolVar(&quiet, "quiet", false, "suppress per-cycle activation graph logging")
	flag.Parse()

	cfg, err := loadRunConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cabslctl: %v\n", err)
		os.Exit(1)
	}
	if cycles > 0 {
		cfg.Cycles = cycles
	}
	if len(cfg.Waypoints) > 0 {
		wps := make([]robot.Point, len(cfg.Waypoints))
		for i, w := range cfg.Waypoints {
			wps[i] = robot.Point{X: w.X, Y: w.Y}
		}
		robot.Waypoints = wps
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	cabsl.SetLogger(logger)

	b := &robot.Robot{}
	if err := run(logger, b, cfg, quiet); err != nil {
		fmt.Fprintf(os.Stderr, "cabslctl: %v\n", err)
		os.Exit(1)
	}
}

func run(logger zerolog.Logger, b *robot.Robot, cfg runConfig, quiet bool) error {
	for cycle := 1; cycle <= cfg.Cycles; cycle++ {
		if err := cabsl.BeginFrame(b, cabsl.Cycle(cycle)); err != nil {
			return fmt.Errorf("begin_frame(%d): %w", cycle, err)
		}
		robot.RunBehave(b)
		if err := cabsl.EndFrame(b); err != nil {
			return fmt.Errorf("end_frame(%d): %w", cycle, err)
		}

		if !quiet {
			for _, node := range b.Graph() {
				logger.Info().
					Int("cycle", cycle).
					Int("depth", node.Depth).
					Str("option", node.Option).
					Str("state", node.State).
					Int("option_time", node.OptionTime).
					Int("state_time", node.StateTime).
					Strs("args", node.Args).
					Msg("activation")
			}
		}

		if cfg.CycleIntervalMS > 0 {
			time.Sleep(time.Duration(cfg.CycleIntervalMS) * time.Millisecond)
		}
	}
	return nil
}
