// Package main runs a Monte Carlo study of a banner and prints the stats as YAML.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/gacha-engine/internal/config"
	"github.com/xtding233/gacha-engine/internal/gacha"
	"github.com/xtding233/gacha-engine/internal/game"
	"github.com/xtding233/gacha-engine/internal/observability"
)

type report struct {
	Banner  string      `yaml:"banner"`
	Version string      `yaml:"version,omitempty"`
	Goal    string      `yaml:"goal"`
	Trials  int         `yaml:"trials"`
	Seed    uint64      `yaml:"seed"`
	Stats   gacha.Stats `yaml:"stats"`
}

func main() {
	baseDir := flag.String("dir", "configs", "config base directory containing games/")
	gameName := flag.String("game", "default", "game name")
	pool := flag.String("pool", "", "pool name (optional)")
	goal := flag.String("goal", string(gacha.GoalFirstSSR), "first_ssr | fixed_budget")
	trials := flag.Int("trials", 10000, "number of trials")
	seed := flag.Uint64("seed", 1, "base seed; trial i uses seed+i")
	chances := flag.Uint("chances", 0, "override the budget for fixed_budget (0 keeps config)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(config.LoggingConfig{Level: level, Format: "console"})
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	g, err := gacha.ParseTrialGoal(*goal)
	if err != nil {
		logger.Fatal("parsing goal", zap.Error(err))
	}

	var o game.Overrides
	if *chances > 0 {
		c := uint32(*chances)
		o.Chances = &c
	}
	raw, cfg, err := game.NewLoader(*baseDir).Resolve(*gameName, *pool, o)
	if err != nil {
		logger.Fatal("resolving banner", zap.Error(err))
	}

	stats, err := gacha.RunMonteCarlo(gacha.SimParams{Config: cfg, Seed: *seed}, g, *trials)
	if err != nil {
		logger.Fatal("simulating", zap.Error(err))
	}

	banner := *gameName
	if *pool != "" {
		banner += "/" + *pool
	}
	out, err := yaml.Marshal(report{
		Banner:  banner,
		Version: raw.Version,
		Goal:    string(g),
		Trials:  *trials,
		Seed:    *seed,
		Stats:   stats,
	})
	if err != nil {
		logger.Fatal("encoding report", zap.Error(err))
	}
	fmt.Fprint(os.Stdout, string(out))
}
