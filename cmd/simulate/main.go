// Package main runs a single battle from a YAML battlefield file and prints the
// result contract as JSON on stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/api"
	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/battlefield"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, plays the battle and writes the JSON result to out.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	bfPath := fs.String("battlefield", "content/battlefields/three_way.yaml", "path to a battlefield YAML file")
	configPath := fs.String("config", "", "optional configuration file; defaults and SKIRMISH_ env apply otherwise")
	seed := fs.Uint64("seed", 0, "seed for a reproducible battle; 0 uses engine.seed, then crypto randomness")
	maxRounds := fs.Int64("max-rounds", -1, "override engine.max_rounds; negative keeps the configured value")
	pretty := fs.Bool("pretty", false, "indent the JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Engine.Seed = *seed
	}
	if *maxRounds >= 0 {
		cfg.Engine.MaxRounds = uint32(*maxRounds)
	}

	logger, err := observability.NewLogger(cfg.Logging, "simulate")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	named, err := battlefield.LoadFromFile(*bfPath)
	if err != nil {
		return err
	}

	var src dice.Source = dice.NewCryptoSource()
	if cfg.Engine.Seed != 0 {
		src = dice.NewSeededSource(cfg.Engine.Seed)
	}
	engineCfg := combat.Config{MaxRounds: cfg.Engine.MaxRounds, MaxSteps: cfg.Engine.MaxSteps}
	eng, err := combat.NewEngine(named.Battlefield, engineCfg, dice.NewLoggedSource(src, logger), logger.With(zap.String("battlefield", named.Name)))
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}
	res, err := eng.Start()
	if err != nil {
		return fmt.Errorf("running battle: %w", err)
	}

	enc := json.NewEncoder(out)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(api.FromResult(res))
}

// loadConfig reads path when given, otherwise only defaults and environment.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromViper(config.NewViper())
}
