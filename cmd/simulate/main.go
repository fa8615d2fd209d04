// Package main plays seeded games headlessly on a virtual clock and prints
// one JSON summary per run. Useful for balancing content.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwebster45206/survival-engine/internal/config"
	"github.com/jwebster45206/survival-engine/internal/logger"
	"github.com/jwebster45206/survival-engine/pkg/content"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var runs, maxDays int
	seed := cfg.Seed
	flag.IntVar(&runs, "runs", 1, "number of games to play")
	flag.IntVar(&maxDays, "days", 30, "stop a game after this many survival days")
	flag.Int64Var(&seed, "seed", seed, "seed of the first run; later runs use seed+1, seed+2... (0 = 1)")
	flag.Parse()
	if seed == 0 {
		seed = 1
	}

	log := logger.Setup(cfg, os.Stderr)

	var tables *content.Tables
	if cfg.ContentDir != "" {
		tables, err = content.LoadDir(cfg.ContentDir)
	} else {
		tables, err = content.Load()
	}
	if err == nil {
		err = tables.Validate()
	}
	if err != nil {
		log.Error("Failed to load content", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	for i := range runs {
		runSeed := seed + int64(i)
		sim := newSimulation(tables, runSeed, maxDays, log.With("run", i+1, "seed", runSeed))
		gs, err := sim.run(ctx)
		if err != nil {
			log.Error("Simulation stopped", "run", i+1, "error", err)
			os.Exit(1)
		}
		if err := enc.Encode(sim.result(gs, runSeed)); err != nil {
			log.Error("Failed to write result", "error", err)
			os.Exit(1)
		}
	}
}
