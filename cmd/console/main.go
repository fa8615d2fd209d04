package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/survival-engine/internal/config"
	"github.com/jwebster45206/survival-engine/internal/logger"
	"github.com/jwebster45206/survival-engine/pkg/content"
	"github.com/jwebster45206/survival-engine/pkg/controller"
	"github.com/jwebster45206/survival-engine/pkg/random"
	"github.com/jwebster45206/survival-engine/pkg/schedule"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to a file when asked.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close() // Ignore error in defer
		}()
		logOut = f
	}
	log := logger.Setup(cfg, logOut)

	tables, err := loadTables(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load content: %v\n", err)
		os.Exit(1)
	}

	var rng random.Source
	seed := cfg.Seed
	if cfg.HasSeed() {
		rng = random.NewSeeded(seed)
	} else {
		rng, seed = random.NewTimeSeeded()
	}

	gs := state.NewGameState()
	log = logger.WithGame(log, gs.ID.String())
	log.Info("Starting console game", "seed", seed, "time_scale", cfg.TimeScale)

	store := state.NewStore(gs, log)
	ctrl := controller.New(store, tables, schedule.NewClock(cfg.TimeScale), rng, log)
	defer ctrl.Stop()

	p := tea.NewProgram(NewConsoleUI(ctrl, seed),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())

	unsubscribe := store.Subscribe(func(_, _ state.GameState, _ state.Action) {
		p.Send(stateChangedMsg{})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		logger.WithError(log, err).Error("Console exited with error")
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func loadTables(cfg *config.Config) (*content.Tables, error) {
	var (
		tables *content.Tables
		err    error
	)
	if cfg.ContentDir != "" {
		tables, err = content.LoadDir(cfg.ContentDir)
	} else {
		tables, err = content.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}
