package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jwebster45206/survival-engine/pkg/content"
	"github.com/jwebster45206/survival-engine/pkg/controller"
	"github.com/jwebster45206/survival-engine/pkg/random"
	"github.com/jwebster45206/survival-engine/pkg/resolver"
	"github.com/jwebster45206/survival-engine/pkg/schedule"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

// Result summarizes one simulated game.
type Result struct {
	GameID            string             `json:"game_id"`
	Seed              int64              `json:"seed"`
	Disaster          state.DisasterType `json:"disaster"`
	Phase             state.Phase        `json:"phase"`
	Days              int                `json:"days"`
	PreparednessScore int                `json:"preparedness_score"`
	Health            int                `json:"health"`
	Morale            int                `json:"morale"`
	ActionsTaken      int                `json:"actions_taken"`
	GameOver          bool               `json:"game_over"`
	Events            []string           `json:"events"`
}

// simulation plays one game with a simple policy on a manual clock: answer
// every prompt with its first available option, keep every find and stay
// busy with random actions until the story runs out.
type simulation struct {
	ctrl    *controller.Controller
	clock   *schedule.Manual
	policy  random.Source
	maxDays int
	logger  *slog.Logger
	actions int
}

func newSimulation(tables *content.Tables, seed int64, maxDays int, logger *slog.Logger) *simulation {
	clock := schedule.NewManual()
	store := state.NewStore(state.NewGameState(), logger)
	return &simulation{
		ctrl:    controller.New(store, tables, clock, random.NewSeeded(seed), logger),
		clock:   clock,
		policy:  random.NewSeeded(seed + 1),
		maxDays: maxDays,
		logger:  logger,
	}
}

// run advances the game one virtual second at a time until the game ends,
// maxDays pass or ctx is cancelled.
func (s *simulation) run(ctx context.Context) (state.GameState, error) {
	if err := s.ctrl.Start(); err != nil {
		return state.GameState{}, err
	}
	defer s.ctrl.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return s.ctrl.Store().State(), err
		}
		gs := s.ctrl.Store().State()
		if s.ctrl.GameOver() || gs.Day > s.maxDays {
			return gs, nil
		}
		if err := s.step(gs); err != nil {
			return gs, err
		}
		s.clock.Advance(time.Second)
	}
}

func (s *simulation) step(gs state.GameState) error {
	r := s.ctrl.Resolver()

	if gs.Phase == state.PhasePreparation && len(gs.ItemsDiscovered) > 0 {
		return r.KeepDiscoveredItem()
	}
	if gs.CurrentEvent != nil {
		return s.ctrl.ChooseEvent(0)
	}
	if sp := gs.SurvivalPhase; sp != nil && sp.CurrentScenario != nil {
		for _, c := range sp.CurrentScenario.Choices {
			if resolver.IsChoiceAvailable(gs, c) {
				return s.ctrl.ChooseScenario(c.ID)
			}
		}
		return nil
	}
	if gs.Phase != state.PhasePreparation || gs.CurrentAction != nil {
		return nil
	}

	candidates := resolver.AvailableActions(gs, s.ctrl.Tables().GameActions())
	if action, ok := random.Pick(s.policy, candidates); ok {
		err := s.ctrl.PerformAction(action.ID)
		switch {
		case err == nil:
			s.actions++
			return nil
		case !errors.Is(err, controller.ErrFreeActionUsed):
			return err
		}
	}

	step, ok := s.ctrl.Tables().StoryStep(gs.StoryStep)
	if !ok || len(step.Choices) == 0 {
		return nil
	}
	return s.ctrl.ChooseStory(step.Choices[0].ID)
}

func (s *simulation) result(gs state.GameState, seed int64) Result {
	return Result{
		GameID:            gs.ID.String(),
		Seed:              seed,
		Disaster:          gs.Disaster,
		Phase:             gs.Phase,
		Days:              gs.Day,
		PreparednessScore: gs.PreparednessScore,
		Health:            gs.Character.Health,
		Morale:            gs.Character.Morale,
		ActionsTaken:      s.actions,
		GameOver:          s.ctrl.GameOver(),
		Events:            gs.Events,
	}
}
