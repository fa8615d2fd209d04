// Package resolver applies player choices to the game state: story steps,
// random events, disaster and survival scenarios, skill training and item
// discovery.
package resolver

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jwebster45206/survival-engine/pkg/content"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

const (
	// TrainSkillSeconds is the preparation time a training session costs.
	TrainSkillSeconds = 30
	// TrainSkillScore is awarded per training session.
	TrainSkillScore = 5
)

// Resolver turns choices into dispatches against a store. On any error the
// state is left unchanged.
type Resolver struct {
	mu     sync.Mutex // serializes read-then-dispatch sequences
	store  *state.Store
	tables *content.Tables
	logger *slog.Logger
}

// New creates a resolver over store using tables for story content.
func New(store *state.Store, tables *content.Tables, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, tables: tables, logger: logger}
}

// ResolveStoryChoice applies the flat effects of choice id at the current
// story step and advances the story. Choosing at the last step ends the
// preparation phase instead.
func (r *Resolver) ResolveStoryChoice(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs := r.store.State()
	if gs.Phase != state.PhasePreparation {
		return fmt.Errorf("%w: story choices need %s, in %s", ErrWrongPhase, state.PhasePreparation, gs.Phase)
	}
	step, ok := r.tables.StoryStep(gs.StoryStep)
	if !ok {
		return fmt.Errorf("%w: story step %d", ErrNoScenario, gs.StoryStep)
	}

	var choice *state.StoryChoice
	for i := range step.Choices {
		if step.Choices[i].ID == id {
			choice = &step.Choices[i]
			break
		}
	}
	if choice == nil {
		return fmt.Errorf("%w: %q at story step %d", ErrUnknownChoice, id, gs.StoryStep)
	}

	last := gs.StoryStep >= len(r.tables.Story)-1
	applied := false
	r.store.Dispatch(state.ApplyEffect{Effect: func(cur state.GameState) state.GameState {
		next := storyChoiceEffect(gs.StoryStep, choice.Effects, last)(cur)
		applied = next.StoryStep != cur.StoryStep || next.Phase != cur.Phase
		return next
	}})
	if !applied {
		return fmt.Errorf("%w: story step %d ended before the choice applied", ErrWrongPhase, gs.StoryStep)
	}

	r.logger.Info("Story choice resolved",
		"choice", id,
		"step", gs.StoryStep,
		"effects", len(choice.Effects.Actions(gs)),
		"last_step", last)
	return nil
}

// storyChoiceEffect folds a story choice and the step advance into one
// transition. It is dropped unless the game is still preparing at step.
func storyChoiceEffect(step int, effects *state.FlatEffects, last bool) state.Effect {
	return func(gs state.GameState) state.GameState {
		if gs.Phase != state.PhasePreparation || gs.StoryStep != step {
			return gs
		}
		gs = effects.Apply(gs)
		if last {
			return state.Reduce(gs, state.EndPreparationPhase{})
		}
		return state.Reduce(gs, state.NextStoryStep{})
	}
}

// ResolveEvent applies the effect of choice index on the current event and
// clears it.
func (r *Resolver) ResolveEvent(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs := r.store.State()
	if gs.CurrentEvent == nil {
		return ErrNoActiveEvent
	}
	ev := *gs.CurrentEvent
	if index < 0 || index >= len(ev.Choices) {
		return fmt.Errorf("%w: event %s has no choice %d", ErrUnknownChoice, ev.ID, index)
	}

	r.store.Dispatch(state.ResolveEvent{Effect: ev.Choices[index].Effect})
	r.store.Dispatch(state.AddEvent{Name: ev.Name})

	r.logger.Info("Event resolved", "event", ev.ID, "choice", ev.Choices[index].Text)
	return nil
}

// ResolveScenarioChoice applies choice id of the active scenario. During a
// disaster the next initial scenario is queued; after the last one the
// disaster's ongoing effects apply and done is true. During survival the
// scenario is cleared so a new one can be drawn.
func (r *Resolver) ResolveScenarioChoice(id string) (done bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs := r.store.State()
	sp := gs.SurvivalPhase
	if sp == nil || sp.CurrentScenario == nil {
		return false, ErrNoScenario
	}
	scen := sp.CurrentScenario
	choice, ok := scen.Choice(id)
	if !ok {
		return false, fmt.Errorf("%w: %q in scenario %s", ErrUnknownChoice, id, scen.ID)
	}
	if !IsChoiceAvailable(gs, choice) {
		return false, fmt.Errorf("%w: %q in scenario %s", ErrChoiceUnavailable, id, scen.ID)
	}

	var advance state.Effect
	switch gs.Phase {
	case state.PhaseDisaster:
		next := sp.ScenarioIndex + 1
		if d := sp.Disaster; d != nil && next < len(d.InitialScenarios) {
			queued := d.InitialScenarios[next]
			advance = setScenario(&queued, next)
		} else {
			done = true
			var ongoing state.Effect
			if d != nil {
				ongoing = d.OngoingEffects
			}
			advance = state.Chain(ongoing, setScenario(nil, next))
		}
	case state.PhaseSurvival:
		advance = setScenario(nil, sp.ScenarioIndex)
	default:
		return false, fmt.Errorf("%w: scenario choices need a disaster or survival phase, in %s", ErrWrongPhase, gs.Phase)
	}

	r.store.Dispatch(state.ApplyEffect{Effect: onlyWhileActive(scen.ID, state.Chain(choice.Consequence, advance))})

	r.logger.Info("Scenario choice resolved",
		"scenario", scen.ID,
		"choice", id,
		"phase", gs.Phase,
		"disaster_complete", done)
	return done, nil
}

func setScenario(s *state.Scenario, index int) state.Effect {
	return func(gs state.GameState) state.GameState {
		return state.Reduce(gs, state.SetScenario{Scenario: s, Index: index})
	}
}

// onlyWhileActive drops effect if the scenario was replaced between the
// read and the dispatch.
func onlyWhileActive(scenarioID string, effect state.Effect) state.Effect {
	return func(gs state.GameState) state.GameState {
		sp := gs.SurvivalPhase
		if sp == nil || sp.CurrentScenario == nil || sp.CurrentScenario.ID != scenarioID {
			return gs
		}
		return effect(gs)
	}
}

// TrainSkill raises skill id by one level at the cost of preparation time.
func (r *Resolver) TrainSkill(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs := r.store.State()
	if gs.Phase != state.PhasePreparation {
		return fmt.Errorf("%w: training needs %s, in %s", ErrWrongPhase, state.PhasePreparation, gs.Phase)
	}
	skill, ok := gs.Skill(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSkill, id)
	}
	if skill.Level >= skill.MaxLevel {
		return fmt.Errorf("%w: %s", ErrSkillMaxed, id)
	}
	if !CanTrain(gs, skill) {
		return fmt.Errorf("%w: %s prerequisites %v", ErrRequirementsNotMet, id, skill.Requirements)
	}

	r.store.Dispatch(state.ApplyEffect{Effect: func(gs state.GameState) state.GameState {
		s, ok := gs.Skill(id)
		if !ok || gs.Phase != state.PhasePreparation {
			return gs
		}
		gs = state.Reduce(gs, state.UpdateSkill{ID: id, Level: state.ClampSkillLevel(s.Level+1, s.MaxLevel)})
		gs = state.Reduce(gs, state.TickCountdown{Seconds: TrainSkillSeconds})
		return state.Reduce(gs, state.UpdatePreparednessScore{Score: gs.PreparednessScore + TrainSkillScore})
	}})

	r.logger.Info("Skill trained", "skill", id, "level", min(skill.Level+1, skill.MaxLevel))
	return nil
}

// KeepDiscoveredItem moves the latest discovery into the inventory.
func (r *Resolver) KeepDiscoveredItem() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs := r.store.State()
	if err := checkDiscovery(gs); err != nil {
		return err
	}
	item := gs.ItemsDiscovered[len(gs.ItemsDiscovered)-1]
	r.store.Dispatch(state.ApplyEffect{Effect: whilePreparing(state.KeepItem{Item: item})})

	r.logger.Info("Discovered item kept", "item", item.ID, "quantity", item.Quantity)
	return nil
}

// DiscardDiscoveredItem drops the latest discovery.
func (r *Resolver) DiscardDiscoveredItem() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs := r.store.State()
	if err := checkDiscovery(gs); err != nil {
		return err
	}
	r.store.Dispatch(state.ApplyEffect{Effect: whilePreparing(state.DiscardItem{})})

	r.logger.Debug("Discovered item discarded", "item", gs.ItemsDiscovered[len(gs.ItemsDiscovered)-1].ID)
	return nil
}

func checkDiscovery(gs state.GameState) error {
	if gs.Phase != state.PhasePreparation {
		return fmt.Errorf("%w: discoveries need %s, in %s", ErrWrongPhase, state.PhasePreparation, gs.Phase)
	}
	if len(gs.ItemsDiscovered) == 0 {
		return ErrNoDiscovery
	}
	return nil
}

// whilePreparing applies a only if the preparation phase is still running
// and a discovery is pending.
func whilePreparing(a state.Action) state.Effect {
	return func(gs state.GameState) state.GameState {
		if gs.Phase != state.PhasePreparation || len(gs.ItemsDiscovered) == 0 {
			return gs
		}
		return state.Reduce(gs, a)
	}
}
