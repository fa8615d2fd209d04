// Package controller drives the time-based parts of a game: the preparation
// countdown, the disaster timer, random events, timed actions and the
// survival day tick.
package controller

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/survival-engine/pkg/content"
	"github.com/jwebster45206/survival-engine/pkg/random"
	"github.com/jwebster45206/survival-engine/pkg/resolver"
	"github.com/jwebster45206/survival-engine/pkg/schedule"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

// Controller owns the timers of one game session. Every callback reads the
// latest state from the store; nothing is captured across ticks.
type Controller struct {
	store    *state.Store
	tables   *content.Tables
	resolver *resolver.Resolver
	sched    schedule.Scheduler
	rng      random.Source
	logger   *slog.Logger
	opts     Options

	prep     schedule.Group // countdown, disaster timer, running action
	survival schedule.Group // day tick

	actMu sync.Mutex // serializes PerformAction

	mu            sync.Mutex // guards the fields below; never held across Dispatch
	started       bool
	disasterFired bool
	unsubscribe   func()
}

// New creates a controller. It does nothing until Start is called.
func New(store *state.Store, tables *content.Tables, sched schedule.Scheduler, rng random.Source, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:    store,
		tables:   tables,
		resolver: resolver.New(store, tables, logger),
		sched:    sched,
		rng:      rng,
		logger:   logger,
		opts:     DefaultOptions(),
	}
}

// WithOptions replaces the pacing options. Returns the Controller for
// method chaining.
func (c *Controller) WithOptions(opts Options) *Controller {
	c.opts = opts
	return c
}

// Resolver exposes the resolver bound to the same store.
func (c *Controller) Resolver() *resolver.Resolver {
	return c.resolver
}

// Tables returns the content the controller draws from.
func (c *Controller) Tables() *content.Tables {
	return c.tables
}

// Store returns the store the controller drives.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Start begins the preparation phase. A state without resources or skills
// is first given a random starting inventory and the initial skills.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.disasterFired = false
	c.mu.Unlock()

	gs := c.store.State()
	if len(gs.Resources) == 0 && len(gs.Skills) == 0 {
		inventory := c.tables.GenerateStartingInventory(c.rng)
		c.store.Dispatch(state.InitializeGame{Resources: inventory, Skills: c.tables.InitialSkills()})
		c.logger.Info("Starting inventory generated", "items", len(inventory))
	}

	unsubscribe := c.store.Subscribe(c.onChange)
	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	c.prep.Add(c.sched.Every(c.opts.CountdownInterval, c.tickCountdown))

	minSecs := int(c.opts.DisasterWindowMin / time.Second)
	maxSecs := int(c.opts.DisasterWindowMax / time.Second)
	delay := time.Duration(random.IntRange(c.rng, minSecs, maxSecs)) * time.Second
	c.prep.Add(c.sched.After(delay, func() {
		if err := c.TriggerDisaster(); err != nil {
			c.logger.Debug("Disaster timer skipped", "error", err)
		}
	}))

	c.store.Dispatch(state.StartPreparationPhase{})
	c.logger.Info("Preparation started",
		"game_id", gs.ID,
		"seconds", state.DefaultPreparationSeconds,
		"disaster_in", delay.String())
	return nil
}

// Stop cancels every timer and stops reacting to state changes.
func (c *Controller) Stop() {
	c.prep.CancelAll()
	c.survival.CancelAll()

	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.started = false
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	c.logger.Debug("Controller stopped")
}

func (c *Controller) tickCountdown() {
	gs := c.store.Dispatch(state.TickCountdown{Seconds: 1})
	if gs.Phase == state.PhasePreparation && gs.TimeRemaining == 0 {
		c.logger.Info("Preparation time is up")
		c.store.Dispatch(state.EndPreparationPhase{})
	}
}

// onChange reacts to every transition. It runs outside the store lock.
func (c *Controller) onChange(prev, next state.GameState, a state.Action) {
	if prev.Phase == state.PhasePreparation && next.Phase != state.PhasePreparation {
		c.leavePreparation()
		return
	}
	if prev.Phase != state.PhaseSurvival && next.Phase == state.PhaseSurvival {
		c.beginSurvival()
		return
	}
	if next.Phase == state.PhasePreparation {
		c.rollEvent()
	}
}

// rollEvent surfaces a random event with probability EventChance when the
// player is idle.
func (c *Controller) rollEvent() {
	gs := c.store.State()
	if gs.Phase != state.PhasePreparation || gs.CurrentAction != nil || gs.CurrentEvent != nil {
		return
	}
	if !random.Chance(c.rng, c.opts.EventChance) {
		return
	}
	ev, ok := random.Pick(c.rng, c.tables.EligibleEvents(gs))
	if !ok {
		return
	}
	c.store.Dispatch(state.TriggerEvent{Event: ev})
	c.logger.Info("Event triggered", "event", ev.ID)
}

func (c *Controller) leavePreparation() {
	c.prep.CancelAll()
	if c.store.State().Disaster == "" {
		c.fireDisaster()
	}
}

// TriggerDisaster strikes with a uniformly random disaster. It fires at
// most once per game.
func (c *Controller) TriggerDisaster() error {
	if !c.fireDisaster() {
		return ErrDisasterAlreadyTriggered
	}
	return nil
}

func (c *Controller) fireDisaster() bool {
	c.mu.Lock()
	if c.disasterFired {
		c.mu.Unlock()
		return false
	}
	c.disasterFired = true
	c.mu.Unlock()

	dt, _ := random.Pick(c.rng, state.DisasterTypes)
	c.startDisaster(dt)
	return true
}

func (c *Controller) startDisaster(dt state.DisasterType) {
	c.prep.CancelAll()
	gs := c.store.Dispatch(state.StartDisaster{Disaster: dt})
	c.logger.Info("Disaster triggered",
		"disaster", dt,
		"resources_kept", len(gs.Resources),
		"time_remaining", gs.TimeRemaining)

	d, ok := c.tables.Disaster(dt)
	if !ok || len(d.InitialScenarios) == 0 {
		c.logger.Warn("No scenarios for disaster, moving to survival", "disaster", dt)
		c.store.Dispatch(state.StartSurvivalPhase{})
		return
	}

	first := d.InitialScenarios[0]
	c.store.Dispatch(state.ApplyEffect{Effect: func(gs state.GameState) state.GameState {
		if gs.Phase != state.PhaseDisaster || gs.Disaster != dt || gs.SurvivalPhase == nil {
			return gs
		}
		sp := *gs.SurvivalPhase
		sp.Disaster = d
		gs = state.Reduce(gs, state.SetSurvivalPhase{Survival: &sp})
		return state.Reduce(gs, state.SetScenario{Scenario: &first, Index: 0})
	}})
}

// ChooseStory resolves a story choice. Choosing at the last step ends
// preparation and brings on the disaster.
func (c *Controller) ChooseStory(id string) error {
	return c.resolver.ResolveStoryChoice(id)
}

// ChooseEvent resolves the current event with choice index.
func (c *Controller) ChooseEvent(index int) error {
	return c.resolver.ResolveEvent(index)
}

// ChooseScenario resolves a disaster or survival scenario choice. Once the
// disaster's scenarios are exhausted the survival phase begins.
func (c *Controller) ChooseScenario(id string) error {
	done, err := c.resolver.ResolveScenarioChoice(id)
	if err != nil {
		return err
	}
	if done {
		c.store.Dispatch(state.StartSurvivalPhase{})
	}
	return nil
}

// PerformAction starts the action with the given id. Free actions apply at
// once and are limited to one per story step; timed actions complete after
// their duration.
func (c *Controller) PerformAction(id string) error {
	c.actMu.Lock()
	defer c.actMu.Unlock()

	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return ErrNotStarted
	}

	gs := c.store.State()
	if gs.Phase != state.PhasePreparation {
		return fmt.Errorf("%w: actions need %s, in %s", ErrWrongPhase, state.PhasePreparation, gs.Phase)
	}
	action, ok := c.tables.Action(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, id)
	}
	if gs.CurrentAction != nil {
		return fmt.Errorf("%w: %s", ErrActionInProgress, gs.CurrentAction.ID)
	}
	if action.IsFree && gs.FreeActionUsed {
		return ErrFreeActionUsed
	}
	if err := resolver.CheckAction(gs, action); err != nil {
		return err
	}

	if action.IsFree {
		c.store.Dispatch(state.UseFreeAction{Action: action})
		c.logger.Info("Free action used", "action", action.ID, "score", action.ScoreIncrease)
		c.rollDiscovery(action)
		return nil
	}

	c.store.Dispatch(state.PerformAction{Action: action})
	c.logger.Info("Action started", "action", action.ID, "duration", action.Duration)

	c.prep.Add(c.sched.After(time.Duration(action.Duration)*time.Second, func() {
		c.completeAction(action)
	}))
	return nil
}

func (c *Controller) completeAction(action state.GameAction) {
	gs := c.store.State()
	if gs.CurrentAction == nil || gs.CurrentAction.ID != action.ID {
		return
	}
	gs = c.store.Dispatch(state.CompleteAction{ID: action.ID, ScoreIncrease: action.ScoreIncrease, Effect: action.ImmediateEffect})
	if gs.Phase != state.PhasePreparation {
		return
	}
	c.logger.Info("Action completed", "action", action.ID, "score", action.ScoreIncrease)
	c.rollDiscovery(action)
}

// rollDiscovery may offer the player a random item after an action.
func (c *Controller) rollDiscovery(action state.GameAction) {
	chance := action.DiscoveryChance
	if chance == 0 && !action.IsFree {
		chance = c.opts.DiscoveryChance
	}
	if chance <= 0 || !random.Chance(c.rng, chance) {
		return
	}
	item, ok := c.tables.RandomItem(c.rng)
	if !ok {
		return
	}
	c.store.Dispatch(state.DiscoverItem{Item: item})
	c.logger.Info("Item discovered", "item", item.ID, "action", action.ID)
}

func (c *Controller) beginSurvival() {
	gs := c.store.State()
	c.logger.Info("Survival phase started", "disaster", gs.Disaster, "day", gs.Day)
	c.survival.Add(c.sched.Every(c.opts.SurvivalTickInterval, c.survivalTick))
	c.drawScenario(gs)
}

func (c *Controller) survivalTick() {
	gs := c.store.Dispatch(state.SurvivalTick{})
	if gs.IsGameOver() {
		c.survival.CancelAll()
		c.logger.Info("Game over", "day", gs.Day, "score", gs.PreparednessScore)
		return
	}
	c.drawScenario(gs)
}

// drawScenario picks a scenario for the current stage if none is active.
func (c *Controller) drawScenario(gs state.GameState) {
	sp := gs.SurvivalPhase
	if gs.Phase != state.PhaseSurvival || sp == nil || sp.CurrentScenario != nil {
		return
	}
	scen, ok := c.tables.SurvivalScenario(c.rng, sp.Stage, sp.DisasterType)
	if !ok {
		c.logger.Debug("No survival scenario available", "stage", sp.Stage, "disaster", sp.DisasterType)
		return
	}
	c.store.Dispatch(state.SetScenario{Scenario: scen, Index: sp.ScenarioIndex + 1})
	c.logger.Info("Survival scenario drawn", "scenario", scen.ID, "stage", sp.Stage)
}

// GameOver reports whether the survival phase has ended.
func (c *Controller) GameOver() bool {
	gs := c.store.State()
	return gs.Phase == state.PhaseSurvival && gs.IsGameOver()
}
