package resolver

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/survival-engine/pkg/content"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureTables() *content.Tables {
	return &content.Tables{
		Story: []state.StoryStep{
			{
				Description: "Morning.",
				Choices: []state.StoryChoice{
					{ID: "stock_up", Text: "Stock up", Effects: &state.FlatEffects{
						Resources: []state.ResourceDelta{
							{ID: "water", Quantity: 3, Name: "Water", Category: state.CategoryBasic, Location: "House", Icon: "💧"},
							{ID: "rubberBands", Quantity: 5},
						},
					}},
					{ID: "work_out", Text: "Exercise", Effects: &state.FlatEffects{
						Skills: []state.SkillDelta{{ID: "survival101", Level: 10}},
					}},
					{ID: "nap", Text: "Nap"},
					{ID: "fetch_tarp", Text: "Fetch the tarp", Effects: &state.FlatEffects{
						Resources: []state.ResourceDelta{
							{ID: "water", Quantity: 1},
							{ID: "tarp", Quantity: 1, Name: "Tarp", Category: state.CategoryTools, Location: "House", Icon: "⛺"},
						},
					}},
				},
			},
			{
				Description: "Evening.",
				Choices:     []state.StoryChoice{{ID: "sleep", Text: "Sleep"}},
			},
		},
	}
}

func newStore(gs state.GameState) *state.Store {
	return state.NewStore(gs, discardLogger())
}

func baseState() state.GameState {
	gs := state.NewGameState()
	gs.Resources = []state.Resource{
		{ID: "water", Name: "Water", Quantity: 1, Category: state.CategoryBasic, Location: "House"},
		{ID: "whistle", Name: "Whistle", Quantity: 1, Category: state.CategoryTools, Location: state.LocationOnPerson},
	}
	gs.Skills = []state.Skill{
		{ID: "survival101", Name: "Survival 101", Level: 1, MaxLevel: 5},
		{ID: "firemaking", Name: "Firemaking", Level: 0, MaxLevel: 5, Requirements: []string{"survival101"}},
		{ID: "tracking", Name: "Tracking", Level: 0, MaxLevel: 3, Requirements: []string{"firemaking"}},
	}
	return gs
}

func TestResolveStoryChoice_FlatEffects(t *testing.T) {
	store := newStore(baseState())
	r := New(store, fixtureTables(), discardLogger())

	require.NoError(t, r.ResolveStoryChoice("stock_up"))

	gs := store.State()
	water, ok := gs.Resource("water")
	require.True(t, ok)
	assert.Equal(t, 4, water.Quantity)
	assert.False(t, gs.HasResource("rubberBands"), "partial record for a missing id is dropped")
	assert.Equal(t, 1, gs.StoryStep)
	assert.Equal(t, state.PhasePreparation, gs.Phase)
}

func TestResolveStoryChoice_ClampsSkill(t *testing.T) {
	store := newStore(baseState())
	r := New(store, fixtureTables(), discardLogger())

	require.NoError(t, r.ResolveStoryChoice("work_out"))

	skill, _ := store.State().Skill("survival101")
	assert.Equal(t, 5, skill.Level)
}

func TestResolveStoryChoice_Errors(t *testing.T) {
	t.Run("unknown choice", func(t *testing.T) {
		store := newStore(baseState())
		before := store.State()
		err := New(store, fixtureTables(), discardLogger()).ResolveStoryChoice("dance")
		assert.ErrorIs(t, err, ErrUnknownChoice)
		assert.Equal(t, before, store.State())
	})

	t.Run("step out of range", func(t *testing.T) {
		gs := baseState()
		gs.StoryStep = 9
		store := newStore(gs)
		err := New(store, fixtureTables(), discardLogger()).ResolveStoryChoice("sleep")
		assert.ErrorIs(t, err, ErrNoScenario)
	})

	t.Run("wrong phase", func(t *testing.T) {
		gs := baseState()
		gs.Phase = state.PhaseSurvival
		store := newStore(gs)
		err := New(store, fixtureTables(), discardLogger()).ResolveStoryChoice("nap")
		assert.ErrorIs(t, err, ErrWrongPhase)
	})
}

func TestResolveStoryChoice_TerminatesInDisaster(t *testing.T) {
	tables, err := content.Load()
	require.NoError(t, err)

	store := newStore(baseState())
	r := New(store, tables, discardLogger())

	for i := 0; i < len(tables.Story); i++ {
		gs := store.State()
		require.Equal(t, state.PhasePreparation, gs.Phase, "step %d", i)
		require.Less(t, gs.StoryStep, len(tables.Story))
		step, ok := tables.StoryStep(gs.StoryStep)
		require.True(t, ok)
		require.NoError(t, r.ResolveStoryChoice(step.Choices[0].ID))
	}

	gs := store.State()
	assert.Equal(t, state.PhaseDisaster, gs.Phase)
	assert.Equal(t, len(tables.Story)-1, gs.StoryStep)

	err = r.ResolveStoryChoice(tables.Story[0].Choices[0].ID)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestResolveStoryChoice_ResetsFreeAction(t *testing.T) {
	gs := baseState()
	gs.FreeActionUsed = true
	store := newStore(gs)

	require.NoError(t, New(store, fixtureTables(), discardLogger()).ResolveStoryChoice("nap"))
	assert.False(t, store.State().FreeActionUsed)
}

func TestResolveStoryChoice_AppliesAsOneTransition(t *testing.T) {
	store := newStore(baseState())
	r := New(store, fixtureTables(), discardLogger())

	var seen []state.ActionType
	store.Subscribe(func(prev, next state.GameState, a state.Action) {
		seen = append(seen, a.Type())
		if len(seen) == 1 {
			store.Dispatch(state.StartDisaster{Disaster: state.DisasterFlood})
		}
	})

	require.NoError(t, r.ResolveStoryChoice("fetch_tarp"))

	gs := store.State()
	assert.Equal(t, []state.ActionType{state.ActApplyEffect, state.ActStartDisaster}, seen)
	assert.Equal(t, state.PhaseDisaster, gs.Phase)
	for _, res := range gs.Resources {
		assert.Equal(t, state.LocationOnPerson, res.Location, "resource %s", res.ID)
	}
	assert.False(t, gs.HasResource("tarp"))
}

func TestStoryChoiceEffect_DroppedOutsideItsStep(t *testing.T) {
	effects := fixtureTables().Story[0].Choices[3].Effects

	tests := []struct {
		name  string
		setup func(gs *state.GameState)
	}{
		{"disaster started", func(gs *state.GameState) { gs.Phase = state.PhaseDisaster }},
		{"step already advanced", func(gs *state.GameState) { gs.StoryStep = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := baseState()
			tt.setup(&gs)
			assert.Equal(t, gs, storyChoiceEffect(0, effects, false)(gs))
		})
	}

	gs := storyChoiceEffect(0, effects, false)(baseState())
	assert.Equal(t, 1, gs.StoryStep)
	assert.True(t, gs.HasResource("tarp"))
}

func TestResolveEvent(t *testing.T) {
	store := newStore(baseState())
	r := New(store, fixtureTables(), discardLogger())

	assert.ErrorIs(t, r.ResolveEvent(0), ErrNoActiveEvent)

	store.Dispatch(state.TriggerEvent{Event: state.GameEvent{
		ID:   "localSale",
		Name: "Sale at Local Store",
		Choices: []state.EventChoice{
			{Text: "Buy", Effect: func(gs state.GameState) state.GameState {
				gs.PreparednessScore += 10
				return gs
			}},
			{Text: "Ignore"},
		},
	}})

	assert.ErrorIs(t, r.ResolveEvent(5), ErrUnknownChoice)
	require.NotNil(t, store.State().CurrentEvent)

	require.NoError(t, r.ResolveEvent(0))
	gs := store.State()
	assert.Nil(t, gs.CurrentEvent)
	assert.Equal(t, 10, gs.PreparednessScore)
	assert.Equal(t, []string{"Sale at Local Store"}, gs.Events)

	assert.ErrorIs(t, r.ResolveEvent(0), ErrNoActiveEvent)
}

func disasterState() state.GameState {
	gs := baseState()
	gs = state.Reduce(gs, state.StartDisaster{Disaster: state.DisasterEarthquake})
	d := &state.Disaster{
		ID:   "earthquake",
		Type: state.DisasterEarthquake,
		InitialScenarios: []state.Scenario{
			{ID: "trapped", Choices: []state.Choice{
				{ID: "useTools", RequiredResources: []string{"multitool"}},
				{ID: "callForHelp", RequiredResources: []string{"whistle"}, Consequence: func(gs state.GameState) state.GameState {
					gs.PreparednessScore += 3
					return gs
				}},
			}},
			{ID: "aftershock", Choices: []state.Choice{{ID: "brace"}}},
		},
		OngoingEffects: func(gs state.GameState) state.GameState {
			return state.Reduce(gs, state.AddEvent{Name: "aftershocks"})
		},
	}
	sp := *gs.SurvivalPhase
	sp.Disaster = d
	gs = state.Reduce(gs, state.SetSurvivalPhase{Survival: &sp})
	first := d.InitialScenarios[0]
	return state.Reduce(gs, state.SetScenario{Scenario: &first, Index: 0})
}

func TestResolveScenarioChoice_DisasterProgression(t *testing.T) {
	store := newStore(disasterState())
	r := New(store, fixtureTables(), discardLogger())

	_, err := r.ResolveScenarioChoice("useTools")
	assert.ErrorIs(t, err, ErrChoiceUnavailable)

	_, err = r.ResolveScenarioChoice("swim")
	assert.ErrorIs(t, err, ErrUnknownChoice)

	done, err := r.ResolveScenarioChoice("callForHelp")
	require.NoError(t, err)
	assert.False(t, done)
	gs := store.State()
	assert.Equal(t, 3, gs.PreparednessScore)
	assert.Equal(t, "aftershock", gs.SurvivalPhase.CurrentScenario.ID)
	assert.Equal(t, 1, gs.SurvivalPhase.ScenarioIndex)

	done, err = r.ResolveScenarioChoice("brace")
	require.NoError(t, err)
	assert.True(t, done)
	gs = store.State()
	assert.Nil(t, gs.SurvivalPhase.CurrentScenario)
	assert.Equal(t, []string{"aftershocks"}, gs.Events)

	_, err = r.ResolveScenarioChoice("brace")
	assert.ErrorIs(t, err, ErrNoScenario)
}

func TestResolveScenarioChoice_Survival(t *testing.T) {
	gs := disasterState()
	gs = state.Reduce(gs, state.StartSurvivalPhase{})
	gs = state.Reduce(gs, state.SetScenario{Scenario: &state.Scenario{
		ID:      "water_shortage",
		Choices: []state.Choice{{ID: "ration", Consequence: func(gs state.GameState) state.GameState { return state.Reduce(gs, state.AdvanceDay{}) }}},
	}, Index: 0})
	store := newStore(gs)
	r := New(store, fixtureTables(), discardLogger())

	done, err := r.ResolveScenarioChoice("ration")
	require.NoError(t, err)
	assert.False(t, done)
	after := store.State()
	assert.Nil(t, after.SurvivalPhase.CurrentScenario)
	assert.Equal(t, gs.Day+1, after.Day)
}

func TestResolveScenarioChoice_WrongPhase(t *testing.T) {
	gs := disasterState()
	gs.Phase = state.PhasePreparation
	store := newStore(gs)

	_, err := New(store, fixtureTables(), discardLogger()).ResolveScenarioChoice("callForHelp")
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.Equal(t, gs, store.State())
}

func TestTrainSkill(t *testing.T) {
	store := newStore(baseState())
	r := New(store, fixtureTables(), discardLogger())

	require.NoError(t, r.TrainSkill("survival101"))
	gs := store.State()
	skill, _ := gs.Skill("survival101")
	assert.Equal(t, 2, skill.Level)
	assert.Equal(t, 270, gs.TimeRemaining)
	assert.Equal(t, TrainSkillScore, gs.PreparednessScore)

	assert.ErrorIs(t, r.TrainSkill("juggling"), ErrUnknownSkill)
	assert.ErrorIs(t, r.TrainSkill("tracking"), ErrRequirementsNotMet)

	require.NoError(t, r.TrainSkill("firemaking"))
	require.NoError(t, r.TrainSkill("tracking"))

	for i := 0; i < 3; i++ {
		_ = r.TrainSkill("survival101")
	}
	assert.ErrorIs(t, r.TrainSkill("survival101"), ErrSkillMaxed)
	skill, _ = store.State().Skill("survival101")
	assert.Equal(t, 5, skill.Level)
}

func TestTrainSkill_TimeFloorsAtZero(t *testing.T) {
	gs := baseState()
	gs.TimeRemaining = 10
	store := newStore(gs)

	require.NoError(t, New(store, fixtureTables(), discardLogger()).TrainSkill("survival101"))
	assert.Equal(t, 0, store.State().TimeRemaining)
}

func TestDiscoveredItems(t *testing.T) {
	store := newStore(baseState())
	r := New(store, fixtureTables(), discardLogger())

	assert.ErrorIs(t, r.KeepDiscoveredItem(), ErrNoDiscovery)
	assert.ErrorIs(t, r.DiscardDiscoveredItem(), ErrNoDiscovery)

	item := state.Resource{ID: "batteries", Name: "Batteries", Quantity: 2, Category: state.CategoryTools, Location: "House"}
	store.Dispatch(state.DiscoverItem{Item: item})
	require.NoError(t, r.KeepDiscoveredItem())
	assert.True(t, store.State().HasResource("batteries"))
	assert.Empty(t, store.State().ItemsDiscovered)

	store.Dispatch(state.DiscoverItem{Item: state.Resource{ID: "rope", Quantity: 1, Category: state.CategoryTools}})
	require.NoError(t, r.DiscardDiscoveredItem())
	assert.False(t, store.State().HasResource("rope"))
}

func TestDiscoveredItems_OnlyWhilePreparing(t *testing.T) {
	item := state.Resource{ID: "canFood", Name: "Canned Food", Quantity: 3, Category: state.CategoryBasic, Location: "House"}

	t.Run("lost when the disaster strikes", func(t *testing.T) {
		store := newStore(baseState())
		r := New(store, fixtureTables(), discardLogger())
		store.Dispatch(state.DiscoverItem{Item: item})
		store.Dispatch(state.StartDisaster{Disaster: state.DisasterFlood})

		assert.ErrorIs(t, r.KeepDiscoveredItem(), ErrWrongPhase)
		assert.ErrorIs(t, r.DiscardDiscoveredItem(), ErrWrongPhase)
		gs := store.State()
		assert.False(t, gs.HasResource("canFood"))
		assert.Zero(t, gs.PreparednessScore)
	})

	t.Run("refused outside preparation", func(t *testing.T) {
		gs := baseState()
		gs.Phase = state.PhaseSurvival
		gs.ItemsDiscovered = []state.Resource{item}
		store := newStore(gs)
		r := New(store, fixtureTables(), discardLogger())

		assert.ErrorIs(t, r.KeepDiscoveredItem(), ErrWrongPhase)
		assert.ErrorIs(t, r.DiscardDiscoveredItem(), ErrWrongPhase)
		assert.Equal(t, gs, store.State())
	})
}
