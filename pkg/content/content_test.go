package content

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/survival-engine/pkg/random"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

func mustLoad(t *testing.T) *Tables {
	t.Helper()
	tables, err := Load()
	require.NoError(t, err)
	return tables
}

func TestLoad_EmbeddedTablesAreValid(t *testing.T) {
	tables := mustLoad(t)

	assert.NoError(t, tables.Validate())
	assert.Len(t, tables.Story, 7)
	assert.Len(t, tables.Disasters, len(state.DisasterTypes))
	assert.NotEmpty(t, tables.Actions)
	assert.NotEmpty(t, tables.Events)
	for _, stage := range state.Stages {
		assert.NotEmpty(t, tables.Survival[stage], "stage %s", stage)
	}
}

func TestLoadFS_RejectsUnknownKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"skills.yaml": {Data: []byte("skils:\n  - id: a\n")},
	}
	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skills.yaml")
}

func TestLoadFS_MergesFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":     {Data: []byte("skills:\n  - {id: a, name: A, level: 0, max_level: 3}\n")},
		"b.yaml":     {Data: []byte("skills:\n  - {id: b, name: B, level: 1, max_level: 3}\n")},
		"empty.yaml": {Data: []byte("")},
		"notes.txt":  {Data: []byte("ignored")},
	}
	tables, err := LoadFS(fsys)
	require.NoError(t, err)
	require.Len(t, tables.Skills, 2)
	assert.Equal(t, "a", tables.Skills[0].ID)
	assert.Equal(t, "b", tables.Skills[1].ID)
}

func TestLoadFS_NoFiles(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{})
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skills.yaml"),
		[]byte("skills:\n  - {id: a, name: A, level: 0, max_level: 3}\n"), 0644))

	tables, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, tables.Skills, 1)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestValidate_ReportsProblems(t *testing.T) {
	tables := &Tables{
		Skills: []state.Skill{{ID: "a", MaxLevel: 0}, {ID: "a", MaxLevel: 2, Requirements: []string{"nope"}}},
		Actions: []ActionDef{
			{ID: "free", IsFree: true, Duration: 10},
			{ID: "bad", Requirements: []string{"skill:x"}},
		},
		Disasters: []DisasterDef{{
			ID:   "quake",
			Type: state.DisasterEarthquake,
			InitialScenarios: []ScenarioDef{{
				ID:      "gated",
				Choices: []ChoiceDef{{ID: "c", Text: "c", RequiredResources: []string{"rope"}}},
			}},
		}},
	}

	problems := tables.Problems()
	require.NotEmpty(t, problems)

	want := []string{
		`skill "a" must have a positive max_level`,
		`duplicate skill id "a"`,
		`skill "a" requires unknown skill "nope"`,
		`free action "free" must have zero duration`,
		`action "bad": invalid requirement level in "skill:x"`,
		`disaster "quake" scenario "gated" has no choice without requirements`,
		`no disaster defined for type "Flood"`,
		"story has no steps",
		"no survival scenarios for stage InitialDisaster",
	}
	for _, w := range want {
		assert.Contains(t, problems, w)
	}

	err := tables.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		in      string
		id      string
		level   int
		wantErr bool
	}{
		{"multitool", "multitool", 0, false},
		{"construction:2", "construction", 2, false},
		{"construction:", "construction", 0, true},
		{"construction:-1", "construction", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, level, err := ParseRequirement(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestGenerateStartingInventory(t *testing.T) {
	tables := mustLoad(t)

	for seed := int64(0); seed < 50; seed++ {
		inv := tables.GenerateStartingInventory(random.NewSeeded(seed))
		seen := map[string]bool{}
		total := 0
		for _, r := range inv {
			assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
			seen[r.ID] = true
			total++
		}
		assert.GreaterOrEqual(t, total, 1)
		assert.LessOrEqual(t, total, 7)
	}
}

func TestGenerateStartingInventory_StacksDuplicates(t *testing.T) {
	tables := &Tables{StartingItems: []state.Resource{
		{ID: "batteries", Quantity: 4, Category: state.CategoryTools, Location: "House"},
		{ID: "blanket", Quantity: 2, Category: state.CategoryBasic, Location: "House"},
	}}
	// 0 selects three draws, then batteries, batteries, blanket.
	src := random.NewScripted(nil, []int{0, 0, 0, 1})

	inv := tables.GenerateStartingInventory(src)
	require.Len(t, inv, 2)
	assert.Equal(t, 8, inv[0].Quantity)
	assert.Equal(t, 2, inv[1].Quantity)
	assert.Equal(t, 4, tables.StartingItems[0].Quantity, "pool is not modified")
}

func TestRandomItem(t *testing.T) {
	tables := mustLoad(t)
	item, ok := tables.RandomItem(random.NewScripted(nil, []int{0}))
	require.True(t, ok)
	assert.Equal(t, tables.DiscoverableItems[0].ID, item.ID)

	_, ok = (&Tables{}).RandomItem(random.NewSeeded(1))
	assert.False(t, ok)
}

func TestDisasterCompiles(t *testing.T) {
	tables := mustLoad(t)

	for _, dt := range state.DisasterTypes {
		d, ok := tables.Disaster(dt)
		require.True(t, ok, "disaster %s", dt)
		assert.Equal(t, dt, d.Type)
		assert.NotEmpty(t, d.InitialScenarios)
	}

	quake, _ := tables.Disaster(state.DisasterEarthquake)
	trapped := quake.InitialScenarios[0]
	assert.Equal(t, "trapped", trapped.ID)
	useTools, ok := trapped.Choice("useTools")
	require.True(t, ok)
	assert.Equal(t, []string{"multitool"}, useTools.RequiredResources)
	require.NotNil(t, quake.OngoingEffects)

	gs := state.NewGameState()
	after := quake.OngoingEffects(gs)
	assert.Equal(t, 95, after.Character.Health)
	assert.Contains(t, after.Events, "Aftershocks continue for days")
}

func TestSurvivalScenario_FiltersByDisaster(t *testing.T) {
	tables := mustLoad(t)

	for i := 0; i < 10; i++ {
		s, ok := tables.SurvivalScenario(random.NewSeeded(int64(i)), state.StageInitialDisaster, state.DisasterFlood)
		require.True(t, ok)
		assert.NotEqual(t, "earthquake_home", s.ID)
	}

	_, ok := (&Tables{}).SurvivalScenario(random.NewSeeded(1), state.StageAccessResources, state.DisasterFlood)
	assert.False(t, ok)
}

func TestEligibleEvents(t *testing.T) {
	tables := mustLoad(t)
	gs := state.NewGameState()

	ids := func(events []state.GameEvent) []string {
		var out []string
		for _, e := range events {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"localSale"}, ids(tables.EligibleEvents(gs)))

	gs.Resources = []state.Resource{
		{ID: "flashlight", Quantity: 1, Category: state.CategoryTools},
		{ID: "batteries", Quantity: 2, Category: state.CategoryTools},
	}
	gs.StoryStep = 1
	gs.TimeRemaining = 100
	assert.ElementsMatch(t, []string{"localSale", "powerFlicker", "neighborVisit", "radioWarning"}, ids(tables.EligibleEvents(gs)))
}

func TestEffectSpec_Compile(t *testing.T) {
	assert.Nil(t, EffectSpec{}.Compile())

	spec := EffectSpec{
		Resources: []state.ResourceDelta{{ID: "food", Quantity: 5, Name: "Canned Food", Category: state.CategoryBasic, Location: "House", Icon: "🥫"}},
		Skills:    []state.SkillDelta{{ID: "awareness", Name: "Awareness", Icon: "👀", Description: "Notice."}},
		Score:     10,
		Health:    -30,
		Morale:    20,
		Days:      2,
		Stage:     state.StageSurvivalChallenges,
		Location:  "Rooftop",
		Log:       "Did a thing",
	}
	gs := state.NewGameState()
	gs.SurvivalPhase = &state.SurvivalPhaseState{Stage: state.StageAccessResources, Day: 1}

	got := spec.Compile()(gs)

	food, ok := got.Resource("food")
	require.True(t, ok)
	assert.Equal(t, 5, food.Quantity)
	assert.True(t, got.HasSkill("awareness"))
	assert.Equal(t, 10, got.PreparednessScore)
	assert.Equal(t, 70, got.Character.Health)
	assert.Equal(t, 100, got.Character.Morale)
	assert.Equal(t, 3, got.Day)
	assert.Equal(t, 3, got.SurvivalPhase.Day)
	assert.Equal(t, state.StageSurvivalChallenges, got.SurvivalPhase.Stage)
	assert.Equal(t, "Rooftop", got.CurrentLocation)
	assert.Equal(t, []string{"Did a thing"}, got.Events)

	assert.Empty(t, gs.Resources, "input is untouched")
	assert.Equal(t, 1, gs.SurvivalPhase.Day)
}

func TestWhen_Matches(t *testing.T) {
	step := 2
	maxTime := 100
	gs := state.NewGameState()
	gs.StoryStep = 3
	gs.TimeRemaining = 50
	gs.Skills = []state.Skill{{ID: "awareness", MaxLevel: 5}}

	tests := []struct {
		name string
		when When
		want bool
	}{
		{"empty", When{}, true},
		{"phase match", When{Phase: state.PhasePreparation}, true},
		{"phase mismatch", When{Phase: state.PhaseSurvival}, false},
		{"story step", When{MinStoryStep: &step}, true},
		{"time", When{MaxTimeRemaining: &maxTime}, true},
		{"skill", When{HasSkills: []string{"awareness"}}, true},
		{"missing resource", When{HasResources: []string{"rope"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.when.Matches(gs))
		})
	}
}
