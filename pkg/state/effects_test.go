package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatEffects_Resources(t *testing.T) {
	tests := []struct {
		name    string
		effects FlatEffects
		check   func(t *testing.T, gs GameState)
	}{
		{
			name:    "existing resource adds delta",
			effects: FlatEffects{Resources: []ResourceDelta{{ID: "water", Quantity: 2}}},
			check: func(t *testing.T, gs GameState) {
				r, _ := gs.Resource("water")
				assert.Equal(t, 5, r.Quantity)
			},
		},
		{
			name:    "existing resource floors at zero",
			effects: FlatEffects{Resources: []ResourceDelta{{ID: "food", Quantity: -9}}},
			check: func(t *testing.T, gs GameState) {
				r, ok := gs.Resource("food")
				require.True(t, ok)
				assert.Equal(t, 0, r.Quantity)
			},
		},
		{
			name:    "partial record for missing id is dropped",
			effects: FlatEffects{Resources: []ResourceDelta{{ID: "rubberBands", Quantity: 5}}},
			check: func(t *testing.T, gs GameState) {
				assert.False(t, gs.HasResource("rubberBands"))
				assert.Len(t, gs.Resources, 4)
			},
		},
		{
			name: "complete record for missing id is added",
			effects: FlatEffects{Resources: []ResourceDelta{
				{ID: "tarp2", Name: "Tarp", Category: CategoryBasic, Location: "House", Icon: "⛺"},
			}},
			check: func(t *testing.T, gs GameState) {
				r, ok := gs.Resource("tarp2")
				require.True(t, ok)
				assert.Equal(t, 1, r.Quantity, "quantity defaults to 1")
			},
		},
		{
			name: "negative delta never adds",
			effects: FlatEffects{Resources: []ResourceDelta{
				{ID: "medicalSupplies", Quantity: -1, Name: "Medical Supplies", Category: CategoryBasic, Location: "House", Icon: "💊"},
			}},
			check: func(t *testing.T, gs GameState) {
				assert.False(t, gs.HasResource("medicalSupplies"))
			},
		},
		{
			name: "repeated id accumulates",
			effects: FlatEffects{Resources: []ResourceDelta{
				{ID: "rope", Quantity: 2, Name: "Rope", Category: CategoryTools, Location: "House", Icon: "🪢"},
				{ID: "rope", Quantity: 3},
			}},
			check: func(t *testing.T, gs GameState) {
				r, _ := gs.Resource("rope")
				assert.Equal(t, 5, r.Quantity)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.effects.Apply(testState()))
		})
	}
}

func TestFlatEffects_SkillsStayClamped(t *testing.T) {
	gs := testState()
	fe := &FlatEffects{Skills: []SkillDelta{{ID: "survival101", Level: 1}}}

	for i := 0; i < 10; i++ {
		gs = fe.Apply(gs)
		s, _ := gs.Skill("survival101")
		assert.GreaterOrEqual(t, s.Level, 0)
		assert.LessOrEqual(t, s.Level, s.MaxLevel)
	}
	s, _ := gs.Skill("survival101")
	assert.Equal(t, 5, s.Level)

	down := &FlatEffects{Skills: []SkillDelta{{ID: "survival101", Level: -20}}}
	gs = down.Apply(gs)
	s, _ = gs.Skill("survival101")
	assert.Equal(t, 0, s.Level)
}

func TestFlatEffects_SkillDefaults(t *testing.T) {
	gs := testState()
	fe := &FlatEffects{Skills: []SkillDelta{
		{ID: "firemaking"},
		{ID: "awareness", Name: "Awareness", Icon: "👀", Description: "Notice trouble."},
		{ID: "fitness"},
	}}

	actions := fe.Actions(gs)
	require.Len(t, actions, 2)
	assert.Equal(t, UpdateSkill{ID: "firemaking", Level: 1}, actions[0])

	gs = fe.Apply(gs)
	awareness, ok := gs.Skill("awareness")
	require.True(t, ok)
	assert.Equal(t, 1, awareness.Level)
	assert.Equal(t, DefaultSkillMaxLevel, awareness.MaxLevel)
	assert.False(t, gs.HasSkill("fitness"))
}

func TestFlatEffects_Empty(t *testing.T) {
	var fe *FlatEffects
	assert.Nil(t, fe.Actions(testState()))
	assert.True(t, fe.IsEmpty())
}

func TestChain(t *testing.T) {
	assert.Nil(t, Chain(nil, nil))

	inc := func(gs GameState) GameState { gs.Day++; return gs }
	eff := Chain(inc, nil, inc)
	require.NotNil(t, eff)
	assert.Equal(t, 3, eff(NewGameState()).Day)
}
