// Package content holds the static game tables: skills, items, story steps,
// actions, events, disasters and survival scenarios. Tables are authored as
// YAML and compiled into the state package's types on demand.
package content

import (
	"slices"

	"github.com/jwebster45206/survival-engine/pkg/random"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

// ActionDef is a preparation action as authored.
type ActionDef struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Category        string     `yaml:"category"`
	Duration        int        `yaml:"duration"`
	Description     string     `yaml:"description"`
	Requirements    []string   `yaml:"requirements,omitempty"`
	Icon            string     `yaml:"icon"`
	IsFree          bool       `yaml:"is_free,omitempty"`
	ScoreIncrease   int        `yaml:"score_increase,omitempty"`
	Skill           string     `yaml:"skill,omitempty"`
	MaxLevel        int        `yaml:"max_level,omitempty"`
	LongTermEffect  string     `yaml:"long_term_effect,omitempty"`
	Consequences    string     `yaml:"consequences,omitempty"`
	DiscoveryChance float64    `yaml:"discovery_chance,omitempty"`
	Effect          EffectSpec `yaml:"effect,omitempty"`
}

// GameAction compiles the definition.
func (d ActionDef) GameAction() state.GameAction {
	return state.GameAction{
		ID:              d.ID,
		Name:            d.Name,
		Category:        d.Category,
		Duration:        d.Duration,
		Description:     d.Description,
		Requirements:    slices.Clone(d.Requirements),
		ImmediateEffect: d.Effect.Compile(),
		LongTermEffect:  d.LongTermEffect,
		Consequences:    d.Consequences,
		IsFree:          d.IsFree,
		Icon:            d.Icon,
		ScoreIncrease:   d.ScoreIncrease,
		MaxLevel:        d.MaxLevel,
		Skill:           d.Skill,
		DiscoveryChance: d.DiscoveryChance,
	}
}

// EventChoiceDef is one authored response to an event.
type EventChoiceDef struct {
	Text   string     `yaml:"text"`
	Effect EffectSpec `yaml:"effect,omitempty"`
}

// EventDef is a random preparation event as authored.
type EventDef struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Icon        string           `yaml:"icon"`
	Choices     []EventChoiceDef `yaml:"choices"`
	When        When             `yaml:"when,omitempty"`
}

// GameEvent compiles the definition.
func (d EventDef) GameEvent() state.GameEvent {
	ev := state.GameEvent{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Choices:     make([]state.EventChoice, 0, len(d.Choices)),
	}
	for _, c := range d.Choices {
		ev.Choices = append(ev.Choices, state.EventChoice{Text: c.Text, Effect: c.Effect.Compile()})
	}
	return ev
}

// ChoiceDef is one authored branch of a scenario.
type ChoiceDef struct {
	ID                string     `yaml:"id"`
	Text              string     `yaml:"text"`
	RequiredSkills    []string   `yaml:"required_skills,omitempty"`
	RequiredResources []string   `yaml:"required_resources,omitempty"`
	Consequence       EffectSpec `yaml:"consequence,omitempty"`
}

// ScenarioDef is an authored decision point. Disasters restricts survival
// scenarios to particular disaster types.
type ScenarioDef struct {
	ID          string               `yaml:"id"`
	Description string               `yaml:"description"`
	Disasters   []state.DisasterType `yaml:"disasters,omitempty"`
	Choices     []ChoiceDef          `yaml:"choices"`
}

// Scenario compiles the definition.
func (d ScenarioDef) Scenario() *state.Scenario {
	s := &state.Scenario{
		ID:          d.ID,
		Description: d.Description,
		Choices:     make([]state.Choice, 0, len(d.Choices)),
	}
	for _, c := range d.Choices {
		s.Choices = append(s.Choices, state.Choice{
			ID:                c.ID,
			Text:              c.Text,
			Consequence:       c.Consequence.Compile(),
			RequiredSkills:    slices.Clone(c.RequiredSkills),
			RequiredResources: slices.Clone(c.RequiredResources),
		})
	}
	return s
}

func (d ScenarioDef) appliesTo(t state.DisasterType) bool {
	return len(d.Disasters) == 0 || slices.Contains(d.Disasters, t)
}

// DisasterDef is an authored disaster.
type DisasterDef struct {
	ID               string             `yaml:"id"`
	Type             state.DisasterType `yaml:"type"`
	Name             string             `yaml:"name"`
	Description      string             `yaml:"description"`
	InitialScenarios []ScenarioDef      `yaml:"initial_scenarios"`
	OngoingEffects   EffectSpec         `yaml:"ongoing_effects,omitempty"`
}

// Disaster compiles the definition.
func (d DisasterDef) Disaster() *state.Disaster {
	dis := &state.Disaster{
		ID:               d.ID,
		Type:             d.Type,
		Name:             d.Name,
		Description:      d.Description,
		InitialScenarios: make([]state.Scenario, 0, len(d.InitialScenarios)),
		OngoingEffects:   d.OngoingEffects.Compile(),
	}
	for _, s := range d.InitialScenarios {
		dis.InitialScenarios = append(dis.InitialScenarios, *s.Scenario())
	}
	return dis
}

// Tables is the complete set of game content.
type Tables struct {
	Skills            []state.Skill                 `yaml:"skills,omitempty"`
	StartingItems     []state.Resource              `yaml:"starting_items,omitempty"`
	DiscoverableItems []state.Resource              `yaml:"discoverable_items,omitempty"`
	Story             []state.StoryStep             `yaml:"story,omitempty"`
	Actions           []ActionDef                   `yaml:"actions,omitempty"`
	Events            []EventDef                    `yaml:"events,omitempty"`
	Disasters         []DisasterDef                 `yaml:"disasters,omitempty"`
	Survival          map[state.Stage][]ScenarioDef `yaml:"survival,omitempty"`
}

// merge appends other's tables onto t.
func (t *Tables) merge(other Tables) {
	t.Skills = append(t.Skills, other.Skills...)
	t.StartingItems = append(t.StartingItems, other.StartingItems...)
	t.DiscoverableItems = append(t.DiscoverableItems, other.DiscoverableItems...)
	t.Story = append(t.Story, other.Story...)
	t.Actions = append(t.Actions, other.Actions...)
	t.Events = append(t.Events, other.Events...)
	t.Disasters = append(t.Disasters, other.Disasters...)
	for stage, scenarios := range other.Survival {
		if t.Survival == nil {
			t.Survival = make(map[state.Stage][]ScenarioDef)
		}
		t.Survival[stage] = append(t.Survival[stage], scenarios...)
	}
}

// InitialSkills returns a copy of the starting skill list.
func (t *Tables) InitialSkills() []state.Skill {
	return slices.Clone(t.Skills)
}

// StoryStep returns the step at index i.
func (t *Tables) StoryStep(i int) (state.StoryStep, bool) {
	if i < 0 || i >= len(t.Story) {
		return state.StoryStep{}, false
	}
	return t.Story[i], true
}

// Action compiles the action with the given id.
func (t *Tables) Action(id string) (state.GameAction, bool) {
	for _, d := range t.Actions {
		if d.ID == id {
			return d.GameAction(), true
		}
	}
	return state.GameAction{}, false
}

// GameActions compiles every action in table order.
func (t *Tables) GameActions() []state.GameAction {
	out := make([]state.GameAction, 0, len(t.Actions))
	for _, d := range t.Actions {
		out = append(out, d.GameAction())
	}
	return out
}

// EligibleEvents compiles the events whose conditions hold in gs.
func (t *Tables) EligibleEvents(gs state.GameState) []state.GameEvent {
	var out []state.GameEvent
	for _, d := range t.Events {
		if d.When.Matches(gs) {
			out = append(out, d.GameEvent())
		}
	}
	return out
}

// Disaster compiles the disaster for the given type.
func (t *Tables) Disaster(dt state.DisasterType) (*state.Disaster, bool) {
	for _, d := range t.Disasters {
		if d.Type == dt {
			return d.Disaster(), true
		}
	}
	return nil, false
}

// SurvivalScenario draws a scenario for stage that applies to dt.
func (t *Tables) SurvivalScenario(src random.Source, stage state.Stage, dt state.DisasterType) (*state.Scenario, bool) {
	var matching []ScenarioDef
	for _, d := range t.Survival[stage] {
		if d.appliesTo(dt) {
			matching = append(matching, d)
		}
	}
	d, ok := random.Pick(src, matching)
	if !ok {
		return nil, false
	}
	return d.Scenario(), true
}

// GenerateStartingInventory draws between three and seven starting items.
// Items drawn more than once stack.
func (t *Tables) GenerateStartingInventory(src random.Source) []state.Resource {
	inventory := []state.Resource{}
	count := random.IntRange(src, 3, 8)
	for i := 0; i < count; i++ {
		item, ok := random.Pick(src, t.StartingItems)
		if !ok {
			break
		}
		if j := slices.IndexFunc(inventory, func(r state.Resource) bool { return r.ID == item.ID }); j >= 0 {
			inventory[j].Quantity += item.Quantity
			continue
		}
		inventory = append(inventory, item)
	}
	return inventory
}

// RandomItem draws one discoverable item.
func (t *Tables) RandomItem(src random.Source) (state.Resource, bool) {
	return random.Pick(src, t.DiscoverableItems)
}
