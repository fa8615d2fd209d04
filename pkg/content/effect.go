package content

import (
	"github.com/jwebster45206/survival-engine/pkg/state"
)

// EffectSpec is the declarative form of an effect as authored in content
// files. Resource and skill deltas follow state.FlatEffects rules; the other
// fields are relative changes except Stage and Location, which are set.
type EffectSpec struct {
	Resources []state.ResourceDelta `yaml:"resources,omitempty"`
	Skills    []state.SkillDelta    `yaml:"skills,omitempty"`
	Score     int                   `yaml:"score,omitempty"`
	Health    int                   `yaml:"health,omitempty"`
	Morale    int                   `yaml:"morale,omitempty"`
	Days      int                   `yaml:"days,omitempty"`
	Stage     state.Stage           `yaml:"stage,omitempty"`
	Location  string                `yaml:"location,omitempty"`
	Log       string                `yaml:"log,omitempty"` // appended to the event log
}

// IsZero reports whether the spec does nothing.
func (e EffectSpec) IsZero() bool {
	return len(e.Resources) == 0 && len(e.Skills) == 0 &&
		e.Score == 0 && e.Health == 0 && e.Morale == 0 && e.Days == 0 &&
		e.Stage == "" && e.Location == "" && e.Log == ""
}

// Flat returns the resource and skill part of the spec.
func (e EffectSpec) Flat() *state.FlatEffects {
	return &state.FlatEffects{Resources: e.Resources, Skills: e.Skills}
}

// Compile turns the spec into a pure state transformer. A zero spec compiles
// to nil so callers can tell "no effect" apart from "identity".
func (e EffectSpec) Compile() state.Effect {
	if e.IsZero() {
		return nil
	}
	spec := e
	return func(gs state.GameState) state.GameState {
		gs = spec.Flat().Apply(gs)

		if spec.Score != 0 {
			gs = state.Reduce(gs, state.UpdatePreparednessScore{Score: gs.PreparednessScore + spec.Score})
		}
		if spec.Health != 0 || spec.Morale != 0 {
			health := gs.Character.Health + spec.Health
			morale := gs.Character.Morale + spec.Morale
			gs = state.Reduce(gs, state.UpdateCharacter{Health: &health, Morale: &morale})
		}
		for i := 0; i < spec.Days; i++ {
			gs = state.Reduce(gs, state.AdvanceDay{})
			if gs.SurvivalPhase != nil {
				sp := *gs.SurvivalPhase
				sp.Day++
				gs = state.Reduce(gs, state.SetSurvivalPhase{Survival: &sp})
			}
		}
		if spec.Stage != "" {
			gs = state.Reduce(gs, state.SetStage{Stage: spec.Stage})
		}
		if spec.Location != "" {
			gs = state.Reduce(gs, state.ChangeLocation{Location: spec.Location})
		}
		if spec.Log != "" {
			gs = state.Reduce(gs, state.AddEvent{Name: spec.Log})
		}
		return gs
	}
}
