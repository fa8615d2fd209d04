package resolver

import (
	"fmt"

	"github.com/jwebster45206/survival-engine/pkg/content"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

// IsChoiceAvailable reports whether every required skill is known, at any
// level, and every required resource is held with a nonzero quantity.
func IsChoiceAvailable(gs state.GameState, c state.Choice) bool {
	for _, id := range c.RequiredSkills {
		if !gs.HasSkill(id) {
			return false
		}
	}
	for _, id := range c.RequiredResources {
		if !gs.HasResource(id) {
			return false
		}
	}
	return true
}

// requirementMet checks a single "id" or "id:level" requirement against
// skills first, then resources.
func requirementMet(gs state.GameState, req string) bool {
	id, level, err := content.ParseRequirement(req)
	if err != nil {
		return false
	}
	if s, ok := gs.Skill(id); ok {
		return s.Level >= level
	}
	if r, ok := gs.Resource(id); ok {
		return r.Quantity >= max(1, level)
	}
	return false
}

// CheckAction returns nil when the action can be started in gs, or the
// reason it cannot.
func CheckAction(gs state.GameState, a state.GameAction) error {
	for _, req := range a.Requirements {
		if !requirementMet(gs, req) {
			return fmt.Errorf("%w: %s needs %s", ErrRequirementsNotMet, a.ID, req)
		}
	}
	if !a.IsFree && a.Duration > gs.TimeRemaining {
		return fmt.Errorf("%w: %s takes %ds, %ds left", ErrNotEnoughTime, a.ID, a.Duration, gs.TimeRemaining)
	}
	if a.Skill != "" && a.MaxLevel > 0 {
		if s, ok := gs.Skill(a.Skill); ok && s.Level >= a.MaxLevel {
			return fmt.Errorf("%w: %s", ErrSkillMaxed, a.Skill)
		}
	}
	return nil
}

// ActionAvailable reports whether CheckAction passes.
func ActionAvailable(gs state.GameState, a state.GameAction) bool {
	return CheckAction(gs, a) == nil
}

// AvailableActions filters actions down to those startable in gs.
func AvailableActions(gs state.GameState, actions []state.GameAction) []state.GameAction {
	var out []state.GameAction
	for _, a := range actions {
		if ActionAvailable(gs, a) {
			out = append(out, a)
		}
	}
	return out
}

// CanTrain reports whether skill s can be trained in gs: it is below its
// cap and every prerequisite skill has been learned.
func CanTrain(gs state.GameState, s state.Skill) bool {
	if s.Level >= s.MaxLevel {
		return false
	}
	for _, req := range s.Requirements {
		prereq, ok := gs.Skill(req)
		if !ok || prereq.Level == 0 {
			return false
		}
	}
	return true
}

// TrainableSkills lists the skills in gs that CanTrain accepts.
func TrainableSkills(gs state.GameState) []state.Skill {
	var out []state.Skill
	for _, s := range gs.Skills {
		if CanTrain(gs, s) {
			out = append(out, s)
		}
	}
	return out
}
