package state

import (
	"slices"
)

// KeepItemScore is awarded for accepting a discovered item.
const KeepItemScore = 5

// Reduce returns the state that results from applying a to gs. It is total:
// unknown actions, unknown ids and nil effects leave gs unchanged. The input
// is never mutated; slices and maps are copied before they are written and
// untouched sub-structures are shared with the result.
func Reduce(gs GameState, a Action) GameState {
	switch a := a.(type) {
	case InitializeGame:
		gs.Resources = mergeResources(nil, a.Resources)
		gs.Skills = uniqueSkills(a.Skills)
		return gs

	case UpdateResource:
		i := resourceIndex(gs.Resources, a.ID)
		if i < 0 {
			return gs
		}
		gs.Resources = slices.Clone(gs.Resources)
		gs.Resources[i].Quantity = max(0, a.Quantity)
		return gs

	case AddResource:
		gs.Resources = mergeResources(gs.Resources, []Resource{a.Resource})
		return gs

	case RemoveResource:
		i := resourceIndex(gs.Resources, a.ID)
		if i < 0 {
			return gs
		}
		gs.Resources = slices.Delete(slices.Clone(gs.Resources), i, i+1)
		return gs

	case UpdateSkill:
		i := skillIndex(gs.Skills, a.ID)
		if i < 0 {
			return gs
		}
		gs.Skills = slices.Clone(gs.Skills)
		gs.Skills[i].Level = a.Level
		return gs

	case AddSkill:
		if skillIndex(gs.Skills, a.Skill.ID) >= 0 {
			return gs
		}
		gs.Skills = append(slices.Clip(gs.Skills), a.Skill)
		return gs

	case PerformAction:
		act := a.Action
		gs.CurrentAction = &act
		gs.TimeRemaining = max(0, gs.TimeRemaining-act.Duration)
		return gs

	case CompleteAction:
		if a.ID != "" && (gs.CurrentAction == nil || gs.CurrentAction.ID != a.ID) {
			return gs
		}
		if a.Effect != nil {
			gs = a.Effect(gs)
		}
		gs.CurrentAction = nil
		gs.PreparednessScore = max(0, gs.PreparednessScore+a.ScoreIncrease)
		return gs

	case UseFreeAction:
		if a.Action.ImmediateEffect != nil {
			gs = a.Action.ImmediateEffect(gs)
		}
		gs.PreparednessScore = max(0, gs.PreparednessScore+a.Action.ScoreIncrease)
		gs.FreeActionUsed = true
		return gs

	case TriggerEvent:
		ev := a.Event
		gs.CurrentEvent = &ev
		return gs

	case ResolveEvent:
		// A second resolution of the same event is dropped.
		if gs.CurrentEvent == nil {
			return gs
		}
		if a.Effect != nil {
			gs = a.Effect(gs)
		}
		gs.CurrentEvent = nil
		return gs

	case AddEvent:
		if a.Name == "" {
			return gs
		}
		gs.Events = append(slices.Clip(gs.Events), a.Name)
		return gs

	case NextStoryStep:
		gs.StoryStep++
		gs.FreeActionUsed = false
		return gs

	case StartPreparationPhase:
		gs.Phase = PhasePreparation
		gs.StoryStep = 0
		gs.TimeRemaining = DefaultPreparationSeconds
		gs.FreeActionUsed = false
		return gs

	case EndPreparationPhase:
		gs.Phase = PhaseDisaster
		return gs

	case UpdateTime:
		gs.TimeRemaining = max(0, a.Seconds)
		return gs

	case TickCountdown:
		gs.TimeRemaining = max(0, gs.TimeRemaining-a.Seconds)
		return gs

	case StartDisaster:
		gs.Phase = PhaseDisaster
		gs.Disaster = a.Disaster
		gs.Resources = onPerson(gs.Resources)
		gs.CurrentAction = nil
		gs.CurrentEvent = nil
		gs.ItemsDiscovered = nil
		gs.SurvivalPhase = &SurvivalPhaseState{
			Stage:        StageInitialDisaster,
			DisasterType: a.Disaster,
			Day:          gs.Day,
			Location:     gs.CurrentLocation,
		}
		return gs

	case SetSurvivalPhase:
		if a.Survival == nil {
			gs.SurvivalPhase = nil
			return gs
		}
		sp := *a.Survival
		gs.SurvivalPhase = &sp
		return gs

	case SetScenario:
		sp := gs.SurvivalPhase.clone()
		sp.CurrentScenario = a.Scenario
		sp.ScenarioIndex = a.Index
		gs.SurvivalPhase = sp
		return gs

	case SetStage:
		sp := gs.SurvivalPhase.clone()
		sp.Stage = a.Stage
		gs.SurvivalPhase = sp
		return gs

	case StartSurvivalPhase:
		gs.Phase = PhaseSurvival
		sp := gs.SurvivalPhase.clone()
		sp.CurrentScenario = nil
		gs.SurvivalPhase = sp
		return gs

	case SurvivalTick:
		gs.Resources = consumeBasics(gs.Resources)
		gs.Day++
		if gs.SurvivalPhase != nil {
			sp := gs.SurvivalPhase.clone()
			sp.Day++
			gs.SurvivalPhase = sp
		}
		return gs

	case AdvanceDay:
		gs.Day++
		return gs

	case ChangeLocation:
		gs.CurrentLocation = a.Location
		if gs.SurvivalPhase != nil {
			sp := gs.SurvivalPhase.clone()
			sp.Location = a.Location
			gs.SurvivalPhase = sp
		}
		return gs

	case UpdateCharacter:
		gs.Character = gs.Character.merge(a)
		return gs

	case UpdatePreparednessScore:
		gs.PreparednessScore = max(0, a.Score)
		return gs

	case DiscoverItem:
		gs.ItemsDiscovered = append(slices.Clip(gs.ItemsDiscovered), a.Item)
		return gs

	case KeepItem:
		gs.Resources = mergeResources(gs.Resources, []Resource{a.Item})
		gs.PreparednessScore += KeepItemScore
		gs.ItemsDiscovered = nil
		return gs

	case DiscardItem:
		gs.ItemsDiscovered = nil
		return gs

	case ApplyEffect:
		if a.Effect == nil {
			return gs
		}
		return a.Effect(gs)
	}
	return gs
}

func resourceIndex(resources []Resource, id string) int {
	return slices.IndexFunc(resources, func(r Resource) bool { return r.ID == id })
}

func skillIndex(skills []Skill, id string) int {
	return slices.IndexFunc(skills, func(s Skill) bool { return s.ID == id })
}

// mergeResources returns base with add folded in by id. Quantities of
// matching ids are summed so the result never holds duplicate ids.
func mergeResources(base, add []Resource) []Resource {
	out := slices.Clone(base)
	if out == nil {
		out = []Resource{}
	}
	for _, r := range add {
		r.Quantity = max(0, r.Quantity)
		if i := resourceIndex(out, r.ID); i >= 0 {
			out[i].Quantity += r.Quantity
			continue
		}
		out = append(out, r)
	}
	return out
}

// uniqueSkills copies skills, keeping the first record for each id.
func uniqueSkills(skills []Skill) []Skill {
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if skillIndex(out, s.ID) >= 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func onPerson(resources []Resource) []Resource {
	out := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if r.Location == LocationOnPerson {
			out = append(out, r)
		}
	}
	return out
}

func consumeBasics(resources []Resource) []Resource {
	out := slices.Clone(resources)
	for i := range out {
		if out[i].Category == CategoryBasic && out[i].Quantity > 0 {
			out[i].Quantity--
		}
	}
	return out
}
