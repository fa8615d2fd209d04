package content

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jwebster45206/survival-engine/pkg/state"
)

var validIDRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ParseRequirement splits "id" or "id:level" into its parts. Level is zero
// when absent.
func ParseRequirement(req string) (id string, level int, err error) {
	id, lvl, found := strings.Cut(req, ":")
	if !found {
		return id, 0, nil
	}
	level, err = strconv.Atoi(lvl)
	if err != nil || level < 0 {
		return id, 0, fmt.Errorf("invalid requirement level in %q", req)
	}
	return id, level, nil
}

// validator collects problems in the tables.
type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) checkID(kind, id string, seen map[string]bool) {
	if id == "" {
		v.addf("%s is missing an id", kind)
		return
	}
	if !validIDRegex.MatchString(id) {
		v.addf("%s id %q contains invalid characters", kind, id)
	}
	if seen != nil {
		if seen[id] {
			v.addf("duplicate %s id %q", kind, id)
		}
		seen[id] = true
	}
}

func (v *validator) checkEffect(where string, e EffectSpec) {
	for _, r := range e.Resources {
		v.checkID(where+" resource", r.ID, nil)
		if r.Category != "" && !r.Category.Valid() {
			v.addf("%s: resource %q has unknown category %q", where, r.ID, r.Category)
		}
	}
	for _, s := range e.Skills {
		v.checkID(where+" skill", s.ID, nil)
	}
	if e.Stage != "" && !validStage(e.Stage) {
		v.addf("%s: unknown stage %q", where, e.Stage)
	}
	if e.Days < 0 {
		v.addf("%s: days cannot be negative", where)
	}
}

func (v *validator) checkScenario(where string, s ScenarioDef, seen map[string]bool) {
	v.checkID(where+" scenario", s.ID, seen)
	if len(s.Choices) == 0 {
		v.addf("%s scenario %q has no choices", where, s.ID)
		return
	}
	choiceIDs := map[string]bool{}
	open := false
	for _, c := range s.Choices {
		v.checkID(fmt.Sprintf("%s scenario %q choice", where, s.ID), c.ID, choiceIDs)
		if c.Text == "" {
			v.addf("%s scenario %q choice %q has no text", where, s.ID, c.ID)
		}
		if len(c.RequiredSkills) == 0 && len(c.RequiredResources) == 0 {
			open = true
		}
		v.checkEffect(fmt.Sprintf("%s scenario %q choice %q", where, s.ID, c.ID), c.Consequence)
	}
	if !open {
		v.addf("%s scenario %q has no choice without requirements", where, s.ID)
	}
	for _, dt := range s.Disasters {
		if !validDisasterType(dt) {
			v.addf("%s scenario %q names unknown disaster %q", where, s.ID, dt)
		}
	}
}

func validStage(s state.Stage) bool {
	return slices.Contains(state.Stages, s)
}

func validDisasterType(dt state.DisasterType) bool {
	return slices.Contains(state.DisasterTypes, dt)
}

// Problems lists everything wrong with the tables. An empty result means
// the tables are playable.
func (t *Tables) Problems() []string {
	v := &validator{}

	skillIDs := map[string]bool{}
	for _, s := range t.Skills {
		v.checkID("skill", s.ID, skillIDs)
		if s.MaxLevel <= 0 {
			v.addf("skill %q must have a positive max_level", s.ID)
		}
		if s.Level < 0 || (s.MaxLevel > 0 && s.Level > s.MaxLevel) {
			v.addf("skill %q level %d is outside [0, %d]", s.ID, s.Level, s.MaxLevel)
		}
	}
	for _, s := range t.Skills {
		for _, req := range s.Requirements {
			if !skillIDs[req] {
				v.addf("skill %q requires unknown skill %q", s.ID, req)
			}
		}
	}

	for _, pool := range []struct {
		kind  string
		items []state.Resource
	}{
		{"starting item", t.StartingItems},
		{"discoverable item", t.DiscoverableItems},
	} {
		kind, items := pool.kind, pool.items
		if len(items) == 0 {
			v.addf("no %ss defined", kind)
		}
		for _, r := range items {
			v.checkID(kind, r.ID, nil)
			if r.Quantity <= 0 {
				v.addf("%s %q must have a positive quantity", kind, r.ID)
			}
			if !r.Category.Valid() {
				v.addf("%s %q has unknown category %q", kind, r.ID, r.Category)
			}
			if r.Location == "" {
				v.addf("%s %q has no location", kind, r.ID)
			}
		}
	}

	if len(t.Story) == 0 {
		v.addf("story has no steps")
	}
	for i, step := range t.Story {
		if step.Description == "" {
			v.addf("story step %d has no description", i)
		}
		if len(step.Choices) == 0 {
			v.addf("story step %d has no choices", i)
		}
		ids := map[string]bool{}
		for _, c := range step.Choices {
			v.checkID(fmt.Sprintf("story step %d choice", i), c.ID, ids)
			if c.Effects == nil {
				continue
			}
			v.checkEffect(fmt.Sprintf("story step %d choice %q", i, c.ID),
				EffectSpec{Resources: c.Effects.Resources, Skills: c.Effects.Skills})
		}
	}

	actionIDs := map[string]bool{}
	for _, a := range t.Actions {
		v.checkID("action", a.ID, actionIDs)
		if a.Duration < 0 {
			v.addf("action %q has a negative duration", a.ID)
		}
		if a.IsFree && a.Duration != 0 {
			v.addf("free action %q must have zero duration", a.ID)
		}
		if a.DiscoveryChance < 0 || a.DiscoveryChance > 1 {
			v.addf("action %q discovery_chance must be within [0, 1]", a.ID)
		}
		if a.Skill != "" && a.MaxLevel <= 0 {
			v.addf("action %q trains %q but has no max_level", a.ID, a.Skill)
		}
		for _, req := range a.Requirements {
			if _, _, err := ParseRequirement(req); err != nil {
				v.addf("action %q: %v", a.ID, err)
			}
		}
		v.checkEffect(fmt.Sprintf("action %q", a.ID), a.Effect)
	}

	eventIDs := map[string]bool{}
	for _, e := range t.Events {
		v.checkID("event", e.ID, eventIDs)
		if len(e.Choices) == 0 {
			v.addf("event %q has no choices", e.ID)
		}
		for i, c := range e.Choices {
			if c.Text == "" {
				v.addf("event %q choice %d has no text", e.ID, i)
			}
			v.checkEffect(fmt.Sprintf("event %q choice %d", e.ID, i), c.Effect)
		}
	}

	disasterIDs := map[string]bool{}
	scenarioIDs := map[string]bool{}
	covered := map[state.DisasterType]bool{}
	for _, d := range t.Disasters {
		v.checkID("disaster", d.ID, disasterIDs)
		if !validDisasterType(d.Type) {
			v.addf("disaster %q has unknown type %q", d.ID, d.Type)
		}
		if covered[d.Type] {
			v.addf("disaster type %q is defined more than once", d.Type)
		}
		covered[d.Type] = true
		if len(d.InitialScenarios) == 0 {
			v.addf("disaster %q has no initial scenarios", d.ID)
		}
		for _, s := range d.InitialScenarios {
			v.checkScenario(fmt.Sprintf("disaster %q", d.ID), s, scenarioIDs)
		}
		v.checkEffect(fmt.Sprintf("disaster %q ongoing effects", d.ID), d.OngoingEffects)
	}
	for _, dt := range state.DisasterTypes {
		if !covered[dt] {
			v.addf("no disaster defined for type %q", dt)
		}
	}

	for stage := range t.Survival {
		if !validStage(stage) {
			v.addf("unknown survival stage %q", stage)
		}
	}
	for _, stage := range state.Stages {
		if len(t.Survival[stage]) == 0 {
			v.addf("no survival scenarios for stage %s", stage)
		}
		for _, s := range t.Survival[stage] {
			v.checkScenario(fmt.Sprintf("survival stage %s", stage), s, scenarioIDs)
		}
	}

	return v.problems
}

// ErrInvalidContent is returned by Validate when any problem is found.
var ErrInvalidContent = errors.New("invalid content")

// Validate returns ErrInvalidContent wrapped with every problem found.
func (t *Tables) Validate() error {
	problems := t.Problems()
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n  - %s", ErrInvalidContent, strings.Join(problems, "\n  - "))
}
