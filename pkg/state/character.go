package state

import (
	"fmt"
	"maps"

	"github.com/jwebster45206/d20"
)

// Character holds the player's personal stats.
type Character struct {
	Skills   map[string]int `json:"skills"`
	Supplies map[string]int `json:"supplies"`
	Health   int            `json:"health"` // 0-100
	Morale   int            `json:"morale"` // 0-100
}

// clampVital bounds health and morale to [0, MaxVital].
func clampVital(v int) int {
	return max(0, min(v, MaxVital))
}

// merge returns a copy of c with the update applied. Maps are copied before
// writing so the original character is never touched.
func (c Character) merge(u UpdateCharacter) Character {
	out := c
	if u.Health != nil {
		out.Health = clampVital(*u.Health)
	}
	if u.Morale != nil {
		out.Morale = clampVital(*u.Morale)
	}
	if len(u.Skills) > 0 {
		out.Skills = make(map[string]int, len(c.Skills)+len(u.Skills))
		maps.Copy(out.Skills, c.Skills)
		maps.Copy(out.Skills, u.Skills)
	}
	if len(u.Supplies) > 0 {
		out.Supplies = make(map[string]int, len(c.Supplies)+len(u.Supplies))
		maps.Copy(out.Supplies, c.Supplies)
		for k, v := range u.Supplies {
			out.Supplies[k] = max(0, v)
		}
	}
	return out
}

// Actor builds a d20 character sheet for display. Health maps onto hit
// points and skill levels become attributes. Morale is reported as a
// combat modifier so low morale shows up as a penalty.
func (c Character) Actor(name string) (*d20.Actor, error) {
	attrs := make(map[string]int, len(c.Skills))
	maps.Copy(attrs, c.Skills)

	mods := map[string]int{}
	if m := (c.Morale - MaxVital/2) / 10; m != 0 {
		mods["morale"] = m
	}

	actor, err := d20.NewActor(name).
		WithHP(MaxVital).
		WithAC(10).
		WithAttributes(attrs).
		WithCombatModifiers(mods).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build character sheet: %w", err)
	}
	if hp := clampVital(c.Health); hp != MaxVital && hp > 0 {
		if err := actor.SetHP(hp); err != nil {
			return nil, fmt.Errorf("failed to set character hp: %w", err)
		}
	}
	return actor, nil
}
