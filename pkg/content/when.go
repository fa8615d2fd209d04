package content

import (
	"github.com/jwebster45206/survival-engine/pkg/state"
)

// When gates a random event on the current state. Every condition that is
// set must hold. A When with no conditions always matches.
type When struct {
	Phase            state.Phase `yaml:"phase,omitempty"`
	MinStoryStep     *int        `yaml:"min_story_step,omitempty"`
	MaxTimeRemaining *int        `yaml:"max_time_remaining,omitempty"`
	HasResources     []string    `yaml:"has_resources,omitempty"`
	HasSkills        []string    `yaml:"has_skills,omitempty"`
}

// Matches checks all conditions in w against gs.
func (w When) Matches(gs state.GameState) bool {
	if w.Phase != "" && gs.Phase != w.Phase {
		return false
	}
	if w.MinStoryStep != nil && gs.StoryStep < *w.MinStoryStep {
		return false
	}
	if w.MaxTimeRemaining != nil && gs.TimeRemaining > *w.MaxTimeRemaining {
		return false
	}
	for _, id := range w.HasResources {
		if !gs.HasResource(id) {
			return false
		}
	}
	for _, id := range w.HasSkills {
		if !gs.HasSkill(id) {
			return false
		}
	}
	return true
}
