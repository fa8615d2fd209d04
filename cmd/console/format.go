package main

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/survival-engine/pkg/resolver"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

var titleCaser = cases.Title(language.English)

// label turns an identifier such as "buildFitness" or "ZombiePlague" into
// a display label ("Build Fitness", "Zombie Plague").
func label(id string) string {
	var words []string
	var cur []rune
	for i, r := range []rune(id) {
		if r == '_' || r == '-' || r == ' ' {
			if len(cur) > 0 {
				words = append(words, string(cur))
				cur = nil
			}
			continue
		}
		if i > 0 && unicode.IsUpper(r) && len(cur) > 0 && !unicode.IsUpper(cur[len(cur)-1]) {
			words = append(words, string(cur))
			cur = nil
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}
	return titleCaser.String(strings.ToLower(strings.Join(words, " ")))
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func writeMetadata(gs state.GameState) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(gs.ID.String()[:8] + "...\n\n")

	content.WriteString("Phase:\n")
	content.WriteString(label(string(gs.Phase)) + "\n\n")

	switch gs.Phase {
	case state.PhasePreparation:
		content.WriteString("Time Left:\n")
		content.WriteString(formatClock(gs.TimeRemaining) + "\n\n")
		content.WriteString("Story Step:\n")
		content.WriteString(fmt.Sprintf("%d\n\n", gs.StoryStep+1))
		if gs.CurrentAction != nil {
			content.WriteString("Working On:\n")
			content.WriteString(gs.CurrentAction.Icon + " " + gs.CurrentAction.Name + "\n\n")
		}
	default:
		content.WriteString("Disaster:\n")
		content.WriteString(label(string(gs.Disaster)) + "\n\n")
		content.WriteString("Day:\n")
		content.WriteString(fmt.Sprintf("%d\n\n", gs.Day))
		if sp := gs.SurvivalPhase; sp != nil {
			content.WriteString("Stage:\n")
			content.WriteString(label(string(sp.Stage)) + "\n\n")
		}
	}

	content.WriteString(fmt.Sprintf("Health: %d\nMorale: %d\nScore:  %d\n\n",
		gs.Character.Health, gs.Character.Morale, gs.PreparednessScore))

	content.WriteString("Supplies:\n")
	content.WriteString(writeInventory(gs, false))

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• help: Help\n")

	return content.String()
}

// writeInventory lists resources by category. With all set, empty stacks
// and storage locations are shown too.
func writeInventory(gs state.GameState, all bool) string {
	var content strings.Builder
	grouped := gs.ResourcesByCategory()
	empty := true
	for _, cat := range state.Categories {
		items := grouped[cat]
		if len(items) == 0 {
			continue
		}
		if all {
			content.WriteString(speakerStyle.Render(string(cat)) + "\n")
		}
		for _, r := range items {
			if !all && r.Quantity == 0 {
				continue
			}
			empty = false
			if all {
				content.WriteString(fmt.Sprintf("• %s %s x%d (%s)\n", r.Icon, r.Name, r.Quantity, r.Location))
			} else {
				content.WriteString(fmt.Sprintf("• %s %s x%d\n", r.Icon, r.Name, r.Quantity))
			}
		}
	}
	if empty {
		content.WriteString("Nothing\n")
	}
	return content.String()
}

func writeSkills(gs state.GameState) string {
	if len(gs.Skills) == 0 {
		return "No skills yet.\n"
	}
	var content strings.Builder
	for _, s := range gs.Skills {
		line := fmt.Sprintf("• %s %s %d/%d", s.Icon, s.Name, s.Level, s.MaxLevel)
		if resolver.CanTrain(gs, s) {
			line += narratorStyle.Render("  (train " + s.ID + ")")
		}
		content.WriteString(line + "\n")
	}
	return content.String()
}

func writeActions(gs state.GameState, actions []state.GameAction) string {
	var content strings.Builder
	for _, a := range actions {
		available := resolver.ActionAvailable(gs, a)
		if a.IsFree {
			available = available && !gs.FreeActionUsed
		}
		cost := fmt.Sprintf("%ds", a.Duration)
		if a.IsFree {
			cost = "free"
		}
		line := fmt.Sprintf("• %s %s [%s] %s +%d", a.Icon, a.ID, cost, a.Name, a.ScoreIncrease)
		if !available {
			line = promptStyle.Render(line)
		}
		content.WriteString(line + "\n")
	}
	return content.String()
}

// writePrompt renders whatever the player is currently asked to decide.
func writePrompt(gs state.GameState, story state.StoryStep, hasStory bool, width int) string {
	var content strings.Builder
	switch {
	case gs.CurrentEvent != nil:
		ev := gs.CurrentEvent
		content.WriteString(titleStyle.Render(ev.Icon+" "+ev.Name) + "\n")
		content.WriteString(wordwrap.String(ev.Description, width) + "\n")
		for i, c := range ev.Choices {
			content.WriteString(fmt.Sprintf("  %d. %s\n", i+1, c.Text))
		}
	case gs.SurvivalPhase != nil && gs.SurvivalPhase.CurrentScenario != nil:
		scen := gs.SurvivalPhase.CurrentScenario
		content.WriteString(wordwrap.String(scen.Description, width) + "\n")
		for i, c := range scen.Choices {
			line := fmt.Sprintf("  %d. %s", i+1, c.Text)
			if !resolver.IsChoiceAvailable(gs, c) {
				line = promptStyle.Render(line + " (unavailable)")
			}
			content.WriteString(line + "\n")
		}
	case gs.Phase == state.PhasePreparation && hasStory:
		content.WriteString(wordwrap.String(story.Description, width) + "\n")
		for i, c := range story.Choices {
			content.WriteString(fmt.Sprintf("  %d. %s\n", i+1, c.Text))
		}
	}
	return content.String()
}

func writeSheet(gs state.GameState) (string, error) {
	actor, err := gs.Character.Actor("Survivor")
	if err != nil {
		return "", err
	}
	var content strings.Builder
	content.WriteString(fmt.Sprintf("HP %d/%d  AC %d\n", actor.HP(), actor.MaxHP(), actor.AC()))

	ids := make([]string, 0, len(gs.Character.Skills))
	for id := range gs.Character.Skills {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if v, ok := actor.Attribute(id); ok {
			content.WriteString(fmt.Sprintf("• %s %d\n", label(id), v))
		}
	}
	content.WriteString(fmt.Sprintf("Morale %d\n", gs.Character.Morale))
	return content.String(), nil
}

// writeSummary is the plain-text run summary placed on the clipboard.
func writeSummary(gs state.GameState, seed int64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Survival run %s (seed %d)\n", gs.ID, seed))
	b.WriteString(fmt.Sprintf("Phase: %s\n", label(string(gs.Phase))))
	if gs.Disaster != "" {
		b.WriteString(fmt.Sprintf("Disaster: %s\n", label(string(gs.Disaster))))
	}
	b.WriteString(fmt.Sprintf("Day: %d\n", gs.Day))
	b.WriteString(fmt.Sprintf("Preparedness: %d\n", gs.PreparednessScore))
	b.WriteString(fmt.Sprintf("Health: %d  Morale: %d\n", gs.Character.Health, gs.Character.Morale))
	if len(gs.Events) > 0 {
		b.WriteString("Events:\n")
		for _, e := range gs.Events {
			b.WriteString("- " + e + "\n")
		}
	}
	return b.String()
}
