package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/survival-engine/internal/command"
	"github.com/jwebster45206/survival-engine/pkg/resolver"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

const helpText = `Commands:
• status (l)          - What is going on right now
• inventory (i)       - Everything you own and where it is
• skills              - Your skills and which can be trained
• actions (a)         - Things to spend preparation time on
• do <action>         - Start an action
• choose <n> (c)      - Answer the current event, scenario or story step
• train <skill>       - Spend 30s raising a skill by one level
• keep / discard      - Decide on a found item
• log                 - Things that have happened
• sheet               - Character sheet
• copy                - Copy a run summary to the clipboard
• quit (q)            - Leave the game`

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := command.Parse(input)
	gs := m.ctrl.Store().State()

	var err error
	switch cmd.Type {
	case command.CmdHelp:
		m.print(titleStyle.Render("Help") + "\n" + helpText)

	case command.CmdStatus:
		m.print(writePrompt(gs, m.currentStory(gs), true, m.textWidth()))

	case command.CmdInventory:
		m.print(titleStyle.Render("Inventory") + "\n" + writeInventory(gs, true))

	case command.CmdSkills:
		m.print(titleStyle.Render("Skills") + "\n" + writeSkills(gs))

	case command.CmdActions:
		m.print(titleStyle.Render("Actions") + "\n" + writeActions(gs, m.ctrl.Tables().GameActions()))

	case command.CmdDo:
		err = m.doAction(cmd.Arg)

	case command.CmdChoose:
		err = m.choose(gs, cmd.Arg)

	case command.CmdTrain:
		err = m.train(gs, cmd.Arg)

	case command.CmdKeep:
		err = m.ctrl.Resolver().KeepDiscoveredItem()

	case command.CmdDiscard:
		err = m.ctrl.Resolver().DiscardDiscoveredItem()

	case command.CmdLog:
		if len(gs.Events) == 0 {
			m.print("Nothing has happened yet.")
		} else {
			m.print(titleStyle.Render("Log") + "\n• " + strings.Join(gs.Events, "\n• "))
		}

	case command.CmdSheet:
		var sheet string
		if sheet, err = writeSheet(gs); err == nil {
			m.print(titleStyle.Render("Character") + "\n" + sheet)
		}

	case command.CmdCopy:
		if err = clipboard.WriteAll(writeSummary(gs, m.seed)); err == nil {
			m.print(narratorStyle.Render("Run summary copied to clipboard."))
		}

	case command.CmdQuit:
		m.showQuitModal = true
		return m, nil

	default:
		if len(cmd.Suggestions) > 0 {
			names := make([]string, len(cmd.Suggestions))
			for i, s := range cmd.Suggestions {
				names[i] = string(s)
			}
			m.print(warnStyle.Render("Did you mean: " + strings.Join(names, ", ") + "?"))
		} else {
			m.print(warnStyle.Render("Unknown command. Type help for a list."))
		}
	}

	if err != nil {
		m.print(errorStyle.Render("Error: " + err.Error()))
	}
	m.observe(m.ctrl.Store().State())
	return m, nil
}

func (m ConsoleUI) currentStory(gs state.GameState) state.StoryStep {
	step, _ := m.ctrl.Tables().StoryStep(gs.StoryStep)
	return step
}

func (m *ConsoleUI) doAction(arg string) error {
	actions := m.ctrl.Tables().GameActions()
	ids := make([]string, len(actions))
	for i, a := range actions {
		ids[i] = a.ID
	}
	id, ok := command.MatchID(arg, ids)
	if !ok {
		return fmt.Errorf("no action matches %q", arg)
	}
	if err := m.ctrl.PerformAction(id); err != nil {
		return err
	}
	a, _ := m.ctrl.Tables().Action(id)
	if a.IsFree {
		m.print(narratorStyle.Render(fmt.Sprintf("%s %s done.", a.Icon, a.Name)))
	} else {
		m.print(narratorStyle.Render(fmt.Sprintf("%s %s started (%ds).", a.Icon, a.Name, a.Duration)))
	}
	return nil
}

// choose answers whichever prompt is open: an event first, then a scenario,
// then the story step.
func (m *ConsoleUI) choose(gs state.GameState, arg string) error {
	n, numErr := strconv.Atoi(strings.TrimSpace(arg))

	if gs.CurrentEvent != nil {
		if numErr != nil {
			return errors.New("choose an event option by number")
		}
		return m.ctrl.ChooseEvent(n - 1)
	}

	if sp := gs.SurvivalPhase; sp != nil && sp.CurrentScenario != nil {
		choices := sp.CurrentScenario.Choices
		if numErr == nil {
			if n < 1 || n > len(choices) {
				return fmt.Errorf("%w: %d", resolver.ErrUnknownChoice, n)
			}
			return m.ctrl.ChooseScenario(choices[n-1].ID)
		}
		ids := make([]string, len(choices))
		for i, c := range choices {
			ids[i] = c.ID
		}
		id, ok := command.MatchID(arg, ids)
		if !ok {
			return fmt.Errorf("%w: %s", resolver.ErrUnknownChoice, arg)
		}
		return m.ctrl.ChooseScenario(id)
	}

	if gs.Phase == state.PhasePreparation {
		step := m.currentStory(gs)
		if numErr != nil || n < 1 || n > len(step.Choices) {
			return fmt.Errorf("%w: %s", resolver.ErrUnknownChoice, arg)
		}
		return m.ctrl.ChooseStory(step.Choices[n-1].ID)
	}

	return errors.New("nothing to choose right now")
}

func (m *ConsoleUI) train(gs state.GameState, arg string) error {
	ids := make([]string, len(gs.Skills))
	for i, s := range gs.Skills {
		ids[i] = s.ID
	}
	id, ok := command.MatchID(arg, ids)
	if !ok {
		return fmt.Errorf("%w: %s", resolver.ErrUnknownSkill, arg)
	}
	if err := m.ctrl.Resolver().TrainSkill(id); err != nil {
		return err
	}
	s, _ := m.ctrl.Store().State().Skill(id)
	m.print(narratorStyle.Render(fmt.Sprintf("%s %s is now level %d.", s.Icon, s.Name, s.Level)))
	return nil
}
