package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/survival-engine/pkg/controller"
	"github.com/jwebster45206/survival-engine/pkg/state"
)

const PlaceHolderText = "Type a command, e.g. actions, do buildFitness, choose 1..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctrl         *controller.Controller
	seed         int64
	gameState    state.GameState
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	lines        []string

	// what has already been announced in the log
	seenPhase    state.Phase
	seenStep     int
	seenEvent    string
	seenScenario string
	seenFound    int
	seenOver     bool

	showQuitModal bool
}

// stateChangedMsg is sent by the store subscription on every transition.
type stateChangedMsg struct{}

type startedMsg struct {
	err error
}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(ctrl *controller.Controller, seed int64) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	gs := ctrl.Store().State()
	return ConsoleUI{
		ctrl:         ctrl,
		seed:         seed,
		gameState:    gs,
		textarea:     ta,
		logViewport:  logVp,
		metaViewport: metaVp,
		seenStep:     -1,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	ctrl := m.ctrl
	return tea.Batch(textarea.Blink, func() tea.Msg {
		return startedMsg{err: ctrl.Start()}
	})
}

func (m ConsoleUI) textWidth() int {
	return max(20, m.logViewport.Width-6) // left(3) + right(3) padding
}

// print appends lines to the log and scrolls to the bottom.
func (m *ConsoleUI) print(s string) {
	m.lines = append(m.lines, strings.TrimRight(s, "\n"))
	m.writeLogContent()
}

func (m *ConsoleUI) writeLogContent() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SURVIVAL ENGINE") + "\n\n")
	content.WriteString("Prepare for the worst. Type help for commands.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", m.textWidth())) + "\n\n")
	for _, line := range m.lines {
		content.WriteString(line + "\n\n")
	}
	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

// observe announces anything new in gs: phase changes, prompts and finds.
func (m *ConsoleUI) observe(gs state.GameState) {
	m.gameState = gs
	m.metaViewport.SetContent(writeMetadata(gs))
	width := m.textWidth()

	if gs.Phase != m.seenPhase {
		m.seenPhase = gs.Phase
		switch gs.Phase {
		case state.PhaseDisaster:
			m.print(errorStyle.Render(fmt.Sprintf("DISASTER! %s strikes. Only what you carry survives.", label(string(gs.Disaster)))))
		case state.PhaseSurvival:
			m.print(warnStyle.Render("The worst is over. Now you have to survive."))
		}
	}

	if gs.Phase == state.PhasePreparation && gs.StoryStep != m.seenStep && gs.CurrentEvent == nil {
		m.seenStep = gs.StoryStep
		if step, ok := m.ctrl.Tables().StoryStep(gs.StoryStep); ok {
			m.print(writePrompt(gs, step, true, width))
		}
	}

	eventID := ""
	if gs.CurrentEvent != nil {
		eventID = gs.CurrentEvent.ID
	}
	if eventID != m.seenEvent {
		m.seenEvent = eventID
		if eventID != "" {
			m.print(writePrompt(gs, state.StoryStep{}, false, width))
		}
	}

	scenarioID := ""
	if gs.SurvivalPhase != nil && gs.SurvivalPhase.CurrentScenario != nil {
		scenarioID = gs.SurvivalPhase.CurrentScenario.ID
	}
	if scenarioID != m.seenScenario {
		m.seenScenario = scenarioID
		if scenarioID != "" && gs.CurrentEvent == nil {
			m.print(writePrompt(gs, state.StoryStep{}, false, width))
		}
	}

	if n := len(gs.ItemsDiscovered); n != m.seenFound {
		m.seenFound = n
		if n > 0 {
			item := gs.ItemsDiscovered[n-1]
			m.print(narratorStyle.Render(fmt.Sprintf("You found %s %s! keep or discard?", item.Icon, item.Name)))
		}
	}

	if over := m.ctrl.GameOver(); over && !m.seenOver {
		m.seenOver = true
		m.print(errorStyle.Render(fmt.Sprintf("GAME OVER. You lasted %d days with a preparedness score of %d. Type copy to save your run.",
			gs.Day, gs.PreparednessScore)))
	}
}

func (m *ConsoleUI) layout() {
	logWidth := int(float64(m.width)*0.70) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(logWidth - 4)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.writeLogContent()
		m.metaViewport.SetContent(writeMetadata(m.gameState))

	case startedMsg:
		if msg.err != nil {
			m.print(errorStyle.Render("Error: " + msg.err.Error()))
		}
		m.observe(m.ctrl.Store().State())

	case stateChangedMsg:
		m.observe(m.ctrl.Store().State())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			m.print(userStyle.Render("> ") + wordwrap.String(input, m.textWidth()-2))
			return m.handleCommand(input)
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case stateChangedMsg:
		m.gameState = m.ctrl.Store().State()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.observe(m.ctrl.Store().State())
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("The clock keeps running while you decide.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.70) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(0, logWidth-4))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}
