package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ConfirmModel asks a yes/no question before a destructive run.
type ConfirmModel struct {
	prompt    string
	details   []string
	confirmed bool
	done      bool
}

// NewConfirmModel creates a prompt; details are listed under it.
func NewConfirmModel(prompt string, details ...string) ConfirmModel {
	return ConfirmModel{prompt: prompt, details: details}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "enter", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConfirmModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt))
	for _, d := range m.details {
		b.WriteString("\n  " + labelStyle.Render(d))
	}
	content := dangerStyle.Render(b.String()) + "\n" +
		helpStyle.Render(fmt.Sprintf("%s confirm  %s abort", countStyle.Render("y"), countStyle.Render("n")))
	return tea.NewView(content)
}

// Confirmed reports whether the user answered yes.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// Confirm runs the prompt on the terminal and returns the answer.
func Confirm(prompt string, details ...string) (bool, error) {
	final, err := tea.NewProgram(NewConfirmModel(prompt, details...)).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	m, ok := final.(ConfirmModel)
	return ok && m.Confirmed(), nil
}
