package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const promptWidth = 64

// runPathPrompt asks for a config path on the terminal. ok is false when the
// user pressed esc or ctrl+c.
func runPathPrompt(ctx context.Context, in io.Reader, out io.Writer, th theme, current string) (string, bool, error) {
	model := newPathPromptModel(th, current)
	prog := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out), tea.WithContext(ctx))

	final, err := prog.Run()
	if err != nil {
		return "", false, fmt.Errorf("path prompt: %w", err)
	}
	m, ok := final.(*pathPromptModel)
	if !ok {
		return "", false, fmt.Errorf("path prompt: unexpected model %T", final)
	}
	if m.cancelled {
		return "", false, nil
	}
	return m.value, true, nil
}

type pathPromptModel struct {
	theme   theme
	input   textinput.Model
	current string

	value     string
	notice    string
	cancelled bool
	done      bool
}

func newPathPromptModel(th theme, current string) *pathPromptModel {
	input := textinput.New()
	input.Placeholder = "/path/to/canzero.yaml"
	input.Prompt = "› "
	input.CharLimit = 4096
	input.Width = promptWidth - 4
	if current != "" {
		input.SetValue(current)
		input.CursorEnd()
	}
	input.Focus()

	return &pathPromptModel{
		theme:   th,
		input:   input,
		current: current,
	}
}

func (m *pathPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *pathPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.notice = "Enter a path, or press esc to keep the current value."
				return m, nil
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.notice = ""
	return m, cmd
}

func (m *pathPromptModel) View() string {
	if m.done {
		return ""
	}
	current := m.current
	if current == "" {
		current = "(unset)"
	}

	rows := []string{
		m.theme.title.Render("CANzero config path"),
		"",
		fmt.Sprintf("%s %s", m.theme.label.Render("Current :"), m.theme.value.Render(current)),
		"",
		m.input.View(),
		"",
	}
	if m.notice != "" {
		rows = append(rows, m.theme.warn.Render(m.notice), "")
	}
	help := fmt.Sprintf("%s saves; %s keeps the current value.", m.theme.key.Render("Enter"), m.theme.key.Render("Esc"))
	rows = append(rows, m.theme.help.Render(help))

	return "\n" + lipgloss.NewStyle().Width(promptWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n"
}
