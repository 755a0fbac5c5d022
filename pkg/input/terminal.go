package input

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptModel is a single-line bubbletea prompt that refuses to submit an
// answer until it validates.
type promptModel struct {
	question  Question
	input     textinput.Model
	invalid   string
	answer    string
	cancelled bool
}

func newPromptModel(q Question) promptModel {
	ti := textinput.New()
	ti.Placeholder = q.Default
	ti.Prompt = "› "
	ti.CharLimit = 128
	ti.Focus()

	return promptModel{question: q, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			answer := strings.TrimSpace(m.input.Value())
			if answer == "" {
				answer = m.question.Default
			}
			if err := m.question.check(answer); err != nil {
				m.invalid = err.Error()
				return m, nil
			}
			m.answer = answer
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.invalid = ""
	return m, cmd
}

func (m promptModel) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.question.Message))
	if m.question.Default != "" {
		b.WriteString(" " + hintStyle.Render(fmt.Sprintf("(%s)", m.question.Default)))
	}
	b.WriteString("\n" + m.input.View() + "\n")
	if m.invalid != "" {
		b.WriteString(invalidStyle.Render(m.invalid) + "\n")
	}
	return b.String()
}

func askTerminal(in io.Reader, out io.Writer, q Question) (string, error) {
	final, err := tea.NewProgram(newPromptModel(q), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", q.Name, err)
	}

	m := final.(promptModel)
	if m.cancelled {
		return "", fmt.Errorf("%s: %w", q.Name, ErrCancelled)
	}
	return m.answer, nil
}
