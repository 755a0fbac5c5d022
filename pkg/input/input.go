// Package input provides interactive terminal input for tsui5.
//
// A Prompter asks Questions and keeps asking until the answer passes the
// question's Validate function. On a terminal the question is shown as a
// bubbletea text input; otherwise answers are read line by line, which keeps
// piped input and tests simple.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("input cancelled")

// Question is a single prompt.
type Question struct {
	Name     string                    // Key of the answer (e.g. "namespace")
	Message  string                    // Text shown to the user
	Default  string                    // Returned when the user enters nothing
	Validate func(answer string) error // Optional; a non-nil error re-prompts
}

func (q Question) check(answer string) error {
	if q.Validate == nil {
		return nil
	}
	return q.Validate(answer)
}

// Prompter asks questions on a terminal or a plain reader.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	reader      *bufio.Reader
	interactive bool
}

// New creates a prompter. When in is a terminal the prompts are interactive.
func New(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	return &Prompter{
		in:          in,
		out:         out,
		reader:      bufio.NewReader(in),
		interactive: interactive,
	}
}

// Ask asks q until the answer validates.
func (p *Prompter) Ask(q Question) (string, error) {
	if p.interactive {
		return askTerminal(p.in, p.out, q)
	}
	return p.askLines(q)
}

func (p *Prompter) askLines(q Question) (string, error) {
	for {
		if q.Default != "" {
			fmt.Fprint(p.out, promptStyle.Render(q.Message)+" "+
				hintStyle.Render(fmt.Sprintf("(%s)", q.Default))+" ")
		} else {
			fmt.Fprint(p.out, promptStyle.Render(q.Message)+" ")
		}

		line, err := p.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%s: %w", q.Name, ErrCancelled)
			}
			return "", fmt.Errorf("reading %s: %w", q.Name, err)
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			answer = q.Default
		}

		if verr := q.check(answer); verr != nil {
			fmt.Fprintln(p.out, invalidStyle.Render(verr.Error()))
			continue
		}
		return answer, nil
	}
}

// Asker asks a single question.
type Asker interface {
	Ask(q Question) (string, error)
}

// WithAnswers returns an Asker that answers questions whose Name is a key of
// answers without prompting, and delegates every other question to next.
// Preset answers still go through the question's Validate; an invalid one is
// returned as an error instead of re-prompting.
func WithAnswers(next Asker, answers map[string]string) Asker {
	return &presetAsker{next: next, answers: answers}
}

type presetAsker struct {
	next    Asker
	answers map[string]string
}

func (p *presetAsker) Ask(q Question) (string, error) {
	answer, ok := p.answers[q.Name]
	if !ok {
		return p.next.Ask(q)
	}
	if err := q.check(answer); err != nil {
		return "", err
	}
	return answer, nil
}
