package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	createdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	forceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("blue")).Bold(true)
	dryRunStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Printer writes styled report lines to an io.Writer.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w (stdout when w is nil).
func New(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Created reports a newly written file.
func (p *Printer) Created(path string) {
	fmt.Fprintln(p.w, createdStyle.Render("CREATED")+" "+path)
}

// Forced reports a file that was rewritten in place.
func (p *Printer) Forced(path string) {
	fmt.Fprintln(p.w, forceStyle.Render("FORCE")+" "+path)
}

// Planned reports a file a dry run would write.
func (p *Printer) Planned(path string) {
	fmt.Fprintln(p.w, dryRunStyle.Render("DRY RUN")+" "+path)
}

// Success prints a success message in green.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, successStyle.Render(msg))
}

// Error prints an error message in red.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, errorStyle.Render(msg))
}

// Info prints an informational message in cyan.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, infoStyle.Render(msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
func (p *Printer) Step(msg string) {
	fmt.Fprintln(p.w, stepStyle.Render("   "+msg))
}
