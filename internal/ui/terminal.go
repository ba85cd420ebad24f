package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lehigh-university-libraries/dexsearch/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)
)

const cardsPerRow = 4

// RenderStatus renders the status line
func RenderStatus(s StatusView) string {
	if s.IsError {
		return errStyle.Render(s.Text)
	}
	return okStyle.Render(s.Text)
}

// RenderCard renders one result card; the thumbnail URL is shown dimmed
func RenderCard(c Card) string {
	lines := []string{
		titleStyle.Render(c.Name),
		numberStyle.Render(c.Number),
	}
	if c.Thumbnail != "" {
		lines = append(lines, numberStyle.Render(c.Thumbnail))
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderGrid lays cards out in rows
func RenderGrid(cards []Card) string {
	var rows []string
	for start := 0; start < len(cards); start += cardsPerRow {
		end := min(start+cardsPerRow, len(cards))
		row := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			row = append(row, RenderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// RenderDetail renders the detail dialog
func RenderDetail(l *Localizer, d DetailView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Name))
	b.WriteString("\n")
	if d.Thumbnail != "" {
		b.WriteString(numberStyle.Render(d.Thumbnail))
		b.WriteString("\n")
	}

	b.WriteString("\n" + titleStyle.Render(l.T(MsgTypes)) + "\n")
	for _, line := range d.TypeLines {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + titleStyle.Render(l.T(MsgStats)) + "\n")
	for _, s := range d.Stats {
		fmt.Fprintf(&b, "%s  %s  %s\n", titleStyle.Render(s.Name), s.Base, s.Effort)
	}

	b.WriteString("\n" + titleStyle.Render(l.T(MsgPhysical)) + "\n")
	b.WriteString(d.Physical)

	return dialogStyle.Render(b.String())
}

// RenderError renders the error dialog
func RenderError(l *Localizer, details string) string {
	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		errStyle.Render(l.T(MsgErrorTitle)),
		l.T(MsgErrorIntro),
		details,
	))
}

// TerminalDetail prints the detail dialog to a writer
type TerminalDetail struct {
	Out io.Writer
	loc *Localizer
}

func NewTerminalDetail(out io.Writer, l *Localizer) *TerminalDetail {
	return &TerminalDetail{Out: out, loc: l}
}

func (t *TerminalDetail) Show(p models.Pokemon) {
	fmt.Fprintln(t.Out, RenderDetail(t.loc, DetailFor(t.loc, p)))
}

// Hide is a no-op; printed output cannot be withdrawn
func (t *TerminalDetail) Hide() {}

// TerminalError prints the error dialog to a writer
type TerminalError struct {
	Out io.Writer
	loc *Localizer
}

func NewTerminalError(out io.Writer, l *Localizer) *TerminalError {
	return &TerminalError{Out: out, loc: l}
}

func (t *TerminalError) Show(details string) {
	fmt.Fprintln(t.Out, RenderError(t.loc, details))
}

func (t *TerminalError) Hide() {}

var (
	_ DetailPresenter = (*TerminalDetail)(nil)
	_ ErrorPresenter  = (*TerminalError)(nil)
)
