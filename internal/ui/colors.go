package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/mannschaft/internal/tasks"
)

// Styles is the palette shared by the TUI and the CLI summaries.
var Styles = NewPalette(PaletteColors{
	Title:       "#1F6FEB",
	OK:          "#2DA44E",
	Err:         "#CF222E",
	Warn:        "#D4A72C",
	Help:        "#6E7781",
	Placeholder: "#8C959F",
})

// PaletteColors names the foreground color of each role.
type PaletteColors struct {
	Title, OK, Err, Warn, Help, Placeholder string
}

// Palette renders text per role: titles, results, warnings and filler players.
type Palette struct {
	title       lipgloss.Style
	ok          lipgloss.Style
	err         lipgloss.Style
	warn        lipgloss.Style
	help        lipgloss.Style
	placeholder lipgloss.Style
}

func NewPalette(c PaletteColors) *Palette {
	return &Palette{
		title:       NewBold(c.Title).MarginBottom(1),
		ok:          NewBold(c.OK),
		err:         NewBold(c.Err),
		warn:        NewStyle(c.Warn),
		help:        NewEm(c.Help),
		placeholder: NewStyle(c.Placeholder).Faint(true),
	}
}

func (p *Palette) Title(s string) string       { return p.title.Render(s) }
func (p *Palette) OK(s string) string          { return p.ok.Render(s) }
func (p *Palette) Err(s string) string         { return p.err.Render(s) }
func (p *Palette) Warn(s string) string        { return p.warn.Render(s) }
func (p *Palette) Help(s string) string        { return p.help.Render(s) }
func (p *Palette) Placeholder(s string) string { return p.placeholder.Render(s) }

// Status colors s by the severity of a row outcome: rows the input could not
// express (no team, malformed) are errors, rejected values are warnings.
func (p *Palette) Status(status tasks.RowStatus, s string) string {
	switch status {
	case tasks.StatusAccepted:
		return p.OK(s)
	case tasks.StatusNoTeam, tasks.StatusMalformed:
		return p.Err(s)
	default:
		return p.Warn(s)
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
