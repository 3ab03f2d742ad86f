package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/shelf/internal/config"
	"github.com/oakwood-commons/shelf/internal/suggest"
)

// Theme defines the colors used across the pages.
type Theme struct {
	Accent      color.Color // Title bar and headings
	Text        color.Color // Body text and titles
	Muted       color.Color // Authors, prices, cover URLs
	Border      color.Color // Panel border and separators
	SelectedFG  color.Color // Highlighted row foreground
	SelectedBG  color.Color // Highlighted row background
	InputFG     color.Color // Search box text
	Placeholder color.Color // Placeholder and hint text
	Error       color.Color // Inline errors
}

// fallbackTheme is used for colors a config theme leaves empty.
func fallbackTheme() Theme {
	return Theme{
		Accent:      lipgloss.Color("12"),
		Text:        lipgloss.Color("252"),
		Muted:       lipgloss.Color("244"),
		Border:      lipgloss.Color("240"),
		SelectedFG:  lipgloss.Color("231"),
		SelectedBG:  lipgloss.Color("62"),
		InputFG:     lipgloss.Color("255"),
		Placeholder: lipgloss.Color("242"),
		Error:       lipgloss.Color("203"),
	}
}

// ThemeFromConfig builds a Theme from its YAML form.
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	th := fallbackTheme()
	set := func(val config.ColorValue, dst *color.Color) {
		if val != "" {
			*dst = lipgloss.Color(string(val))
		}
	}
	set(cfg.Accent, &th.Accent)
	set(cfg.Text, &th.Text)
	set(cfg.Muted, &th.Muted)
	set(cfg.Border, &th.Border)
	set(cfg.SelectedFG, &th.SelectedFG)
	set(cfg.SelectedBG, &th.SelectedBG)
	set(cfg.InputFG, &th.InputFG)
	set(cfg.Placeholder, &th.Placeholder)
	set(cfg.Error, &th.Error)
	return th
}

// Styles are the rendered styles of every page.
type Styles struct {
	TitleBar lipgloss.Style
	Heading  lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Hint     lipgloss.Style
	Suggest  suggest.Styles
}

// NewStyles derives page styles from th. With noColor every style is
// plain so output carries no escape sequences.
func NewStyles(th Theme, noColor bool) Styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return Styles{
			TitleBar: plain,
			Heading:  plain,
			Text:     plain,
			Muted:    plain,
			Selected: plain,
			Error:    plain,
			Hint:     plain,
			Suggest:  suggest.PlainStyles(),
		}
	}
	selected := lipgloss.NewStyle().Foreground(th.SelectedFG).Background(th.SelectedBG).Bold(true)
	muted := lipgloss.NewStyle().Foreground(th.Muted)
	return Styles{
		TitleBar: lipgloss.NewStyle().Foreground(th.SelectedFG).Background(th.Accent).Bold(true),
		Heading:  lipgloss.NewStyle().Foreground(th.Accent).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(th.Text),
		Muted:    muted,
		Selected: selected,
		Error:    lipgloss.NewStyle().Foreground(th.Error),
		Hint:     lipgloss.NewStyle().Foreground(th.Placeholder).Italic(true),
		Suggest: suggest.Styles{
			Border:      lipgloss.NewStyle().Foreground(th.Border),
			Title:       lipgloss.NewStyle().Foreground(th.Text).Bold(true),
			Meta:        muted,
			Cover:       muted.Faint(true),
			Selected:    selected,
			Placeholder: lipgloss.NewStyle().Foreground(th.Placeholder).Italic(true),
			Action:      lipgloss.NewStyle().Foreground(th.Accent),
		},
	}
}
