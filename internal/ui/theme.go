package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All renderers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Active, Header                                lipgloss.Style

	SymDone, SymPending string
	Prev, Next          string
	Border              lipgloss.Border
}

var current = themeFor("classic")

// SetTheme selects classic (default), neon or mono.
func SetTheme(name string) { current = themeFor(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:    "neon",
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Active:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),
			Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),

			SymDone: "✔", SymPending: "⏳",
			Prev: "◀", Next: "▶",
			Border: lipgloss.RoundedBorder(),
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Active: plain, Header: plain,

			SymDone: "x", SymPending: "-",
			Prev: "<", Next: ">",
			Border: lipgloss.ASCIIBorder(),
		}
	default: // classic
		return Theme{
			Name:    "classic",
			Title:   lipgloss.NewStyle().Bold(true),
			Muted:   lipgloss.NewStyle().Faint(true),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Active:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")),
			Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")),

			SymDone: "✔", SymPending: "⏳",
			Prev: "◀", Next: "▶",
			Border: lipgloss.NormalBorder(),
		}
	}
}
