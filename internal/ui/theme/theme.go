// Package theme holds the Be+ palette and the shared lipgloss styles built
// from it.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Lagoon blues with Rockie gold as the accent.
var (
	Primary = lipgloss.Color("#528399")
	Accent  = lipgloss.Color("#E9C76E")
	Success = lipgloss.Color("#4ADE80")
	Error   = lipgloss.Color("#F87171")
	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#9FB7C3")
	BgDark  = lipgloss.Color("#2A4955")
	BgCard  = lipgloss.Color("#31566A")
	Border  = lipgloss.Color("#46708A")
)

var (
	Title    = lipgloss.NewStyle().Foreground(Accent).Bold(true).Align(lipgloss.Center)
	Label    = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Value    = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Loading  = Hint
	Notice   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Selected = Label

	Unselected = Value
)

// Card frames a record such as the Rockie profile.
var Card = lipgloss.NewStyle().
	Background(BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// ErrorBanner shows a dismissible failure above a screen's content.
var ErrorBanner = lipgloss.NewStyle().
	Foreground(Error).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Error).
	Padding(0, 1)

var (
	ButtonActive = lipgloss.NewStyle().
			Background(Accent).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
