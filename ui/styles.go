package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions for the search screen
type Styles struct {
	Title     lipgloss.Style
	Provider  lipgloss.Style
	Input     lipgloss.Style
	Loading   lipgloss.Style
	Error     lipgloss.Style
	Empty     lipgloss.Style
	Hint      lipgloss.Style
	Status    lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Subtitle  lipgloss.Style
	Poster    lipgloss.Style
	Library   lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Provider: lipgloss.NewStyle().Faint(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			MarginTop(1),
		Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1), // red
		Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		Hint:    lipgloss.NewStyle().Faint(true).MarginTop(1),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginRight(1),
		CardTitle: lipgloss.NewStyle().Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Poster:    lipgloss.NewStyle().Faint(true),
		Library:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Help:      lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
