package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/s0up4200/reelsearch/movie"
	"github.com/s0up4200/reelsearch/search"
)

const (
	cardWidth  = 26
	maxColumns = 6
)

// View renders the screen
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Movie Search"))
	if m.searcher != nil {
		b.WriteString(" ")
		b.WriteString(m.styles.Provider.Render("via " + m.searcher.Name()))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")

	state := m.session.State()
	visible := m.Visible()

	switch {
	case state.Loading():
		b.WriteString(m.styles.Loading.Render(m.spinner.View() + " Loading..."))
		b.WriteString("\n")
	case state.Status == search.StatusFailed:
		b.WriteString(m.styles.Error.Render(state.Err))
		b.WriteString("\n")
	case m.session.ShowNoResults():
		b.WriteString(m.styles.Empty.Render("No movies found"))
		b.WriteString("\n")
	case state.Status == search.StatusIdle:
		b.WriteString(m.styles.Hint.Render("Start typing to search"))
		b.WriteString("\n")
	}

	if len(state.Movies) > 0 {
		if status := m.statusLine(state, len(visible)); status != "" {
			b.WriteString(m.styles.Status.Render(status))
			b.WriteString("\n")
		}
		b.WriteString(m.renderGrid(visible))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) statusLine(state search.State, shown int) string {
	total := len(state.Movies)
	var parts []string
	if m.filter != nil {
		parts = append(parts, fmt.Sprintf("showing %d of %d", shown, total))
	} else {
		parts = append(parts, fmt.Sprintf("%d results", total))
	}
	if state.TotalPages > 1 {
		parts = append(parts, fmt.Sprintf("page %d/%d", max(state.Page, 1), state.TotalPages))
	}
	return strings.Join(parts, " · ")
}

// columns returns how many cards fit next to each other
func (m *Model) columns() int {
	// border, padding and margin around each card
	cols := m.width / (cardWidth + 5)
	return max(1, min(cols, maxColumns))
}

func (m *Model) renderGrid(movies []movie.Movie) string {
	if len(movies) == 0 {
		return ""
	}

	cols := m.columns()
	rows := make([]string, 0, (len(movies)+cols-1)/cols)
	for start := 0; start < len(movies); start += cols {
		end := min(start+cols, len(movies))
		cards := make([]string, 0, end-start)
		for _, mv := range movies[start:end] {
			cards = append(cards, m.renderCard(mv))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderCard(mv movie.Movie) string {
	lines := []string{
		m.styles.CardTitle.Render(truncate(mv.Title)),
		m.styles.Subtitle.Render(truncate(mv.Subtitle())),
		m.styles.Poster.Render(truncate(mv.Poster())),
	}
	if mv.InLibrary {
		lines = append(lines, m.styles.Library.Render("● in library"))
	}
	return m.styles.Card.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func truncate(s string) string {
	return runewidth.Truncate(s, cardWidth-2, "…")
}
