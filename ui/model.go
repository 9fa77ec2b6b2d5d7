// Package ui implements the interactive search screen.
package ui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/s0up4200/reelsearch/debounce"
	"github.com/s0up4200/reelsearch/filter"
	"github.com/s0up4200/reelsearch/movie"
	"github.com/s0up4200/reelsearch/radarr"
	"github.com/s0up4200/reelsearch/search"
)

const defaultTimeout = 30 * time.Second

// Options configures the search screen
type Options struct {
	Searcher  movie.Searcher
	Annotator radarr.Annotator // optional
	Filter    filter.Filter    // optional

	Debounce           time.Duration
	Timeout            time.Duration
	KeepResultsOnError bool
	InitialQuery       string

	Logger zerolog.Logger
}

// Model is the Bubble Tea model of the search screen
type Model struct {
	searcher  movie.Searcher
	annotator radarr.Annotator
	filter    filter.Filter
	timeout   time.Duration
	logger    zerolog.Logger

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  *Styles

	session   *search.Session
	debouncer *debounce.Debouncer[string]
	cancel    context.CancelFunc
	lastValue string
	settled   string // last debounced query acted on

	width  int
	height int

	sendMu sync.Mutex
	send   func(tea.Msg)
}

// NewModel creates the search screen
func NewModel(opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Search for a movie..."
	input.Prompt = "🔍 "
	input.CharLimit = 200
	input.Width = 60
	input.SetValue(opts.InitialQuery)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	m := &Model{
		searcher:  opts.Searcher,
		annotator: opts.Annotator,
		filter:    opts.Filter,
		timeout:   timeout,
		logger:    opts.Logger.With().Str("component", "ui").Logger(),
		input:     input,
		spinner:   sp,
		help:      help.New(),
		keys:      defaultKeyMap(),
		styles:    NewStyles(),
		session:   search.NewSession(search.KeepResultsOnError(opts.KeepResultsOnError)),
		lastValue: opts.InitialQuery,
		width:     80,
	}
	m.debouncer = debounce.New(opts.Debounce, m.querySettled)
	return m
}

// SetProgram routes settled queries to the running program
func (m *Model) SetProgram(p *tea.Program) {
	m.setSender(p.Send)
}

func (m *Model) setSender(send func(tea.Msg)) {
	m.sendMu.Lock()
	m.send = send
	m.sendMu.Unlock()
}

// querySettled runs on the debouncer's timer goroutine
func (m *Model) querySettled(query string) {
	m.sendMu.Lock()
	send := m.send
	m.sendMu.Unlock()

	if send != nil {
		send(querySettledMsg{query: query})
	}
}

// Init returns the initial commands
func (m *Model) Init() tea.Cmd {
	if !movie.IsBlank(m.lastValue) {
		m.debouncer.Trigger(m.lastValue)
	}
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(20, min(msg.Width-10, 80))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			m.inputChanged()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.inputChanged()
		return m, cmd

	case querySettledMsg:
		if msg.query == m.settled {
			return m, nil
		}
		m.settled = msg.query
		return m, m.startSearch(msg.query)

	case searchResultMsg:
		m.finishSearch(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.session.State().Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// inputChanged pushes a changed input value into the debouncer
func (m *Model) inputChanged() {
	value := m.input.Value()
	if value == m.lastValue {
		return
	}
	m.lastValue = value
	m.debouncer.Trigger(value)
}

// startSearch applies a settled query and returns the request command
func (m *Model) startSearch(query string) tea.Cmd {
	m.cancelInFlight()

	token, ok := m.session.Begin(query)
	if !ok {
		m.logger.Debug().Msg("Query cleared")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.cancel = cancel

	m.logger.Debug().
		Str("query", query).
		Uint64("token", uint64(token)).
		Msg("Search started")

	return tea.Batch(m.searchCmd(ctx, cancel, token, query), m.spinner.Tick)
}

func (m *Model) searchCmd(ctx context.Context, cancel context.CancelFunc, token search.Token, query string) tea.Cmd {
	searcher := m.searcher
	annotator := m.annotator

	return func() tea.Msg {
		defer cancel()

		page, err := searcher.Search(ctx, query, 1)
		if err == nil && page != nil && annotator != nil {
			page.Movies = annotator.Annotate(ctx, page.Movies)
		}
		return searchResultMsg{token: token, query: query, page: page, err: err}
	}
}

func (m *Model) finishSearch(msg searchResultMsg) {
	var applied bool
	if msg.err != nil {
		applied = m.session.Reject(msg.token, msg.err)
	} else {
		applied = m.session.Resolve(msg.token, msg.page)
	}

	if !applied {
		m.logger.Debug().
			Str("query", msg.query).
			Uint64("token", uint64(msg.token)).
			Msg("Dropped stale search response")
		return
	}

	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("query", msg.query).Msg("Search failed")
		return
	}

	m.logger.Debug().
		Str("query", msg.query).
		Int("results", len(m.session.State().Movies)).
		Msg("Search finished")
}

func (m *Model) cancelInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Close stops the debouncer and cancels any in-flight request
func (m *Model) Close() {
	m.debouncer.Stop()
	m.cancelInFlight()
}

// State returns the current session state
func (m *Model) State() search.State {
	return m.session.State()
}

// Visible returns the results that pass the active filter
func (m *Model) Visible() []movie.Movie {
	return filter.Apply(m.filter, m.session.State().Movies)
}
