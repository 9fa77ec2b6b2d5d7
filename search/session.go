// Package search holds the search screen's state machine and the helpers
// that coordinate requests against movie providers.
package search

import (
	"github.com/s0up4200/reelsearch/movie"
)

// Status is the request lifecycle state of the screen
type Status int

const (
	// StatusIdle means no query is active
	StatusIdle Status = iota
	// StatusSearching means a request for the current query is in flight
	StatusSearching
	// StatusLoaded means the latest request succeeded; Movies may be empty
	StatusLoaded
	// StatusFailed means the latest request failed; Err holds the message
	StatusFailed
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Token identifies one issued request. Only the latest token may change state.
type Token uint64

// State is a snapshot of the session
type State struct {
	Status     Status
	Query      string
	Movies     []movie.Movie
	Err        string
	Page       int
	TotalPages int
}

// Loading reports whether a request is in flight
func (s State) Loading() bool {
	return s.Status == StatusSearching
}

// Option configures a Session
type Option func(*Session)

// KeepResultsOnError keeps the previous results visible when a search fails.
// By default they are cleared so the list never contradicts the error.
func KeepResultsOnError(keep bool) Option {
	return func(s *Session) {
		s.keepOnError = keep
	}
}

// Session is the finite-state container behind the search screen.
// It is not safe for concurrent use; the UI event loop serializes access.
type Session struct {
	state       State
	latest      Token
	keepOnError bool
}

// NewSession creates an idle session
func NewSession(opts ...Option) *Session {
	s := &Session{
		state: State{Status: StatusIdle, Movies: []movie.Movie{}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Latest returns the most recently issued token
func (s *Session) Latest() Token {
	return s.latest
}

// Begin starts a search for a settled query and returns its token.
// A blank query clears the session instead and returns false.
func (s *Session) Begin(query string) (Token, bool) {
	if movie.IsBlank(query) {
		s.Clear()
		return 0, false
	}

	s.latest++
	s.state.Status = StatusSearching
	s.state.Query = query
	s.state.Err = ""
	return s.latest, true
}

// Clear returns to Idle and invalidates any in-flight request
func (s *Session) Clear() {
	s.latest++
	s.state = State{Status: StatusIdle, Movies: []movie.Movie{}}
}

// Resolve applies a successful response if tok is still current
func (s *Session) Resolve(tok Token, page *movie.Page) bool {
	if !s.current(tok) {
		return false
	}

	s.state.Status = StatusLoaded
	s.state.Err = ""
	if page == nil {
		page = movie.EmptyPage()
	}
	s.state.Movies = page.Movies
	if s.state.Movies == nil {
		s.state.Movies = []movie.Movie{}
	}
	s.state.Page = page.Page
	s.state.TotalPages = page.TotalPages
	return true
}

// Reject applies a failed response if tok is still current
func (s *Session) Reject(tok Token, err error) bool {
	if !s.current(tok) {
		return false
	}

	s.state.Status = StatusFailed
	s.state.Err = movie.Message(err)
	if s.state.Err == "" {
		s.state.Err = "Search failed"
	}
	if !s.keepOnError {
		s.state.Movies = []movie.Movie{}
		s.state.Page = 0
		s.state.TotalPages = 0
	}
	return true
}

// ShowNoResults reports whether the "no results" indicator should be shown
func (s *Session) ShowNoResults() bool {
	return s.state.Status == StatusLoaded &&
		len(s.state.Movies) == 0 &&
		!movie.IsBlank(s.state.Query)
}

// current reports whether tok is the latest issued, still pending token
func (s *Session) current(tok Token) bool {
	return tok != 0 && tok == s.latest && s.state.Status == StatusSearching
}
