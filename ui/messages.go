package ui

import (
	"github.com/s0up4200/reelsearch/movie"
	"github.com/s0up4200/reelsearch/search"
)

// querySettledMsg is sent when the input has been stable for the debounce delay
type querySettledMsg struct {
	query string
}

// searchResultMsg carries the outcome of one issued request
type searchResultMsg struct {
	token search.Token
	query string
	page  *movie.Page
	err   error
}
