package scraper

import "fmt"

// FetchError represents a network or HTTP failure while retrieving the page.
// Fetch errors are fatal for the run.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ParseError represents a malformed JSON fragment inside a script tag.
// Parse errors are logged and the fragment is skipped; they never abort
// the scrape.
type ParseError struct {
	Fragment string
	Cause    error
}

func (e *ParseError) Error() string {
	frag := e.Fragment
	if len(frag) > 60 {
		frag = frag[:60] + "..."
	}
	return fmt.Sprintf("parse error: %q: %v", frag, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
