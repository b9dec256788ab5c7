package search

import "context"

// EngineName identifies which search surface produced a result.
type EngineName string

const (
	EngineGoogle     EngineName = "google"
	EngineDuckDuckGo EngineName = "duckduckgo"
)

// Result is a single entry scraped from a search-result page. The URL is
// canonical (absolute, redirect-unwrapped) and identifies the result within
// one aggregation run.
type Result struct {
	Title   string     `json:"title"`
	URL     string     `json:"url"`
	Snippet string     `json:"snippet"`
	Source  EngineName `json:"source"`
}

// Engine scrapes one public search surface. Implementations never return an
// error for network or markup problems: they log and return an empty slice,
// so a broken surface degrades to missing evidence instead of a failed run.
type Engine interface {
	Name() EngineName
	Search(ctx context.Context, query string, maxResults int) []Result
}
