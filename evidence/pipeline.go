// Package evidence assembles the material a verdict is synthesized from:
// aggregated search results plus extracted page content for a bounded
// subset of them.
package evidence

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/irahuldutta02/fact-check/scraper"
	"github.com/irahuldutta02/fact-check/search"
)

const (
	maxSearchResults  = 5
	maxContentFetches = 3
)

// ContentDetail is a search result enriched with the fetched page text and
// its best-effort modification date. Content stays empty and LastUpdated
// nil when the fetch failed.
type ContentDetail struct {
	search.Result
	Content     string     `json:"content"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// Bundle is the evidence for one fact-check request. ContentDetails is a
// subset of SearchResults, bounded to the first fetched entries.
type Bundle struct {
	SearchResults  []search.Result `json:"searchResults"`
	ContentDetails []ContentDetail `json:"contentDetails"`
}

func (b Bundle) Empty() bool {
	return len(b.SearchResults) == 0 && len(b.ContentDetails) == 0
}

// Policy controls what happens to fetched content whose modification date
// could not be resolved. KeepUndated retains everything in fetch order; the
// filtering variant keeps only dated details, most recent first.
type Policy struct {
	KeepUndated bool
}

// Aggregator merges search-engine output; satisfied by *search.Aggregator.
type Aggregator interface {
	Aggregate(ctx context.Context, query string, maxResults int) []search.Result
}

// PageFetcher retrieves one page; satisfied by *scraper.Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) scraper.PageContent
}

// Pipeline sequences aggregation and content fetching. Gather never returns
// an error: total collapse degrades to an empty Bundle.
type Pipeline struct {
	aggregator Aggregator
	fetcher    PageFetcher
	extractor  search.KeywordExtractor
	policy     Policy
	logger     *zap.Logger
}

func NewPipeline(aggregator Aggregator, fetcher PageFetcher, extractor search.KeywordExtractor, policy Policy, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		aggregator: aggregator,
		fetcher:    fetcher,
		extractor:  extractor,
		policy:     policy,
		logger:     logger,
	}
}

// Gather collects evidence for a statement. Search results are capped at
// five; page content is fetched concurrently for the first three, each
// fetch writing only its own slot so ordering stays deterministic.
func (p *Pipeline) Gather(ctx context.Context, statement string) Bundle {
	query := search.RefineQuery(p.extractor, statement)
	results := p.aggregator.Aggregate(ctx, query, maxSearchResults)
	if len(results) == 0 {
		p.logger.Info("no search results", zap.String("query", query))
		return Bundle{}
	}

	subset := results
	if len(subset) > maxContentFetches {
		subset = subset[:maxContentFetches]
	}

	details := make([]ContentDetail, len(subset))
	var wg sync.WaitGroup
	for i, r := range subset {
		wg.Add(1)
		go func(slot int, r search.Result) {
			defer wg.Done()
			page := p.fetcher.Fetch(ctx, r.URL)
			details[slot] = ContentDetail{
				Result:      r,
				Content:     page.Content,
				LastUpdated: page.LastUpdated,
			}
		}(i, r)
	}
	wg.Wait()

	details = p.applyPolicy(details)

	p.logger.Info("evidence gathered",
		zap.String("query", query),
		zap.Int("search_results", len(results)),
		zap.Int("content_details", len(details)))

	return Bundle{SearchResults: results, ContentDetails: details}
}

// applyPolicy keeps everything under the permissive policy. Under the
// freshness policy it drops undated details, even ones that fetched fine,
// and orders the rest most recent first.
func (p *Pipeline) applyPolicy(details []ContentDetail) []ContentDetail {
	if p.policy.KeepUndated {
		return details
	}

	dated := make([]ContentDetail, 0, len(details))
	for _, d := range details {
		if d.LastUpdated == nil {
			p.logger.Debug("dropping undated evidence", zap.String("url", d.URL))
			continue
		}
		dated = append(dated, d)
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].LastUpdated.After(*dated[j].LastUpdated)
	})
	return dated
}
