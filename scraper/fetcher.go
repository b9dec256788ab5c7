// Package scraper fetches pages referenced by search results and distills
// them into citable evidence: the main-content text plus a best-effort
// last-updated timestamp.
package scraper

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/irahuldutta02/fact-check/search"
)

const (
	fetchTimeout    = 15 * time.Second
	maxContentChars = 2000
	// Below this length a semantic container is treated as decoration and
	// extraction moves on to the next candidate.
	minContainerChars = 100
)

// mainContentSelectors is the priority order for locating article text.
var mainContentSelectors = []string{"main", "article", ".content", "#content", ".main", "#main"}

var whitespacePattern = regexp.MustCompile(`\s+`)

// PageContent is the fetch outcome for one URL. Content is empty and
// LastUpdated nil when the page could not be fetched or parsed.
type PageContent struct {
	Content     string
	LastUpdated *time.Time
}

// Fetcher retrieves pages with a bounded timeout over an injected transport.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

func NewFetcher(transport http.RoundTripper, userAgent string, logger *zap.Logger) *Fetcher {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   fetchTimeout,
		},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch downloads rawURL and extracts its main content and last-updated
// date. It never returns an error: any failure yields a zero PageContent so
// the evidence pipeline can keep the result without its page text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) PageContent {
	pageURL := search.NormalizeURL(rawURL)
	if pageURL == "" {
		f.logger.Warn("fetch skipped: no resolvable URL", zap.String("raw", rawURL))
		return PageContent{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		f.logger.Warn("fetch request build failed", zap.String("url", pageURL), zap.Error(err))
		return PageContent{}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("fetch failed", zap.String("url", pageURL), zap.Error(err))
		return PageContent{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("fetch returned non-2xx",
			zap.String("url", pageURL),
			zap.Int("status", resp.StatusCode))
		return PageContent{}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		f.logger.Warn("fetch parse failed", zap.String("url", pageURL), zap.Error(err))
		return PageContent{}
	}

	lastUpdated := extractLastUpdated(doc)

	// Boilerplate removal happens before text extraction so navigation and
	// chrome never pollute the evidence.
	doc.Find("script, style, nav, footer, header, aside").Remove()

	content := extractMainContent(doc)

	f.logger.Debug("fetched page",
		zap.String("url", pageURL),
		zap.Int("content_chars", len(content)),
		zap.Bool("dated", lastUpdated != nil))

	return PageContent{Content: content, LastUpdated: lastUpdated}
}

// extractMainContent walks the semantic-container priority list and uses
// the first container with a substantive amount of text, falling back to
// the whole body. The result is whitespace-collapsed and truncated.
func extractMainContent(doc *goquery.Document) string {
	for _, selector := range mainContentSelectors {
		text := collapseWhitespace(doc.Find(selector).Text())
		if len(text) > minContainerChars {
			return truncate(text, maxContentChars)
		}
	}
	return truncate(collapseWhitespace(doc.Find("body").Text()), maxContentChars)
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
