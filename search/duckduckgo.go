package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const (
	duckDuckGoBaseURL = "https://html.duckduckgo.com/html/"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultTimeout   = 10 * time.Second
)

// EngineConfig carries the immutable HTTP settings every adapter is built
// with. The transport is constructed once in main and shared; adapters never
// reach for process-wide client state.
type EngineConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Transport http.RoundTripper
}

func (c *EngineConfig) applyDefaults(baseURL string) {
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// DuckDuckGo scrapes the HTML-only DuckDuckGo surface. One Search call
// issues exactly one GET.
type DuckDuckGo struct {
	cfg    EngineConfig
	logger *zap.Logger
}

func NewDuckDuckGo(cfg EngineConfig, logger *zap.Logger) *DuckDuckGo {
	cfg.applyDefaults(duckDuckGoBaseURL)
	return &DuckDuckGo{cfg: cfg, logger: logger}
}

func (d *DuckDuckGo) Name() EngineName { return EngineDuckDuckGo }

func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) []Result {
	if ctx.Err() != nil {
		return nil
	}

	c := newCollector(d.cfg)

	var results []Result
	c.OnHTML("div.result", func(e *colly.HTMLElement) {
		if len(results) >= maxResults {
			return
		}
		href := e.ChildAttr(".result__title a", "href")
		canonical := NormalizeURL(href)
		if canonical == "" {
			// Entries without a resolvable URL cannot be cited; drop them.
			return
		}
		results = append(results, Result{
			Title:   strings.TrimSpace(e.ChildText(".result__title")),
			URL:     canonical,
			Snippet: strings.TrimSpace(e.ChildText(".result__snippet")),
			Source:  EngineDuckDuckGo,
		})
	})

	c.OnResponse(func(r *colly.Response) {
		if reason := detectInterstitial(r.Body); reason != "" {
			d.logger.Warn("duckduckgo interstitial detected",
				zap.String("reason", reason),
				zap.String("query", query))
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		d.logger.Warn("duckduckgo search failed",
			zap.String("query", query),
			zap.Int("status", status),
			zap.Error(err))
	})

	searchURL := d.cfg.BaseURL + "?q=" + url.QueryEscape(query)
	if err := c.Visit(searchURL); err != nil {
		d.logger.Warn("duckduckgo visit failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	c.Wait()

	return results
}

// newCollector builds a single-request collector with the adapter's
// transport, user agent, and timeout. A fresh collector per call keeps
// colly's visited-URL bookkeeping from leaking across requests.
func newCollector(cfg EngineConfig) *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.MaxDepth(1),
		colly.AllowURLRevisit(),
	)
	if cfg.Transport != nil {
		c.WithTransport(cfg.Transport)
	}
	c.SetRequestTimeout(cfg.Timeout)
	return c
}

// detectInterstitial reports anti-scraping walls in a response body. This is
// a diagnostic signal only: the caller still extracts whatever it can.
func detectInterstitial(body []byte) string {
	page := strings.ToLower(string(body))
	switch {
	case strings.Contains(page, "captcha"):
		return "captcha"
	case strings.Contains(page, "unusual traffic"):
		return "unusual traffic"
	case strings.Contains(page, "consent.google.com"):
		return "consent wall"
	}
	return ""
}
