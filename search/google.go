package search

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const googleBaseURL = "https://www.google.com/search"

// Google scrapes the plain-HTML Google results page. One Search call issues
// exactly one GET; drift in Google's markup degrades to an empty slice.
type Google struct {
	cfg    EngineConfig
	logger *zap.Logger
}

func NewGoogle(cfg EngineConfig, logger *zap.Logger) *Google {
	cfg.applyDefaults(googleBaseURL)
	return &Google{cfg: cfg, logger: logger}
}

func (g *Google) Name() EngineName { return EngineGoogle }

func (g *Google) Search(ctx context.Context, query string, maxResults int) []Result {
	if ctx.Err() != nil {
		return nil
	}

	c := newCollector(g.cfg)

	var results []Result
	c.OnHTML("div.g", func(e *colly.HTMLElement) {
		if len(results) >= maxResults {
			return
		}
		href := e.ChildAttr("a[href]", "href")
		canonical := NormalizeURL(unwrapGoogleHref(href))
		if canonical == "" {
			return
		}
		snippet := e.ChildText("div.VwiC3b")
		if snippet == "" {
			snippet = e.ChildText("span.aCOpRe")
		}
		results = append(results, Result{
			Title:   strings.TrimSpace(e.ChildText("h3")),
			URL:     canonical,
			Snippet: strings.TrimSpace(snippet),
			Source:  EngineGoogle,
		})
	})

	c.OnResponse(func(r *colly.Response) {
		if reason := detectInterstitial(r.Body); reason != "" {
			g.logger.Warn("google interstitial detected",
				zap.String("reason", reason),
				zap.String("query", query))
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		g.logger.Warn("google search failed",
			zap.String("query", query),
			zap.Int("status", status),
			zap.Error(err))
	})

	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxResults))
	if err := c.Visit(g.cfg.BaseURL + "?" + params.Encode()); err != nil {
		g.logger.Warn("google visit failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	c.Wait()

	return results
}

// unwrapGoogleHref strips Google's /url?q= link wrapper. Anything else
// passes through untouched.
func unwrapGoogleHref(href string) string {
	rest, ok := strings.CutPrefix(href, "/url?")
	if !ok {
		return href
	}
	params, err := url.ParseQuery(rest)
	if err != nil {
		return href
	}
	if target := params.Get("q"); target != "" {
		return target
	}
	return href
}
