package scraper

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// metadataDateSelectors are structured modification-date fields, highest
// priority first.
var metadataDateSelectors = []string{
	`meta[property="article:modified_time"]`,
	`meta[itemprop="dateModified"]`,
	`meta[name="last-modified"]`,
	`meta[property="og:updated_time"]`,
	`meta[name="date"]`,
}

var (
	updatedLabelPattern = regexp.MustCompile(`(?i)(?:last\s+)?(?:updated|modified)\s*(?:on|:)?\s+([A-Za-z0-9]{1,9}[A-Za-z0-9,./ -]{4,40})`)
	isoDatePattern      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	slashDatePattern    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
)

// extractLastUpdated finds the page's modification date. Priority:
// structured metadata fields, a machine-readable <time> element, textual
// "updated"/"modified" labels, then a scan of the visible body text for ISO
// or slash-form dates. Returns nil when nothing parses as a valid date.
func extractLastUpdated(doc *goquery.Document) *time.Time {
	for _, selector := range metadataDateSelectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if ts := parseDate(content); ts != nil {
				return ts
			}
		}
	}

	if datetime, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if ts := parseDate(datetime); ts != nil {
			return ts
		}
	}
	if text := doc.Find("time").First().Text(); text != "" {
		if ts := parseDate(text); ts != nil {
			return ts
		}
	}

	body := doc.Find("body").Text()

	for _, m := range updatedLabelPattern.FindAllStringSubmatch(body, 5) {
		if ts := parseDate(m[1]); ts != nil {
			return ts
		}
	}

	for _, pattern := range []*regexp.Regexp{isoDatePattern, slashDatePattern} {
		for _, candidate := range pattern.FindAllString(body, 10) {
			if ts := parseDate(candidate); ts != nil {
				return ts
			}
		}
	}

	return nil
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	ts, err := dateparse.ParseAny(raw)
	if err != nil || ts.IsZero() {
		return nil
	}
	return &ts
}
