package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse test document: %v", err)
	}
	return doc
}

func TestExtractLastUpdated(t *testing.T) {
	testCases := []struct {
		name      string
		html      string
		wantYear  int
		wantMonth int
		wantDay   int
		wantNil   bool
	}{
		{
			name:      "MetaModifiedTime",
			html:      `<html><head><meta property="article:modified_time" content="2024-03-15T10:30:00Z"></head><body></body></html>`,
			wantYear:  2024,
			wantMonth: 3,
			wantDay:   15,
		},
		{
			name:      "MetaBeatsTimeElement",
			html:      `<html><head><meta property="article:modified_time" content="2024-03-15"></head><body><time datetime="2020-01-01">old</time></body></html>`,
			wantYear:  2024,
			wantMonth: 3,
			wantDay:   15,
		},
		{
			name:      "TimeElementDatetime",
			html:      `<html><body><time datetime="2023-07-04T00:00:00Z">July 4</time></body></html>`,
			wantYear:  2023,
			wantMonth: 7,
			wantDay:   4,
		},
		{
			name:      "UpdatedLabel",
			html:      `<html><body><p>Last updated: 2022-11-30</p></body></html>`,
			wantYear:  2022,
			wantMonth: 11,
			wantDay:   30,
		},
		{
			name:      "BodyISOFallback",
			html:      `<html><body><p>The treaty was signed on 2019-08-21 in Vienna.</p></body></html>`,
			wantYear:  2019,
			wantMonth: 8,
			wantDay:   21,
		},
		{
			name:      "BodySlashFallback",
			html:      `<html><body><p>Filed 12/25/2021 with the court.</p></body></html>`,
			wantYear:  2021,
			wantMonth: 12,
			wantDay:   25,
		},
		{
			name:      "InvalidISOSkipped",
			html:      `<html><body><p>Ref 9999-99-99 then real date 2020-02-29.</p></body></html>`,
			wantYear:  2020,
			wantMonth: 2,
			wantDay:   29,
		},
		{
			name:    "NoDate",
			html:    `<html><body><p>Nothing datable here.</p></body></html>`,
			wantNil: true,
		},
		{
			name:    "GarbageMetadata",
			html:    `<html><head><meta property="article:modified_time" content="not a date"></head><body></body></html>`,
			wantNil: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractLastUpdated(docFrom(t, tc.html))
			if tc.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a date, got nil")
			}
			if got.Year() != tc.wantYear || int(got.Month()) != tc.wantMonth || got.Day() != tc.wantDay {
				t.Errorf("got %v, want %04d-%02d-%02d", got, tc.wantYear, tc.wantMonth, tc.wantDay)
			}
		})
	}
}
