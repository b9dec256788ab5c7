package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestFetcherExtractsMainContent(t *testing.T) {
	article := strings.Repeat("The claim is well documented in the historical record. ", 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head>
<meta property="article:modified_time" content="2024-05-01T08:00:00Z">
<script>var junk = "should not appear";</script>
</head><body>
<nav>Home About Contact</nav>
<main>%s</main>
<footer>All rights reserved</footer>
</body></html>`, article)
	}))
	defer srv.Close()

	f := NewFetcher(nil, "", zap.NewNop())
	page := f.Fetch(context.Background(), srv.URL)

	if page.Content == "" {
		t.Fatal("expected content")
	}
	if strings.Contains(page.Content, "Home About Contact") {
		t.Error("nav text leaked into content")
	}
	if strings.Contains(page.Content, "junk") {
		t.Error("script text leaked into content")
	}
	if !strings.Contains(page.Content, "well documented") {
		t.Errorf("main content missing: %q", page.Content)
	}
	if page.LastUpdated == nil || page.LastUpdated.Year() != 2024 {
		t.Errorf("expected 2024 modification date, got %v", page.LastUpdated)
	}
}

func TestFetcherFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Short <main>, substantive body text outside any semantic container.
		fmt.Fprintf(w, `<html><body><main>tiny</main><p>%s</p></body></html>`,
			strings.Repeat("Body fallback text. ", 20))
	}))
	defer srv.Close()

	f := NewFetcher(nil, "", zap.NewNop())
	page := f.Fetch(context.Background(), srv.URL)

	if !strings.Contains(page.Content, "Body fallback text.") {
		t.Errorf("expected body fallback, got %q", page.Content)
	}
}

func TestFetcherTruncatesContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><main>%s</main></body></html>`,
			strings.Repeat("x", 10000))
	}))
	defer srv.Close()

	f := NewFetcher(nil, "", zap.NewNop())
	page := f.Fetch(context.Background(), srv.URL)

	if len([]rune(page.Content)) > 2000 {
		t.Errorf("content exceeds 2000 chars: %d", len([]rune(page.Content)))
	}
}

func TestFetcherFailSoft(t *testing.T) {
	testCases := []struct {
		name string
		url  func(srvURL string) string
	}{
		{"EmptyURL", func(string) string { return "" }},
		{"Unreachable", func(string) string { return "http://127.0.0.1:1/" }},
		{"ServerError", func(srvURL string) string { return srvURL }},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFetcher(nil, "", zap.NewNop())
			page := f.Fetch(context.Background(), tc.url(srv.URL))
			if page.Content != "" || page.LastUpdated != nil {
				t.Errorf("expected zero PageContent, got %+v", page)
			}
		})
	}
}

func TestFetcherCollapsesWhitespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><main>many\n\n   spaced\t\twords "+strings.Repeat("pad ", 30)+"</main></body></html>")
	}))
	defer srv.Close()

	f := NewFetcher(nil, "", zap.NewNop())
	page := f.Fetch(context.Background(), srv.URL)

	if strings.Contains(page.Content, "  ") || strings.Contains(page.Content, "\n") {
		t.Errorf("whitespace not collapsed: %q", page.Content)
	}
	if !strings.HasPrefix(page.Content, "many spaced words") {
		t.Errorf("unexpected content %q", page.Content)
	}
}
