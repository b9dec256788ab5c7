package search

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type stubEngine struct {
	name    EngineName
	results []Result
}

func (s *stubEngine) Name() EngineName { return s.name }

func (s *stubEngine) Search(ctx context.Context, query string, maxResults int) []Result {
	return s.results
}

func res(name EngineName, url, title string) Result {
	return Result{Title: title, URL: url, Source: name}
}

func TestAggregatorDeduplicatesKeepingFirstSeen(t *testing.T) {
	first := &stubEngine{name: EngineGoogle, results: []Result{
		res(EngineGoogle, "https://a.example/1", "google a"),
		res(EngineGoogle, "https://b.example/2", "google b"),
	}}
	second := &stubEngine{name: EngineDuckDuckGo, results: []Result{
		res(EngineDuckDuckGo, "https://a.example/1", "ddg a"),
		res(EngineDuckDuckGo, "https://c.example/3", "ddg c"),
	}}

	agg := NewAggregator(zap.NewNop(), first, second)
	merged := agg.Aggregate(context.Background(), "query", 5)

	if len(merged) != 3 {
		t.Fatalf("expected 3 results, got %d", len(merged))
	}
	if merged[0].Title != "google a" {
		t.Errorf("duplicate should keep first-seen entry, got %q", merged[0].Title)
	}
	wantOrder := []string{"https://a.example/1", "https://b.example/2", "https://c.example/3"}
	for i, want := range wantOrder {
		if merged[i].URL != want {
			t.Errorf("result %d: got %s, want %s", i, merged[i].URL, want)
		}
	}
}

func TestAggregatorFailSoft(t *testing.T) {
	broken := &stubEngine{name: EngineGoogle, results: nil}
	working := &stubEngine{name: EngineDuckDuckGo, results: []Result{
		res(EngineDuckDuckGo, "https://a.example/1", "a"),
		res(EngineDuckDuckGo, "https://b.example/2", "b"),
	}}

	agg := NewAggregator(zap.NewNop(), broken, working)
	merged := agg.Aggregate(context.Background(), "query", 5)

	if len(merged) != 2 {
		t.Fatalf("expected surviving engine's results, got %d", len(merged))
	}
	for _, r := range merged {
		if r.Source != EngineDuckDuckGo {
			t.Errorf("unexpected source %s", r.Source)
		}
	}
}

func TestAggregatorTruncatesAndDropsEmptyURLs(t *testing.T) {
	eng := &stubEngine{name: EngineGoogle, results: []Result{
		res(EngineGoogle, "", "no url"),
		res(EngineGoogle, "https://a.example/1", "a"),
		res(EngineGoogle, "https://b.example/2", "b"),
		res(EngineGoogle, "https://c.example/3", "c"),
	}}

	agg := NewAggregator(zap.NewNop(), eng)
	merged := agg.Aggregate(context.Background(), "query", 2)

	if len(merged) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(merged))
	}
	if merged[0].URL != "https://a.example/1" || merged[1].URL != "https://b.example/2" {
		t.Errorf("unexpected order: %+v", merged)
	}
}
