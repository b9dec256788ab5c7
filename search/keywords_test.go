package search

import (
	"strings"
	"testing"
)

func TestSnowballKeywordExtractor(t *testing.T) {
	extractor := NewSnowballKeywordExtractor()

	keywords, err := extractor.ExtractKeywords("The Great Wall of China is visible from space!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keywords) == 0 {
		t.Fatal("expected keywords")
	}
	for _, kw := range keywords {
		if kw == "the" || kw == "of" || kw == "is" || kw == "from" {
			t.Errorf("stop word %q survived extraction", kw)
		}
	}
	joined := strings.Join(keywords, " ")
	if !strings.Contains(joined, "wall") || !strings.Contains(joined, "china") {
		t.Errorf("content words missing from %v", keywords)
	}
}

func TestSnowballKeywordExtractorDeduplicates(t *testing.T) {
	extractor := NewSnowballKeywordExtractor()

	keywords, err := extractor.ExtractKeywords("running runs running")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[string]int)
	for _, kw := range keywords {
		seen[kw]++
		if seen[kw] > 1 {
			t.Errorf("duplicate stem %q", kw)
		}
	}
}

func TestRefineQueryFallsBackToStatement(t *testing.T) {
	extractor := NewSnowballKeywordExtractor()

	testCases := []struct {
		name      string
		statement string
		fallback  bool
	}{
		{"AllStopWords", "is it the", true},
		{"Normal", "moon landing happened in 1969", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := RefineQuery(extractor, tc.statement)
			if tc.fallback && got != tc.statement {
				t.Errorf("expected raw statement fallback, got %q", got)
			}
			if !tc.fallback && got == "" {
				t.Error("expected non-empty refined query")
			}
		})
	}
}
