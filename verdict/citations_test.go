package verdict

import (
	"testing"
)

func idx(i int) *int { return &i }

func TestRemapCitationsReindexesSequentially(t *testing.T) {
	explanation := "Confirmed by [7] and disputed by [4]."
	sources := []parsedSource{
		{Index: idx(7), Name: "NASA", URL: "https://nasa.gov"},
		{Index: idx(4), Name: "BBC", URL: "https://bbc.com"},
	}

	rewritten, out := remapCitations(explanation, sources)

	if rewritten != "Confirmed by [1] and disputed by [2]." {
		t.Errorf("rewritten = %q", rewritten)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(out))
	}
	if out[0].Index != 1 || out[0].Name != "NASA" {
		t.Errorf("first source = %+v", out[0])
	}
	if out[1].Index != 2 || out[1].Name != "BBC" {
		t.Errorf("second source = %+v", out[1])
	}
}

func TestRemapCitationsDanglingMarkerUntouched(t *testing.T) {
	explanation := "Supported by [2] but see [5]."
	sources := []parsedSource{
		{Index: idx(2), Name: "Reuters", URL: "https://reuters.com"},
	}

	rewritten, out := remapCitations(explanation, sources)

	if rewritten != "Supported by [1] but see [5]." {
		t.Errorf("dangling [5] should be untouched, got %q", rewritten)
	}
	if len(out) != 1 {
		t.Errorf("sources = %+v", out)
	}
}

func TestRemapCitationsSkipsDuplicateAndMissingIndices(t *testing.T) {
	sources := []parsedSource{
		{Index: idx(3), Name: "First", URL: "https://first.example"},
		{Index: idx(3), Name: "DuplicateIndex", URL: "https://dup.example"},
		{Index: nil, Name: "NoIndex", URL: "https://none.example"},
		{Index: idx(9), Name: "Second", URL: "https://second.example"},
	}

	_, out := remapCitations("cites [3] and [9]", sources)

	if len(out) != 2 {
		t.Fatalf("expected duplicate and unindexed sources skipped, got %+v", out)
	}
	if out[0].Name != "First" || out[0].Index != 1 {
		t.Errorf("first = %+v", out[0])
	}
	if out[1].Name != "Second" || out[1].Index != 2 {
		t.Errorf("second = %+v", out[1])
	}
}

func TestRemapCitationsInjective(t *testing.T) {
	sources := []parsedSource{
		{Index: idx(10), Name: "A", URL: "https://a"},
		{Index: idx(2), Name: "B", URL: "https://b"},
		{Index: idx(30), Name: "C", URL: "https://c"},
	}

	_, out := remapCitations("", sources)

	seen := make(map[int]bool)
	for i, s := range out {
		if seen[s.Index] {
			t.Errorf("index %d assigned twice", s.Index)
		}
		seen[s.Index] = true
		if s.Index != i+1 {
			t.Errorf("indices must be assigned in first-appearance order: %+v", out)
		}
	}
}

func TestRemapCitationsEmptySources(t *testing.T) {
	rewritten, out := remapCitations("No sources cited [1].", nil)
	if rewritten != "No sources cited [1]." {
		t.Errorf("explanation should be untouched, got %q", rewritten)
	}
	if out != nil {
		t.Errorf("expected nil sources, got %+v", out)
	}
}
