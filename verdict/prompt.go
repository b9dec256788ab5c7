package verdict

import (
	"fmt"
	"strings"

	"github.com/irahuldutta02/fact-check/evidence"
)

// recordSchema is the structured-output schema handed to providers that
// support schema-guided generation.
const recordSchema = `{
  "type": "object",
  "properties": {
    "verdict": {"type": "string", "enum": ["TRUE", "FALSE", "PARTIALLY_TRUE", "CONTEXT_NOT_CLEAR", "UNKNOWN"]},
    "explanation": {"type": "string"},
    "sources": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "index": {"type": "integer"},
          "name": {"type": "string"},
          "url": {"type": "string"}
        },
        "required": ["name", "url"]
      }
    },
    "confidence": {"type": "number", "minimum": 0, "maximum": 1}
  },
  "required": ["verdict", "explanation", "sources", "confidence"]
}`

// buildPrompt renders the fact-checking instructions. With evidence, a
// numbered block of search snippets and extracted page content is embedded
// and the model is told to answer from it alone, citing entries as [n].
// Without evidence the model answers from general knowledge.
func buildPrompt(statement string, bundle evidence.Bundle) string {
	var b strings.Builder

	b.WriteString("Act as a fact-checking expert. Analyze this statement and determine if it is TRUE, FALSE, PARTIALLY_TRUE, or CONTEXT_NOT_CLEAR:\n\n")
	fmt.Fprintf(&b, "Statement: %q\n\n", statement)

	if !bundle.Empty() {
		b.WriteString("Web evidence gathered for this statement:\n\n")

		for i, r := range bundle.SearchResults {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, r.Title)
			if r.Snippet != "" {
				fmt.Fprintf(&b, "    %s\n", r.Snippet)
			}
			fmt.Fprintf(&b, "    URL: %s\n", r.URL)
		}

		if len(bundle.ContentDetails) > 0 {
			b.WriteString("\nExtracted page content:\n\n")
			for _, d := range bundle.ContentDetails {
				fmt.Fprintf(&b, "[%d] %s", evidenceNumber(bundle, d), d.URL)
				if d.LastUpdated != nil {
					fmt.Fprintf(&b, " (last updated %s)", d.LastUpdated.Format("2006-01-02"))
				}
				b.WriteString("\n")
				if d.Content != "" {
					fmt.Fprintf(&b, "    %s\n", d.Content)
				}
			}
		}

		b.WriteString("\nAnswer using ONLY the evidence above. Cite the evidence entries that support your reasoning with bracket markers like [2] matching their numbering.\n\n")
	} else {
		b.WriteString("No web evidence could be gathered; answer from your general knowledge and list any sources you rely on with their URLs.\n\n")
	}

	b.WriteString("Please provide:\n")
	b.WriteString("1. A verdict (TRUE, FALSE, PARTIALLY_TRUE, or CONTEXT_NOT_CLEAR)\n")
	b.WriteString("2. A detailed explanation of your reasoning\n")
	b.WriteString("3. Sources that support your conclusion with URLs\n")
	b.WriteString("4. A confidence between 0 and 1\n\n")
	b.WriteString("Format the response as a JSON object with this structure:\n")
	b.WriteString(`{"verdict": "TRUE", "explanation": "detailed explanation with citations like [1]", "sources": [{"index": 1, "name": "Source Name", "url": "https://source.url"}], "confidence": 0.9}`)

	return b.String()
}

// evidenceNumber finds the search-result number a content detail belongs
// to, so both sections of the evidence block share one numbering. Details
// are a subset of search results by construction; a detail filtered ahead
// of its parent would fall back to 0 rather than inventing a number.
func evidenceNumber(bundle evidence.Bundle, d evidence.ContentDetail) int {
	for i, r := range bundle.SearchResults {
		if r.URL == d.URL {
			return i + 1
		}
	}
	return 0
}
