// Package verdict turns gathered evidence and a model reply into a
// canonical fact-check verdict, surviving malformed or schema-violating
// model output through a layered parsing fallback chain.
package verdict

import (
	"fmt"
	"strings"
)

// Verdict is the model's judgment of a statement.
type Verdict string

const (
	VerdictTrue            Verdict = "TRUE"
	VerdictFalse           Verdict = "FALSE"
	VerdictPartiallyTrue   Verdict = "PARTIALLY_TRUE"
	VerdictContextNotClear Verdict = "CONTEXT_NOT_CLEAR"
	VerdictUnknown         Verdict = "UNKNOWN"
)

// normalizeVerdict coerces a model-supplied verdict token onto the enum.
// Spaces and hyphens collapse to underscores; anything unrecognized becomes
// UNKNOWN.
func normalizeVerdict(raw string) Verdict {
	token := strings.ToUpper(strings.TrimSpace(raw))
	token = strings.ReplaceAll(token, " ", "_")
	token = strings.ReplaceAll(token, "-", "_")
	for strings.Contains(token, "__") {
		token = strings.ReplaceAll(token, "__", "_")
	}
	switch Verdict(token) {
	case VerdictTrue, VerdictFalse, VerdictPartiallyTrue, VerdictContextNotClear, VerdictUnknown:
		return Verdict(token)
	}
	return VerdictUnknown
}

// Source is one cited reference. Index is assigned at output time: it is
// sequential from 1 and stable only within a single Record.
type Source struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// Record is the synthesized verdict returned to the caller. It is built
// once per request and never mutated afterwards.
type Record struct {
	Verdict         Verdict  `json:"verdict"`
	Explanation     string   `json:"explanation"`
	Sources         []Source `json:"sources"`
	Confidence      float64  `json:"confidence"`
	UsedWebScraping bool     `json:"usedWebScraping"`
}

// ParseError reports exhaustion of the parsing fallback chain. Raw carries
// the unmodified model text for caller-side diagnostics; a fabricated
// default verdict is never substituted for it.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response (%d chars)", len(e.Raw))
}
