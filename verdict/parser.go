package verdict

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// defaultExplanation substitutes for a reply that carried a verdict but no
// usable explanation text.
const defaultExplanation = "The model analyzed the statement but did not provide a detailed explanation."

const defaultConfidence = 0.5

// parsedSource is a source as the model supplied it. Index is nil when the
// model gave none; citation re-indexing decides what that means.
type parsedSource struct {
	Index *int
	Name  string
	URL   string
}

// parsedReply is the fallback chain's output before citation re-indexing.
type parsedReply struct {
	Verdict     Verdict
	Explanation string
	Sources     []parsedSource
	Confidence  float64
}

// parseReply runs the fallback chain over raw model text: direct JSON
// parse, then extraction of the first balanced {...} span, then regex field
// recovery. The first branch that succeeds wins; exhaustion yields a
// ParseError carrying the raw text.
func parseReply(text string) (*parsedReply, error) {
	if reply := tryParseJSON(strings.TrimSpace(text)); reply != nil {
		return reply, nil
	}

	if span := extractJSONObject(text); span != "" {
		if reply := tryParseJSON(span); reply != nil {
			return reply, nil
		}
	}

	if reply := extractFields(text); reply != nil {
		return reply, nil
	}

	return nil, &ParseError{Raw: text}
}

type rawSource struct {
	Index *int   `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type rawReply struct {
	Verdict     *string     `json:"verdict"`
	Explanation *string     `json:"explanation"`
	Sources     []rawSource `json:"sources"`
	Confidence  *float64    `json:"confidence"`
}

// tryParseJSON parses candidate as a JSON object, substituting defaults for
// missing fields: verdict UNKNOWN, a generic explanation, confidence 0.5.
func tryParseJSON(candidate string) *parsedReply {
	if !strings.HasPrefix(candidate, "{") {
		return nil
	}
	var raw rawReply
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil
	}

	reply := &parsedReply{
		Verdict:     VerdictUnknown,
		Explanation: defaultExplanation,
		Confidence:  defaultConfidence,
	}
	if raw.Verdict != nil {
		reply.Verdict = normalizeVerdict(*raw.Verdict)
	}
	if raw.Explanation != nil && strings.TrimSpace(*raw.Explanation) != "" {
		reply.Explanation = strings.TrimSpace(*raw.Explanation)
	}
	if raw.Confidence != nil {
		reply.Confidence = clampConfidence(*raw.Confidence)
	}
	for _, s := range raw.Sources {
		reply.Sources = append(reply.Sources, parsedSource{
			Index: s.Index,
			Name:  strings.TrimSpace(s.Name),
			URL:   strings.TrimSpace(s.URL),
		})
	}
	return reply
}

// extractJSONObject returns the first balanced top-level {...} span in the
// text, tracking string literals and escapes so braces inside values do not
// end the scan. Returns "" when no balanced span exists.
func extractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

var (
	verdictPattern     = regexp.MustCompile(`(?i)verdict["'\s:]+([A-Z_ -]+)`)
	explanationPattern = regexp.MustCompile(`(?i)explanation["'\s:]+([^"]+?)(?:,|\n|source)`)
	sourcePattern      = regexp.MustCompile(`(?i)(?:"?index"?\s*[:=]\s*(\d+)\s*,?\s*)?"?name"?\s*[:=]\s*"([^"]+)"\s*,?\s*"?url"?\s*[:=]\s*"([^"]+)"`)
	confidencePattern  = regexp.MustCompile(`(?i)confidence["'\s:]+([0-9]*\.?[0-9]+)`)
)

// extractFields recovers verdict, explanation, sources, and confidence from
// free-form text with repeated pattern scans. A reply with no recognizable
// verdict token is unparseable; everything else gets defaults.
func extractFields(text string) *parsedReply {
	verdictMatch := verdictPattern.FindStringSubmatch(text)
	if verdictMatch == nil {
		return nil
	}

	reply := &parsedReply{
		Verdict:     normalizeVerdict(verdictMatch[1]),
		Explanation: defaultExplanation,
		Confidence:  defaultConfidence,
	}

	if m := explanationPattern.FindStringSubmatch(text); m != nil {
		if explanation := strings.TrimSpace(m[1]); explanation != "" {
			reply.Explanation = explanation
		}
	}

	// Unindexed sources receive sequential indices from 1 in scan order.
	seq := 1
	for _, m := range sourcePattern.FindAllStringSubmatch(text, -1) {
		src := parsedSource{Name: strings.TrimSpace(m[2]), URL: strings.TrimSpace(m[3])}
		if m[1] != "" {
			if idx, err := strconv.Atoi(m[1]); err == nil {
				src.Index = &idx
			}
		}
		if src.Index == nil {
			idx := seq
			src.Index = &idx
			seq++
		}
		reply.Sources = append(reply.Sources, src)
	}

	if m := confidencePattern.FindStringSubmatch(text); m != nil {
		if conf, err := strconv.ParseFloat(m[1], 64); err == nil {
			reply.Confidence = clampConfidence(conf)
		}
	}

	return reply
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
