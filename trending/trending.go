// Package trending suggests fact-check-worthy statements for users to try.
package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/irahuldutta02/fact-check/llm"
)

// requestTimeout races the model call: a reply that misses the deadline is
// abandoned so the caller never waits on the slower branch.
const requestTimeout = 12 * time.Second

// ParseError reports that no strategy could recover a topic list.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse topic suggestions (%d chars)", len(e.Raw))
}

// Service generates trending topic suggestions.
type Service struct {
	generator llm.Generator
	logger    *zap.Logger
}

func NewService(generator llm.Generator, logger *zap.Logger) *Service {
	return &Service{generator: generator, logger: logger}
}

// Topics returns suggested statements, optionally themed around query.
func (s *Service) Topics(ctx context.Context, query string) ([]string, error) {
	tctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	text, err := s.generator.Generate(tctx, buildPrompt(query))
	if err != nil {
		return nil, err
	}

	topics, err := parseTopics(text)
	if err != nil {
		s.logger.Warn("topic suggestions unparseable", zap.Int("response_chars", len(text)))
		return nil, err
	}

	s.logger.Debug("topics generated", zap.Int("count", len(topics)))
	return topics, nil
}

func buildPrompt(query string) string {
	if query != "" {
		return fmt.Sprintf(`Generate 5-8 fact-check worthy statements or questions related to %q that might be trending or of interest to users.
Focus on topics that people might want to verify the factual accuracy of.
Return ONLY a valid JSON array of strings containing the questions, without ANY additional text, explanation or formatting.
IMPORTANT: Your response must be a valid parseable JSON array like this: ["Question 1?", "Question 2?", "Is claim X true?"]`, query)
	}
	return `Generate 8-10 fact-check worthy statements or questions that are currently trending or would be of high interest.
Include a mix of science, health, politics, technology, and general knowledge topics.
Focus on topics that people might want to verify the factual accuracy of.
Return ONLY a valid JSON array of strings containing questions, without ANY additional text, explanation or formatting.
IMPORTANT: Your response must be a valid parseable JSON array like this: ["Question 1?", "Question 2?", "Is claim X true?"]`
}

var (
	arraySpanPattern    = regexp.MustCompile(`(?s)\[.*\]`)
	trailingCommaFix    = regexp.MustCompile(`,\s*\]`)
	quotedQuestionScan  = regexp.MustCompile(`"([^"]+\?)"`)
	unquotedQuestionRgx = regexp.MustCompile(`\b([A-Z][^?\n]+\?)`)
)

// parseTopics recovers a string array from model output: direct JSON parse,
// then the bracketed span, then reassembly of array-looking lines, then a
// scan for quoted or sentence-case questions. Exhaustion is a ParseError.
func parseTopics(text string) ([]string, error) {
	if topics := tryParseArray(strings.TrimSpace(text)); topics != nil {
		return topics, nil
	}

	if span := arraySpanPattern.FindString(text); span != "" {
		if topics := tryParseArray(span); topics != nil {
			return topics, nil
		}
	}

	var arrayLines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, `"`) || strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "]") {
			arrayLines = append(arrayLines, trimmed)
		}
	}
	if len(arrayLines) > 0 {
		candidate := trailingCommaFix.ReplaceAllString(strings.Join(arrayLines, ""), "]")
		if topics := tryParseArray(candidate); topics != nil {
			return topics, nil
		}
	}

	var questions []string
	seen := make(map[string]struct{})
	appendQuestion := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" {
			return
		}
		if _, dup := seen[q]; dup {
			return
		}
		seen[q] = struct{}{}
		questions = append(questions, q)
	}
	for _, m := range quotedQuestionScan.FindAllStringSubmatch(text, -1) {
		appendQuestion(m[1])
	}
	if len(questions) == 0 {
		for _, m := range unquotedQuestionRgx.FindAllStringSubmatch(text, -1) {
			appendQuestion(m[1])
		}
	}
	if len(questions) > 0 {
		return questions, nil
	}

	return nil, &ParseError{Raw: text}
}

func tryParseArray(candidate string) []string {
	if !strings.HasPrefix(candidate, "[") {
		return nil
	}
	var topics []string
	if err := json.Unmarshal([]byte(candidate), &topics); err != nil {
		return nil
	}
	return topics
}
