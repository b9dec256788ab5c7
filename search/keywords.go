package search

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// KeywordExtractor reduces a statement to the terms worth searching for.
type KeywordExtractor interface {
	ExtractKeywords(statement string) ([]string, error)
}

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// SnowballKeywordExtractor strips stop words and stems the remainder with
// the snowball English stemmer. Stems are deduplicated in first-seen order
// so the refined query stays close to the statement's own phrasing.
type SnowballKeywordExtractor struct {
	stopWords map[string]struct{}
}

func NewSnowballKeywordExtractor() *SnowballKeywordExtractor {
	words := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
		"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
		"to", "was", "were", "will", "with", "would", "could", "should",
		"may", "might", "can", "must", "do", "does", "did", "have", "had",
		"this", "these", "they", "them", "their", "his", "her", "she",
		"we", "you", "your", "our", "us", "me", "my", "i",
	}
	stop := make(map[string]struct{}, len(words))
	for _, w := range words {
		stop[w] = struct{}{}
	}
	return &SnowballKeywordExtractor{stopWords: stop}
}

func (e *SnowballKeywordExtractor) ExtractKeywords(statement string) ([]string, error) {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(statement), " ")

	var keywords []string
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(cleaned) {
		if len(word) < 2 {
			continue
		}
		if _, stop := e.stopWords[word]; stop {
			continue
		}
		stemmed, err := snowball.Stem(word, "english", false)
		if err != nil || stemmed == "" {
			stemmed = word
		}
		if _, dup := seen[stemmed]; dup {
			continue
		}
		seen[stemmed] = struct{}{}
		keywords = append(keywords, stemmed)
	}
	return keywords, nil
}

// RefineQuery turns a statement into a search query. When extraction strips
// everything (or fails) the raw statement is used unchanged, so a terse
// claim still reaches the engines.
func RefineQuery(extractor KeywordExtractor, statement string) string {
	if extractor == nil {
		return statement
	}
	keywords, err := extractor.ExtractKeywords(statement)
	if err != nil || len(keywords) == 0 {
		return statement
	}
	return strings.Join(keywords, " ")
}
