// Package factcheck is the inbound boundary of the pipeline: validate the
// statement, gather evidence, synthesize a verdict.
package factcheck

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/irahuldutta02/fact-check/evidence"
	"github.com/irahuldutta02/fact-check/verdict"
)

const minStatementChars = 3

// ErrStatementTooShort rejects statements before any pipeline work runs.
var ErrStatementTooShort = errors.New("please provide a valid statement (at least 3 characters)")

// EvidenceGatherer is satisfied by *evidence.Pipeline.
type EvidenceGatherer interface {
	Gather(ctx context.Context, statement string) evidence.Bundle
}

// VerdictSynthesizer is satisfied by *verdict.Synthesizer.
type VerdictSynthesizer interface {
	Synthesize(ctx context.Context, statement string, bundle evidence.Bundle) (*verdict.Record, error)
}

// Checker runs one fact-check request end to end.
type Checker struct {
	pipeline    EvidenceGatherer
	synthesizer VerdictSynthesizer
	logger      *zap.Logger
}

func NewChecker(pipeline EvidenceGatherer, synthesizer VerdictSynthesizer, logger *zap.Logger) *Checker {
	return &Checker{pipeline: pipeline, synthesizer: synthesizer, logger: logger}
}

// Check validates the statement, gathers evidence (degrading to none on
// total collapse), and synthesizes the verdict. Provider and parse
// failures propagate as typed errors; nothing is retried here.
func (c *Checker) Check(ctx context.Context, statement string) (*verdict.Record, error) {
	trimmed := strings.TrimSpace(statement)
	if len([]rune(trimmed)) < minStatementChars {
		return nil, ErrStatementTooShort
	}

	bundle := c.pipeline.Gather(ctx, trimmed)

	c.logger.Info("checking statement",
		zap.Int("statement_chars", len(trimmed)),
		zap.Int("search_results", len(bundle.SearchResults)),
		zap.Int("content_details", len(bundle.ContentDetails)))

	return c.synthesizer.Synthesize(ctx, trimmed, bundle)
}
