package verdict

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/irahuldutta02/fact-check/evidence"
	"github.com/irahuldutta02/fact-check/llm"
)

// noEvidenceTimeout bounds the model call when there is no evidence to
// weigh. The evidence-enriched flow is governed by the provider's own
// timeout instead. A call that outlives the bound is abandoned, not
// awaited: the context cancellation discards the slower branch.
const noEvidenceTimeout = 12 * time.Second

// Synthesizer builds the prompt, invokes the model, and parses the reply
// into a Record.
type Synthesizer struct {
	generator llm.Generator
	useSchema bool
	logger    *zap.Logger
}

func NewSynthesizer(generator llm.Generator, useSchema bool, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{generator: generator, useSchema: useSchema, logger: logger}
}

// Synthesize produces the verdict for a statement given its evidence.
// Provider failures surface as classified llm errors; an unparseable reply
// surfaces as a *ParseError carrying the raw text. UsedWebScraping records
// whether any evidence was available, regardless of what the model cited.
func (s *Synthesizer) Synthesize(ctx context.Context, statement string, bundle evidence.Bundle) (*Record, error) {
	prompt := buildPrompt(statement, bundle)
	hasEvidence := !bundle.Empty()

	genCtx := ctx
	if !hasEvidence {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, noEvidenceTimeout)
		defer cancel()
	}

	var opts []llm.GenerateOption
	if s.useSchema {
		opts = append(opts, llm.WithJSONSchema(recordSchema))
	}

	text, err := s.generator.Generate(genCtx, prompt, opts...)
	if err != nil {
		return nil, err
	}

	reply, err := parseReply(text)
	if err != nil {
		s.logger.Warn("model reply unparseable",
			zap.Int("response_chars", len(text)),
			zap.Bool("had_evidence", hasEvidence))
		return nil, err
	}

	explanation, sources := remapCitations(reply.Explanation, reply.Sources)

	s.logger.Info("verdict synthesized",
		zap.String("verdict", string(reply.Verdict)),
		zap.Int("sources", len(sources)),
		zap.Bool("used_web_scraping", hasEvidence))

	return &Record{
		Verdict:         reply.Verdict,
		Explanation:     explanation,
		Sources:         sources,
		Confidence:      reply.Confidence,
		UsedWebScraping: hasEvidence,
	}, nil
}
